// Package cmds implements the jagsym command line interface.
package cmds

import (
	"debug/dwarf"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/42Bastian/jagsym/pkg/config"
	"github.com/42Bastian/jagsym/pkg/logflags"
	"github.com/42Bastian/jagsym/pkg/symdb"
	"github.com/42Bastian/jagsym/pkg/symdb/srcfile"
)

var (
	// log is whether debug logging is enabled.
	log bool
	// logOutput is a comma separated list of components to log.
	logOutput string
	// searchPaths are extra directories probed for source files whose
	// compile unit records no directory.
	searchPaths []string

	conf *config.Config
)

// New returns the root command, with every subcommand attached.
func New() *cobra.Command {
	conf = config.LoadConfig()

	rootCommand := &cobra.Command{
		Use:   "jagsym",
		Short: "Inspect the debug symbols of an executable.",
		Long: `jagsym reads the DWARF debug information of an executable and answers
address, line and name queries against it: which function an address
belongs to, which source line it was generated from, where a global
variable lives.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logflags.Setup(log, logOutput)
		},
	}
	rootCommand.PersistentFlags().BoolVar(&log, "log", false, "Enable debug logging.")
	rootCommand.PersistentFlags().StringVar(&logOutput, "log-output", "", "Comma separated list of components that should produce debug output (symdb, srcfile, dwinfo).")
	rootCommand.PersistentFlags().StringArrayVar(&searchPaths, "search-path", nil, "Directory probed for source files without a recorded directory. May be given more than once.")

	sourcesCommand := &cobra.Command{
		Use:   "sources <executable>",
		Short: "List the source files of every compile unit.",
		Args:  cobra.ExactArgs(1),
		RunE:  sourcesCmd,
	}

	funcsCommand := &cobra.Command{
		Use:   "funcs <executable> [prefix]",
		Short: "List functions, optionally filtered by name prefix.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  funcsCmd,
	}

	globalsCommand := &cobra.Command{
		Use:   "globals <executable> [prefix]",
		Short: "List global variables, optionally filtered by name prefix.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  globalsCmd,
	}

	lineCommand := &cobra.Command{
		Use:   "line <executable> <address>",
		Short: "Show the function, source file and line for an address.",
		Args:  cobra.ExactArgs(2),
		RunE:  lineCmd,
	}

	dumpCommand := &cobra.Command{
		Use:   "dump <executable>",
		Short: "Summarize every compile unit of the executable.",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpCmd,
	}

	rootCommand.AddCommand(sourcesCommand, funcsCommand, globalsCommand, lineCommand, dumpCommand)
	return rootCommand
}

func openDB(path string) (*symdb.DebugSymbols, error) {
	paths := append([]string{}, conf.SourceSearchPaths...)
	paths = append(paths, searchPaths...)
	return symdb.Open(path, paths)
}

func sourcesCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return err
	}

	w := stdoutWriter()
	for i := 0; i < db.UnitCount(); i++ {
		cu, err := db.Unit(i)
		if err != nil {
			return err
		}
		if cu.Status == srcfile.StatusOK {
			fmt.Fprintf(w, "%s (%d lines)\n", cu.FullPath, cu.LineCount(false))
		} else {
			fmt.Fprintf(w, "%s (%s)\n", cu.FullPath, colored(cu.Status.String()))
		}
	}
	return nil
}

func funcsCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return err
	}

	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}

	w := stdoutWriter()
	for _, name := range db.FunctionsWithPrefix(prefix) {
		sp, ok := db.FunctionByName(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%#08x %s\n", sp.LowPC, name)
	}
	return nil
}

func globalsCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return err
	}

	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}

	w := stdoutWriter()
	for _, name := range db.GlobalsWithPrefix(prefix) {
		v, ok := db.GlobalByName(name)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%#08x %s %s\n", v.Addr, truncate(v.TypeName), name)
	}
	return nil
}

func lineCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return err
	}

	addr, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("invalid address %q: %v", args[1], err)
	}

	w := stdoutWriter()
	if name, ok := db.FunctionAt(addr); ok {
		fmt.Fprintf(w, "in %s\n", name)
	}
	if path, status, ok := db.SourcePathAt(addr); ok {
		if num, ok := db.LineNumberAt(addr, dwarf.Tag(0)); ok {
			fmt.Fprintf(w, "%s:%d\n", path, num)
		} else {
			fmt.Fprintf(w, "%s\n", path)
		}
		if status != srcfile.StatusOK {
			fmt.Fprintf(w, "source unavailable: %s\n", colored(status.String()))
			return nil
		}
		if text, ok := db.LineTextAt(addr, dwarf.Tag(0)); ok {
			fmt.Fprintf(w, "%s\n", text)
		}
		return nil
	}
	return fmt.Errorf("no debug info for address %#x", addr)
}

func dumpCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB(args[0])
	if err != nil {
		return err
	}

	w := stdoutWriter()
	for i := 0; i < db.UnitCount(); i++ {
		cu, err := db.Unit(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", cu.Name)
		fmt.Fprintf(w, "\trange    %#08x-%#08x\n", cu.LowPC, cu.HighPC)
		if cu.Producer != "" {
			fmt.Fprintf(w, "\tproducer %s\n", cu.Producer)
		}
		fmt.Fprintf(w, "\tsource   %s (%s)\n", cu.FullPath, colored(cu.Status.String()))
		fmt.Fprintf(w, "\t%d types, %d functions (%d with frame info), %d globals, %d line entries\n",
			len(cu.Types), len(cu.SubPrograms), cu.FrameCount, len(cu.Globals), cu.LineCount(true))
	}
	return nil
}

// truncate keeps resolved type names to the configured width, cutting
// on a rune boundary.
func truncate(s string) string {
	max := conf.MaxTypeNameLen
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
