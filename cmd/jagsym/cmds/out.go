package cmds

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// stdoutWriter returns a writer for command output that handles ANSI
// escape sequences on every platform.
func stdoutWriter() io.Writer {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return colorable.NewColorableStdout()
	}
	return os.Stdout
}

// colored highlights s in red when writing to a terminal.
func colored(s string) string {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return "\x1b[31m" + s + "\x1b[0m"
	}
	return s
}
