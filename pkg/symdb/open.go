package symdb

import (
	"debug/elf"
	"fmt"
	"os"

	"github.com/42Bastian/jagsym/pkg/dwarf/dwinfo"
)

// Open reads the debug information of the ELF executable at path and
// builds its symbol database. The executable's modification time is
// the reference against which source files are checked for staleness.
func Open(path string, searchPaths []string) (*DebugSymbols, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %v", path, err)
	}
	defer f.Close()

	dw, err := f.DWARF()
	if err != nil {
		return nil, fmt.Errorf("could not read debug info of %s: %v", path, err)
	}

	return Load(dwinfo.Load(dw), searchPaths, fi.ModTime()), nil
}
