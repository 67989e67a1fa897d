package symdb

import (
	"debug/dwarf"

	"github.com/42Bastian/jagsym/pkg/symdb/srcfile"
)

// FunctionAt returns the name of the function whose address range
// contains addr.
func (db *DebugSymbols) FunctionAt(addr uint64) (string, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if sp.contains(addr) {
				return sp.Name, true
			}
		}
	}
	return "", false
}

// SymbolAt returns the name of the function starting exactly at addr.
// Unlike FunctionAt it does not match addresses inside the function
// body.
func (db *DebugSymbols) SymbolAt(addr uint64) (string, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if sp.LowPC == addr {
				return sp.Name, true
			}
		}
	}
	return "", false
}

// SourcePathAt returns the resolved source file path of the compile
// unit containing addr, together with the file's load status.
func (db *DebugSymbols) SourcePathAt(addr uint64) (string, srcfile.Status, bool) {
	for _, cu := range db.units {
		if cu.contains(addr) {
			return cu.FullPath, cu.Status, true
		}
	}
	return "", srcfile.StatusNoFile, false
}

// LineNumberAt returns the 1-based source line for addr. With tag set
// to dwarf.TagSubprogram, an address at a function's entry point
// reports the function's declaration line rather than the line table
// entry. An address between two line table entries reports the
// nearest preceding entry. Addresses covered by the unit but by no
// function fall back to an exact scan of the unit's line table.
func (db *DebugSymbols) LineNumberAt(addr uint64, tag dwarf.Tag) (int, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if !sp.contains(addr) {
				continue
			}
			if n, ok := lineInSubProgram(sp, addr, tag); ok {
				return n.Line, true
			}
		}
		// not attributable to a function: exact matches against the
		// unit's full line table still resolve
		for _, le := range cu.UsedLines {
			if le.Addr == addr {
				return le.Line, true
			}
		}
	}
	return 0, false
}

// LineTextAt returns the source text of the line for addr, under the
// same matching rules as LineNumberAt except for the unit level
// fallback, which only yields a line number.
func (db *DebugSymbols) LineTextAt(addr uint64, tag dwarf.Tag) (string, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if !sp.contains(addr) {
				continue
			}
			if n, ok := lineInSubProgram(sp, addr, tag); ok && n.Text != "" {
				return n.Text, true
			}
		}
	}
	return "", false
}

// lineInSubProgram finds the line entry for addr inside sp. Entries
// of the line table carry no tag, so a non-zero tag only matches the
// function entry point.
func lineInSubProgram(sp *SubProgram, addr uint64, tag dwarf.Tag) (LineEntry, bool) {
	if sp.LowPC == addr && (tag == 0 || tag == dwarf.TagSubprogram) {
		return LineEntry{Addr: addr, Line: sp.DeclLine, Text: sp.DeclText}, true
	}
	for k, le := range sp.LineEntries {
		if le.Addr <= addr {
			if le.Addr == addr && tag == 0 {
				return le, true
			}
			continue
		}
		// first entry past addr: the preceding entry covers it
		if k == 0 {
			return LineEntry{}, false
		}
		return sp.LineEntries[k-1], true
	}
	return LineEntry{}, false
}

// LineTextInFunction returns the text of source line num as long as
// the function containing addr covers that line.
func (db *DebugSymbols) LineTextInFunction(addr uint64, num int) (string, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if !sp.contains(addr) {
				continue
			}
			if sp.DeclLine == num && sp.DeclText != "" {
				return sp.DeclText, true
			}
			for _, le := range sp.LineEntries {
				if le.Line == num && le.Text != "" {
					return le.Text, true
				}
			}
		}
	}
	return "", false
}

// LineTextByNumber returns the text of the 1-based source line num of
// the compile unit containing addr, whether or not any code maps to
// that line.
func (db *DebugSymbols) LineTextByNumber(addr uint64, num int) (string, bool) {
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		if num >= 1 && num <= len(cu.Lines) {
			return cu.Lines[num-1], true
		}
		return "", false
	}
	return "", false
}

// GlobalAddress returns the address of the first global variable with
// this name, in compile unit order.
func (db *DebugSymbols) GlobalAddress(name string) (uint64, bool) {
	for _, cu := range db.units {
		for _, v := range cu.Globals {
			if v.Name == name {
				return v.Addr, true
			}
		}
	}
	return 0, false
}

// VariableCount returns the number of variables in the scope selected
// by addr: the frame variables of the function containing addr, or,
// for addr 0, the global variables of every compile unit.
func (db *DebugSymbols) VariableCount(addr uint64) int {
	if addr == 0 {
		n := 0
		for _, cu := range db.units {
			n += len(cu.Globals)
		}
		return n
	}
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if sp.contains(addr) {
				return len(sp.Variables)
			}
		}
	}
	return 0
}

// VariableAt returns the variable with 1-based index in the scope
// selected by addr. The global scope spans compile units: an index
// past one unit's globals continues into the next unit's.
func (db *DebugSymbols) VariableAt(addr uint64, index int) (*Variable, error) {
	if index < 1 {
		return nil, ErrNoVariable
	}
	if addr == 0 {
		for _, cu := range db.units {
			if index <= len(cu.Globals) {
				return cu.Globals[index-1], nil
			}
			index -= len(cu.Globals)
		}
		return nil, ErrNoVariable
	}
	for _, cu := range db.units {
		if !cu.contains(addr) {
			continue
		}
		for _, sp := range cu.SubPrograms {
			if sp.contains(addr) {
				if index > len(sp.Variables) {
					return nil, ErrNoVariable
				}
				return sp.Variables[index-1], nil
			}
		}
	}
	return nil, ErrNoVariable
}

// LineCount returns the number of loaded source lines, or, for used
// true, the number of line table entries.
func (cu *CompileUnit) LineCount(used bool) int {
	if used {
		return len(cu.UsedLines)
	}
	return len(cu.Lines)
}

// LineTexts returns the loaded source text, or, for used true, the
// text of the line table entries in program order.
func (cu *CompileUnit) LineTexts(used bool) []string {
	if used {
		return cu.usedTexts
	}
	return cu.Lines
}

// UsedLineNumbers returns the 0-based source line number of each line
// table entry, in program order.
func (cu *CompileUnit) UsedLineNumbers() []int {
	return cu.usedNums
}
