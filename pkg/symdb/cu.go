package symdb

import (
	"debug/dwarf"

	"github.com/sirupsen/logrus"

	"github.com/42Bastian/jagsym/pkg/dwarf/dwinfo"
	"github.com/42Bastian/jagsym/pkg/symdb/srcfile"
)

// CompileUnit is the debug information of one translation unit:
// address range, resolved source file, loaded source text, and the
// unit's types, subprograms and global variables. A CompileUnit is
// built once during Load and never mutated afterwards.
type CompileUnit struct {
	Language      uint64
	LowPC, HighPC uint64
	Producer      string
	Name          string // source file name as recorded in debug info
	Dir           string // resolved directory
	FullPath      string
	Status        srcfile.Status

	// Lines is the loaded source text, one entry per line.
	Lines []string

	// UsedLines is the unit's line number program output, in program
	// order, with each entry bound to its text line when the source
	// text loaded.
	UsedLines []LineEntry

	// usedNums holds the zero based source line number of each entry
	// in UsedLines.
	usedNums []int
	// usedTexts holds the text line of each entry in UsedLines.
	usedTexts []string

	Types       []TypeEntry
	typeIndex   map[dwarf.Offset]int
	SubPrograms []*SubProgram
	Globals     []*Variable

	// FrameCount is the number of subprograms carrying a frame base
	// attribute.
	FrameCount int
}

// LineEntry is one (address, source line) pair, optionally bound to
// the text of that line.
type LineEntry struct {
	Addr uint64
	Line int // 1-based
	Text string
}

// SubProgram is one function: its bounds, declaration line, the slice
// of the unit's line table covering it, and its parameters and locals.
type SubProgram struct {
	Name          string
	LowPC, HighPC uint64
	DeclLine      int
	DeclText      string
	FrameBase     uint64
	LineEntries   []LineEntry
	Variables     []*Variable
}

// buildCompileUnit ingests one compile unit. It never fails: fields
// whose attributes cannot be read keep their zero values and a unit
// whose source file is unavailable still carries its symbols and
// types.
func buildCompileUnit(u *dwinfo.Unit, loader *srcfile.Loader, logger *logrus.Entry) *CompileUnit {
	cu := &CompileUnit{typeIndex: make(map[dwarf.Offset]int)}

	root := u.Root
	cu.Name, _ = root.String(dwarf.AttrName)
	cu.Dir, _ = root.String(dwarf.AttrCompDir)
	cu.Producer, _ = root.String(dwarf.AttrProducer)
	cu.Language, _ = root.Uint(dwarf.AttrLanguage)
	cu.LowPC, _ = root.LowPC()
	cu.HighPC, _ = root.HighPC(cu.LowPC)

	cu.FullPath, cu.Dir = loader.Resolve(cu.Name, cu.Dir)
	cu.Lines, cu.Status = loader.Load(cu.FullPath)

	// The line number program is only kept when the source text loaded:
	// a unit whose source file is missing or outdated carries no line
	// table, only its symbols and types.
	if cu.Status == srcfile.StatusOK {
		cu.UsedLines = make([]LineEntry, len(u.Lines))
		for i, lp := range u.Lines {
			cu.UsedLines[i] = LineEntry{Addr: lp.Addr, Line: lp.Line}
		}
	}

	for _, child := range root.Children {
		switch child.Tag {
		case dwarf.TagVariable:
			cu.addGlobal(child)
		case dwarf.TagBaseType, dwarf.TagTypedef, dwarf.TagUnionType,
			dwarf.TagStructType, dwarf.TagPointerType, dwarf.TagConstType,
			dwarf.TagArrayType, dwarf.TagSubrangeType,
			dwarf.TagSubroutineType, dwarf.TagEnumerationType:
			cu.addType(child)
		case dwarf.TagSubprogram:
			cu.addSubProgram(child)
		default:
			// other tags (lexical blocks, labels, ...) are skipped
		}
	}

	cu.bindSourceLines()

	for _, v := range cu.Globals {
		cu.resolveVariable(v)
	}
	for _, sp := range cu.SubPrograms {
		for _, v := range sp.Variables {
			cu.resolveVariable(v)
		}
	}

	logger.Debugf("unit %q: %d types, %d subprograms, %d globals, %d line entries, status %v",
		cu.Name, len(cu.Types), len(cu.SubPrograms), len(cu.Globals), len(cu.UsedLines), cu.Status)

	return cu
}

// bindSourceLines joins the loaded source text with the line table and
// the subprograms, and backfills the unit's address range from the
// line table when the debug info did not record one.
func (cu *CompileUnit) bindSourceLines() {
	if len(cu.Lines) > 0 {
		for _, sp := range cu.SubPrograms {
			if sp.DeclLine >= 1 && sp.DeclLine <= len(cu.Lines) {
				sp.DeclText = cu.Lines[sp.DeclLine-1]
			}
			for k := range sp.LineEntries {
				if n := sp.LineEntries[k].Line; n >= 1 && n <= len(cu.Lines) {
					sp.LineEntries[k].Text = cu.Lines[n-1]
				}
			}
		}
	}

	if len(cu.UsedLines) == 0 {
		return
	}

	cu.usedNums = make([]int, len(cu.UsedLines))
	cu.usedTexts = make([]string, len(cu.UsedLines))
	for i := range cu.UsedLines {
		n := cu.UsedLines[i].Line
		cu.usedNums[i] = n - 1
		if n >= 1 && n <= len(cu.Lines) {
			cu.UsedLines[i].Text = cu.Lines[n-1]
			cu.usedTexts[i] = cu.Lines[n-1]
		}
	}

	// Some producers omit the unit's address range; take it from the
	// line table instead.
	if cu.LowPC == 0 && (cu.HighPC == 0 || cu.HighPC == ^uint64(0)) {
		cu.LowPC = cu.UsedLines[0].Addr
		cu.HighPC = cu.UsedLines[len(cu.UsedLines)-1].Addr
	}
}

// contains reports whether addr falls in the unit's address range.
func (cu *CompileUnit) contains(addr uint64) bool {
	return addr >= cu.LowPC && addr < cu.HighPC
}

// contains reports whether addr falls in the subprogram's bounds.
func (sp *SubProgram) contains(addr uint64) bool {
	return addr >= sp.LowPC && addr < sp.HighPC
}
