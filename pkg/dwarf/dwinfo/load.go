package dwinfo

import (
	"debug/dwarf"

	"github.com/42Bastian/jagsym/pkg/logflags"
)

// Load walks the debug info of dw and returns one Unit per compile
// unit. Units that cannot be read completely are returned with
// whatever was read before the failure; a read failure never aborts
// the remaining units.
func Load(dw *dwarf.Data) []*Unit {
	logger := logflags.DWInfoLogger()

	var units []*Unit
	rdr := dw.Reader()
	for {
		e, err := rdr.Next()
		if err != nil {
			logger.Debugf("reading entry: %v", err)
			break
		}
		if e == nil {
			break
		}
		if e.Tag != dwarf.TagCompileUnit {
			rdr.SkipChildren()
			continue
		}

		root := EntryToNode(e)
		root.Children = loadChildren(e, rdr)
		units = append(units, &Unit{
			Root:  root,
			Lines: loadLines(dw, e),
		})
	}
	return units
}

func loadChildren(e *dwarf.Entry, rdr *dwarf.Reader) []*Node {
	if !e.Children {
		return nil
	}
	var children []*Node
	for {
		e, err := rdr.Next()
		if err != nil || e == nil {
			return children
		}
		if e.Tag == 0 {
			return children
		}
		child := EntryToNode(e)
		child.Children = loadChildren(e, rdr)
		children = append(children, child)
	}
}

// loadLines runs the unit's line number program and collects its
// (address, line) rows. End of sequence markers carry no source line
// and are skipped.
func loadLines(dw *dwarf.Data, cu *dwarf.Entry) []LinePair {
	lrdr, err := dw.LineReader(cu)
	if err != nil || lrdr == nil {
		return nil
	}

	var lines []LinePair
	var le dwarf.LineEntry
	for {
		err := lrdr.Next(&le)
		if err != nil {
			break
		}
		if le.EndSequence {
			continue
		}
		lines = append(lines, LinePair{Addr: le.Address, Line: le.Line})
	}
	return lines
}
