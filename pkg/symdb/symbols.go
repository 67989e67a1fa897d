package symdb

import (
	"debug/dwarf"
	"encoding/binary"

	"github.com/42Bastian/jagsym/pkg/dwarf/dwinfo"
	"github.com/42Bastian/jagsym/pkg/dwarf/leb128"
)

// opAddr is the location expression opcode carrying an absolute
// machine address.
const opAddr = 0x03

// Variable is a global variable, a subprogram parameter or local, or
// an expanded structure member. Globals carry Addr, frame variables
// carry Offset relative to the frame base, members carry Offset
// relative to the enclosing variable.
type Variable struct {
	Name string
	Addr uint64
	Op   byte
	// Offset is the frame base offset for locals and parameters and
	// the byte offset inside the parent for structure members.
	Offset int64

	typeRef  dwarf.Offset
	hasType  bool
	resolved bool

	// Fields below are filled by type resolution.
	TypeName string
	ByteSize int64
	Encoding int64
	Caps     TypeCaps

	// Members holds one child per structure member when the variable
	// resolves to a structure or union with a known location.
	Members []*Variable
}

// addGlobal reads a compile unit level variable. Entries without a
// name or without an absolute address location are ignored: the debug
// info of an absolute object without an address describes nothing the
// debugger can show.
func (cu *CompileUnit) addGlobal(node *dwinfo.Node) {
	v := &Variable{}
	v.Name, _ = node.String(dwarf.AttrName)
	v.typeRef, v.hasType = node.TypeRef()

	if blk, ok := node.Block(dwarf.AttrLocation); ok && len(blk) == 5 && blk[0] == opAddr {
		v.Op = blk[0]
		v.Addr = uint64(binary.BigEndian.Uint32(blk[1:5]))
	}

	if v.Name == "" || v.Addr == 0 {
		return
	}
	cu.Globals = append(cu.Globals, v)
}

// addSubProgram reads one function entry and its immediate children.
func (cu *CompileUnit) addSubProgram(node *dwinfo.Node) {
	sp := &SubProgram{}
	sp.Name, _ = node.String(dwarf.AttrName)
	sp.LowPC, _ = node.LowPC()
	sp.HighPC, _ = node.HighPC(sp.LowPC)
	if n, ok := node.Uint(dwarf.AttrDeclLine); ok {
		sp.DeclLine = int(n)
	}
	if fb, ok := node.Uint(dwarf.AttrFrameBase); ok {
		sp.FrameBase = fb
		cu.FrameCount++
	}

	// The slice of the unit's line table covering this function. The
	// upper bound is inclusive: the entry at the function's end
	// address belongs to it.
	for _, le := range cu.UsedLines {
		if le.Addr >= sp.LowPC && le.Addr <= sp.HighPC {
			sp.LineEntries = append(sp.LineEntries, le)
		}
	}

	for _, child := range node.Children {
		switch child.Tag {
		case dwarf.TagVariable, dwarf.TagFormalParameter:
			sp.Variables = append(sp.Variables, newFrameVariable(child))
		default:
			// labels, lexical blocks
		}
	}

	cu.SubPrograms = append(cu.SubPrograms, sp)
}

// newFrameVariable reads a parameter or local variable. The location
// block's first byte is the operation; the bytes after it encode the
// frame base offset, signed for locals and unsigned for parameters.
func newFrameVariable(node *dwinfo.Node) *Variable {
	v := &Variable{}
	v.Name, _ = node.String(dwarf.AttrName)
	v.typeRef, v.hasType = node.TypeRef()

	if blk, ok := node.Block(dwarf.AttrLocation); ok && len(blk) >= 1 {
		v.Op = blk[0]
		if len(blk) >= 2 && len(blk) <= 5 {
			if node.Tag == dwarf.TagFormalParameter {
				off, _ := leb128.DecodeUnsigned(blk[1:])
				v.Offset = int64(off)
			} else {
				v.Offset, _ = leb128.DecodeSigned(blk[1:])
			}
		}
	}

	return v
}
