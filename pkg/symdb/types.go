package symdb

import (
	"debug/dwarf"

	"github.com/42Bastian/jagsym/pkg/dwarf/dwinfo"
	"github.com/42Bastian/jagsym/pkg/dwarf/leb128"
)

// TypeEntry is one entry of a compile unit's type table. Entries keep
// the raw attributes of their debug info node; resolution to a display
// name and capability set happens per variable, following Ref chains
// through the table.
type TypeEntry struct {
	Tag      dwarf.Tag
	Offset   dwarf.Offset
	Name     string
	ByteSize int64
	Encoding int64

	// Ref is the offset of the underlying type, valid when HasRef is
	// set. Base types and void pointers have no underlying type.
	Ref    dwarf.Offset
	HasRef bool

	// Members is populated for structure and union types.
	Members []StructMember
}

// StructMember is one member of a structure or union type.
type StructMember struct {
	Name   string
	Ref    dwarf.Offset
	HasRef bool

	// Offset is the member's byte offset inside the enclosing
	// structure.
	Offset int64
}

// addType appends a type table entry for node and records its offset
// in the unit's lookup index.
func (cu *CompileUnit) addType(node *dwinfo.Node) {
	t := TypeEntry{
		Tag:    node.Tag,
		Offset: node.Offset,
	}

	t.Name, _ = node.String(dwarf.AttrName)
	t.ByteSize, _ = node.Int(dwarf.AttrByteSize)
	t.Encoding, _ = node.Int(dwarf.AttrEncoding)
	t.Ref, t.HasRef = node.TypeRef()

	if node.Tag == dwarf.TagStructType || node.Tag == dwarf.TagUnionType {
		for _, child := range node.Children {
			if child.Tag != dwarf.TagMember {
				continue
			}
			t.Members = append(t.Members, newStructMember(child))
		}
	}

	cu.typeIndex[t.Offset] = len(cu.Types)
	cu.Types = append(cu.Types, t)
}

func newStructMember(node *dwinfo.Node) StructMember {
	var m StructMember
	m.Name, _ = node.String(dwarf.AttrName)
	m.Ref, m.HasRef = node.TypeRef()
	m.Offset = memberLocation(node)
	return m
}

// memberLocation extracts DW_AT_data_member_location, which is either
// a plain constant or a small location expression block whose opcode
// byte is followed by a ULEB128 offset.
func memberLocation(node *dwinfo.Node) int64 {
	if blk, ok := node.Block(dwarf.AttrDataMemberLoc); ok {
		if len(blk) >= 2 && len(blk) <= 4 {
			off, _ := leb128.DecodeUnsigned(blk[1:])
			return int64(off)
		}
		return 0
	}
	off, _ := node.Int(dwarf.AttrDataMemberLoc)
	return off
}

// typeAt returns the type table entry at offset off.
func (cu *CompileUnit) typeAt(off dwarf.Offset) (*TypeEntry, bool) {
	i, ok := cu.typeIndex[off]
	if !ok {
		return nil, false
	}
	return &cu.Types[i], true
}
