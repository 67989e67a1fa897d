// Package dwinfo exposes the debug information of an executable as a
// tree of typed entries, one tree per compile unit, plus the output of
// each unit's line number program.
//
// The low level section parsing is done by the standard library's
// debug/dwarf package; dwinfo only walks its reader. Consumers access
// attributes through the tolerant helpers on Node: a missing attribute
// or one of an unexpected form reads as an absent value, never as an
// error.
package dwinfo

import (
	"debug/dwarf"
)

// Node is one debug information entry together with its children.
type Node struct {
	Entry    *dwarf.Entry
	Tag      dwarf.Tag
	Offset   dwarf.Offset
	Children []*Node
}

// LinePair is one row of a compile unit's line number program: an
// instruction address and the source line it was generated from.
type LinePair struct {
	Addr uint64
	Line int
}

// Unit is one compile unit: the root DIE with its children and the
// unit's line number program rows, in program order.
type Unit struct {
	Root  *Node
	Lines []LinePair
}

// EntryToNode converts a single entry, without children, to a *Node.
func EntryToNode(entry *dwarf.Entry) *Node {
	return &Node{Entry: entry, Tag: entry.Tag, Offset: entry.Offset}
}

// Val returns the value of attribute attr, or nil if the entry does not
// have it.
func (n *Node) Val(attr dwarf.Attr) interface{} {
	return n.Entry.Val(attr)
}

// String returns the string value of attr.
func (n *Node) String(attr dwarf.Attr) (string, bool) {
	s, ok := n.Entry.Val(attr).(string)
	return s, ok
}

// Uint returns the unsigned integer value of attr. Constant forms that
// the reader surfaces as signed integers are accepted too.
func (n *Node) Uint(attr dwarf.Attr) (uint64, bool) {
	switch v := n.Entry.Val(attr).(type) {
	case uint64:
		return v, true
	case int64:
		return uint64(v), true
	}
	return 0, false
}

// Int returns the signed integer value of attr.
func (n *Node) Int(attr dwarf.Attr) (int64, bool) {
	switch v := n.Entry.Val(attr).(type) {
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

// Block returns the raw byte block value of attr.
func (n *Node) Block(attr dwarf.Attr) ([]byte, bool) {
	b, ok := n.Entry.Val(attr).([]byte)
	return b, ok
}

// Ref returns the cross-entry offset reference stored in attr.
func (n *Node) Ref(attr dwarf.Attr) (dwarf.Offset, bool) {
	off, ok := n.Entry.Val(attr).(dwarf.Offset)
	return off, ok
}

// TypeRef returns the entry's DW_AT_type reference.
func (n *Node) TypeRef() (dwarf.Offset, bool) {
	return n.Ref(dwarf.AttrType)
}

// LowPC returns the entry's DW_AT_low_pc.
func (n *Node) LowPC() (uint64, bool) {
	v, ok := n.Entry.Val(dwarf.AttrLowpc).(uint64)
	return v, ok
}

// HighPC returns the entry's DW_AT_high_pc. Compilers emit it either as
// an address or, from DWARF v4 on, as a size relative to DW_AT_low_pc;
// both forms are resolved to an address.
func (n *Node) HighPC(lowpc uint64) (uint64, bool) {
	switch v := n.Entry.Val(dwarf.AttrHighpc).(type) {
	case uint64:
		return v, true
	case int64:
		return lowpc + uint64(v), true
	}
	return 0, false
}
