package dwinfo

import (
	"debug/dwarf"
)

// FakeNode synthesizes a debug info entry for tests. Attribute values
// use the same dynamic types the debug/dwarf reader produces: string,
// int64, uint64, []byte and dwarf.Offset.
func FakeNode(tag dwarf.Tag, off dwarf.Offset, attrs map[dwarf.Attr]interface{}, children ...*Node) *Node {
	fields := make([]dwarf.Field, 0, len(attrs))
	for attr, val := range attrs {
		fields = append(fields, dwarf.Field{Attr: attr, Val: val})
	}
	entry := &dwarf.Entry{
		Offset:   off,
		Tag:      tag,
		Children: len(children) > 0,
		Field:    fields,
	}
	return &Node{Entry: entry, Tag: tag, Offset: off, Children: children}
}

// FakeUnit synthesizes a compile unit from a root entry and line
// program rows.
func FakeUnit(root *Node, lines ...LinePair) *Unit {
	return &Unit{Root: root, Lines: lines}
}
