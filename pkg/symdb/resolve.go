package symdb

import (
	"debug/dwarf"
	"strings"
)

// TypeCaps is the set of type constructors encountered while
// following a variable's type chain. A pointer to a const array of
// structures carries CapPointer|CapConst|CapArray|CapStructure.
type TypeCaps uint32

const (
	CapStructure   TypeCaps = 0x001
	CapPointer     TypeCaps = 0x002
	CapSubrange    TypeCaps = 0x004
	CapArray       TypeCaps = 0x008
	CapConst       TypeCaps = 0x010
	CapTypedef     TypeCaps = 0x020
	CapEnumeration TypeCaps = 0x040
	CapSubroutine  TypeCaps = 0x080
	CapUnion       TypeCaps = 0x100
)

// EncodingPointer is the synthetic encoding value reported for
// pointer typed variables, distinct from every base type encoding.
const EncodingPointer = 0x10

// encodingEnumDefault is assumed for enumerations that record a size
// of 4 but no encoding.
const encodingEnumDefault = 0x7

// resolveVariable follows v's type chain through the unit's type
// table, accumulating the display name, the capability set, and the
// innermost size and encoding. Structure typed variables with a known
// location get one level of members, each resolved in turn.
func (cu *CompileUnit) resolveVariable(v *Variable) {
	if v.resolved {
		return
	}
	v.resolved = true

	if !v.hasType {
		return
	}

	var name strings.Builder
	off := v.typeRef

	// The chain cannot be longer than the type table itself; a longer
	// walk means the references form a cycle.
	for steps := 0; steps <= len(cu.Types); steps++ {
		t, ok := cu.typeAt(off)
		if !ok {
			break
		}

		follow := false
		switch t.Tag {
		case dwarf.TagSubroutineType:
			v.Caps |= CapSubroutine
			name.WriteString(" (* ) ()")

		case dwarf.TagStructType, dwarf.TagUnionType:
			if t.Tag == dwarf.TagStructType {
				v.Caps |= CapStructure
			} else {
				v.Caps |= CapUnion
			}
			if v.Caps&CapTypedef == 0 {
				name.WriteString(t.Name)
			}
			if t.HasRef {
				off, follow = t.Ref, true
				break
			}
			if v.Caps&CapPointer != 0 {
				name.WriteString("* ")
			}
			if v.Op != 0 {
				cu.expandMembers(v, t)
			}

		case dwarf.TagPointerType:
			v.Caps |= CapPointer
			v.ByteSize = t.ByteSize
			v.Encoding = EncodingPointer
			if !t.HasRef {
				name.WriteString("void* ")
				break
			}
			off, follow = t.Ref, true

		case dwarf.TagEnumerationType:
			v.Caps |= CapEnumeration
			v.ByteSize = t.ByteSize
			if v.Encoding = t.Encoding; v.Encoding == 0 && v.ByteSize == 4 {
				v.Encoding = encodingEnumDefault
			}

		case dwarf.TagTypedef:
			if v.Caps&CapTypedef == 0 {
				v.Caps |= CapTypedef
				name.WriteString(t.Name)
			}
			if t.HasRef {
				off, follow = t.Ref, true
			}

		case dwarf.TagSubrangeType:
			v.Caps |= CapSubrange

		case dwarf.TagArrayType:
			v.Caps |= CapArray
			if t.HasRef {
				off, follow = t.Ref, true
			}

		case dwarf.TagConstType:
			v.Caps |= CapConst
			name.WriteString("const ")
			if t.HasRef {
				off, follow = t.Ref, true
			}

		case dwarf.TagBaseType:
			if v.Caps&CapTypedef == 0 {
				name.WriteString(t.Name)
			}
			if v.Caps&CapPointer != 0 {
				name.WriteString("* ")
			} else {
				v.ByteSize = t.ByteSize
				v.Encoding = t.Encoding
			}
			if v.Caps&CapArray != 0 {
				name.WriteString("[]")
			}

		default:
			// other type tags contribute nothing to the result
		}

		if !follow {
			break
		}
	}

	v.TypeName = name.String()
}

// expandMembers attaches one child variable per structure member.
// The children have no location operation of their own, so member
// expansion stops after one level.
func (cu *CompileUnit) expandMembers(v *Variable, t *TypeEntry) {
	for i := range t.Members {
		m := &t.Members[i]
		child := &Variable{
			Name:    m.Name,
			Offset:  m.Offset,
			typeRef: m.Ref,
			hasType: m.HasRef,
		}
		cu.resolveVariable(child)
		v.Members = append(v.Members, child)
	}
}
