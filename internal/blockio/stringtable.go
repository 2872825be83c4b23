// Package blockio builds and decodes the per-block content of a
// PrimitiveBlock: the string table and the dense-node/way/relation
// primitive groups, plus the block-level compose/decompose step that turns
// a homogeneous slice of elements into (or out of) a single PrimitiveBlock.
package blockio

// StringTableBuilder interns strings for one block. Index 0 is pre-seeded
// with the empty string, matching the format's delimiter convention.
type StringTableBuilder struct {
	index map[string]uint32
	list  [][]byte
}

// NewStringTableBuilder returns a builder with index 0 already seeded.
func NewStringTableBuilder() *StringTableBuilder {
	b := &StringTableBuilder{
		index: make(map[string]uint32),
		list:  [][]byte{[]byte("")},
	}
	b.index[""] = 0
	return b
}

// Add returns s's index, interning it if not already present.
func (b *StringTableBuilder) Add(s string) uint32 {
	if idx, ok := b.index[s]; ok {
		return idx
	}
	idx := uint32(len(b.list))
	b.index[s] = idx
	b.list = append(b.list, []byte(s))
	return idx
}

// Build returns the accumulated string list and resets the builder to a
// fresh, index-0-seeded state.
func (b *StringTableBuilder) Build() [][]byte {
	out := b.list
	*b = *NewStringTableBuilder()
	return out
}
