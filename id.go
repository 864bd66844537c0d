package gui

import (
	"encoding/binary"
	"hash/fnv"
)

// ID keys widget state across frames.
type ID uint64

// GetID derives an ID from label under the current parent. Each call also
// counts, so the same label drawn twice in a frame gets two IDs; a widget
// keeps its ID only while the widgets before it stay the same.
func (ctx *Context) GetID(label string) ID {
	ctx.idCounter++
	// parent:32 | call:16 | label:16
	return ID(uint64(ctx.CurrentID())<<32 | uint64(ctx.idCounter)<<16 | hashLabel(label)&0xFFFF)
}

// GetIDStable derives an ID from the current parent and a caller-owned key.
// Unlike GetID it does not consume the call counter, so the result does not
// depend on how many widgets were drawn before it this frame. Rows whose
// visibility changes between frames (filtered or collapsed trees) use this.
func (ctx *Context) GetIDStable(key uint64) ID {
	return combineID(ctx.CurrentID(), key)
}

// combineID hashes a parent ID and a key into a child ID.
func combineID(parent ID, key uint64) ID {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(parent))
	binary.LittleEndian.PutUint64(buf[8:], key)
	h := fnv.New64a()
	h.Write(buf[:])
	return ID(h.Sum64())
}

// PushID opens an ID scope named label; IDs made inside it are children.
func (ctx *Context) PushID(label string) {
	ctx.idStack = append(ctx.idStack, ctx.GetID(label))
}

// PushRawID opens a scope for an ID computed elsewhere.
func (ctx *Context) PushRawID(id ID) {
	ctx.idStack = append(ctx.idStack, id)
}

// PopID closes the innermost scope.
func (ctx *Context) PopID() {
	if len(ctx.idStack) > 0 {
		ctx.idStack = ctx.idStack[:len(ctx.idStack)-1]
	}
}

// CurrentID returns the innermost scope, or 0 at the top level.
func (ctx *Context) CurrentID() ID {
	if len(ctx.idStack) > 0 {
		return ctx.idStack[len(ctx.idStack)-1]
	}
	return 0
}

// hashLabel hashes a label into a GetIDStable key.
func hashLabel(label string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(label))
	return h.Sum64()
}
