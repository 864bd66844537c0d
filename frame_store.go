package gui

// FrameStore keeps per-row widget state that only lives while the row is
// drawn. The owner calls Advance once per frame; an entry that went a whole
// frame without a Get is dropped, so rows that were collapsed, filtered out
// or removed lose their state without any bookkeeping from the caller.
//
//	func (tv *TreeView) Draw(ctx *gui.Context) {
//	    tv.rows.Advance()
//	    for _, row := range tv.order {
//	        st := tv.rows.Get(rowID(row), rowState{})
//	        ...
//	    }
//	}
//
// A FrameStore belongs to the GUI thread.
type FrameStore[T any] struct {
	entries map[ID]*frameEntry[T]
	frame   uint64
}

type frameEntry[T any] struct {
	value T
	seen  uint64 // Frame of the last Get
}

// NewFrameStore creates an empty store.
func NewFrameStore[T any]() *FrameStore[T] {
	return &FrameStore[T]{entries: make(map[ID]*frameEntry[T])}
}

// Advance starts a new frame and evicts entries not used in the last one.
func (s *FrameStore[T]) Advance() {
	s.frame++
	for id, e := range s.entries {
		if e.seen+1 < s.frame {
			delete(s.entries, id)
		}
	}
}

// Get returns the state for id, creating it from def on first use. The
// pointer stays valid until the entry is evicted.
func (s *FrameStore[T]) Get(id ID, def T) *T {
	e, ok := s.entries[id]
	if !ok {
		e = &frameEntry[T]{value: def}
		s.entries[id] = e
	}
	e.seen = s.frame
	return &e.value
}

// Len returns the number of live entries.
func (s *FrameStore[T]) Len() int { return len(s.entries) }
