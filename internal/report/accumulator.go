package report

// rollup is a mapping-keyed accumulator that creates a zero record on first
// use of a key and remembers encounter order. Encounter order is what lets
// the renderer break sort ties by first-seen position. There is no removal
// operation.
type rollup[T any] struct {
	byKey map[string]*T
	order []string
}

func newRollup[T any]() *rollup[T] {
	return &rollup[T]{byKey: make(map[string]*T)}
}

// get returns the record for key, creating it on first use. Repeated calls
// with the same key return the same record.
func (r *rollup[T]) get(key string) *T {
	if rec, ok := r.byKey[key]; ok {
		return rec
	}
	rec := new(T)
	r.byKey[key] = rec
	r.order = append(r.order, key)
	return rec
}

// lookup returns a copy of the record for key without creating it.
func (r *rollup[T]) lookup(key string) (T, bool) {
	if rec, ok := r.byKey[key]; ok {
		return *rec, true
	}
	var zero T
	return zero, false
}

// keys returns all keys in first-seen order.
func (r *rollup[T]) keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *rollup[T]) len() int { return len(r.order) }

// The update operations below are the only ways rollup records change.
// Keeping them as a fixed set of typed bumps makes the counting rules in
// ApplyThread statically checkable.

// bumpMessage records one message for a sender or domain. Size is
// deliberately not part of this bump; see bumpSize.
func (s *SenderStats) bumpMessage(unread, withAttachment bool) {
	s.Messages++
	if unread {
		s.Unread++
	}
	if withAttachment {
		s.WithAttachments++
	}
}

// bumpSize adds one message's approximate size. Applied exactly once per
// message, in the deferred size pass of ApplyThread.
func (s *SenderStats) bumpSize(n int64) {
	s.ApproxSizeBytes += n
}

// bumpThread records thread participation. Called at most once per thread
// per key.
func (s *SenderStats) bumpThread() {
	s.Threads++
}

// bumpThread records one labeled thread.
func (l *LabelStats) bumpThread(unread bool) {
	l.Threads++
	if unread {
		l.UnreadThreads++
	}
}
