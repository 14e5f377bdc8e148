package traverse

// signal is a minimal typed subscriber list. Emission order follows
// subscription order; subscribers may unsubscribe during an emit.
type signal[T any] struct {
	next int
	subs []subEntry[T]
}

type subEntry[T any] struct {
	id int
	fn func(T)
}

// subscribe registers fn and returns a removal closure.
func (s *signal[T]) subscribe(fn func(T)) func() {
	s.next++
	id := s.next
	s.subs = append(s.subs, subEntry[T]{id: id, fn: fn})
	return func() {
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// emit calls every subscriber registered at the time of the call.
func (s *signal[T]) emit(v T) {
	snapshot := make([]subEntry[T], len(s.subs))
	copy(snapshot, s.subs)
	for _, e := range snapshot {
		e.fn(v)
	}
}

// empty reports whether nothing is listening.
func (s *signal[T]) empty() bool {
	return len(s.subs) == 0
}
