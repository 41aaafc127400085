package sim

import "sort"

type timedEvent struct {
	at   float64
	fire func()
}

// Schedule is a deterministic event queue keyed by elapsed virtual
// simulation time. Events added at the same instant fire in the order
// they were added. There is no cancellation; once the show script is
// built it runs to the end.
type Schedule struct {
	events []timedEvent
	next   int
}

// At registers fire to run once elapsed time reaches at seconds.
// Must not be called after Run has begun consuming the queue.
func (s *Schedule) At(at float64, fire func()) {
	i := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].at > at
	})
	s.events = append(s.events, timedEvent{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = timedEvent{at: at, fire: fire}
}

// Run fires every event due at or before elapsed, in order, and
// returns how many fired.
func (s *Schedule) Run(elapsed float64) int {
	fired := 0
	for s.next < len(s.events) && s.events[s.next].at <= elapsed {
		s.events[s.next].fire()
		s.next++
		fired++
	}
	return fired
}

// Pending returns the number of events not yet fired.
func (s *Schedule) Pending() int {
	return len(s.events) - s.next
}
