package game

import (
	"math/rand/v2"
	"time"
)

// fixedRand always draws f and always picks index 0.
type fixedRand struct {
	f float64
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int      { return 0 }

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

type fakeTask struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

// fakeScheduler is a manual clock. Advance fires due tasks in deadline order,
// including the ones scheduled while advancing.
type fakeScheduler struct {
	now   time.Duration
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &fakeTask{at: s.now + d, f: f}
	s.tasks = append(s.tasks, t)
	return func() bool {
		if t.fired || t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		next.f()
	}
	s.now = target
}

func (s *fakeScheduler) nextDue(target time.Duration) *fakeTask {
	var next *fakeTask
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.fired || t.stopped {
			continue
		}
		live = append(live, t)
		if t.at <= target && (next == nil || t.at < next.at) {
			next = t
		}
	}
	s.tasks = live
	return next
}

func (s *fakeScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) { l.events = append(l.events, e) }

func (l *eventLog) count(match func(Event) bool) int {
	n := 0
	for _, e := range l.events {
		if match(e) {
			n++
		}
	}
	return n
}

func words(pairs ...string) []VocabularyItem {
	items := make([]VocabularyItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		items = append(items, VocabularyItem{ID: pairs[i], Front: pairs[i], Back: pairs[i+1], Type: "n."})
	}
	return items
}

func newTestSession(rng Rand, items []VocabularyItem) (*Session, *fakeScheduler, *eventLog) {
	sched := &fakeScheduler{}
	log := &eventLog{}
	s := NewSession(DefaultConfig(), rng, sched, log.record)
	s.Load(items)
	return s, sched, log
}
