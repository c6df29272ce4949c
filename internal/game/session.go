package game

import (
	"errors"
	"time"
)

var (
	ErrNoWords       = errors.New("topic has no words to play")
	ErrNotStarted    = errors.New("session not started")
	ErrGameOver      = errors.New("session is over")
	ErrWrongGameType = errors.New("input does not match the active question")
)

// Scheduler runs f after d. The returned function stops the pending call and
// reports whether it did so.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

type Config struct {
	DurationSeconds  int
	TickInterval     time.Duration
	CorrectPoints    int
	IncorrectPenalty int
	Timing           Timing
}

func DefaultConfig() Config {
	return Config{
		DurationSeconds:  1800,
		TickInterval:     time.Second,
		CorrectPoints:    10,
		IncorrectPenalty: 5,
		Timing:           DefaultTiming(),
	}
}

type Stats struct {
	Score           int
	Attempts        int
	Correct         int
	TimeRemaining   int
	DurationSeconds int
	PoolSize        int
	StartedAt       time.Time
}

func (s Stats) Elapsed() int {
	return max(0, s.DurationSeconds-s.TimeRemaining)
}

// State is a point-in-time view of a session.
type State struct {
	Started   bool
	Over      bool
	Outcome   Outcome
	WordCount int
	Question  Question
	Feedback  *Feedback
	Stats     Stats
}

// Session is one game mode run over the words of a topic. It owns the pool,
// the stats and the countdown. A Session is not safe for concurrent use: every
// call, including the ones made by the Scheduler, must happen on one goroutine.
type Session struct {
	cfg     Config
	gen     *Generator
	rng     Rand
	sched   Scheduler
	observe func(Event)
	now     func() time.Time

	words    []VocabularyItem
	pool     []VocabularyItem
	stats    Stats
	round    Round
	started  bool
	over     bool
	outcome  Outcome
	summary  Summary
	seq      uint64
	pending  []func() bool
	tickSeq  uint64
	stopTick func() bool
}

func NewSession(cfg Config, rng Rand, sched Scheduler, observe func(Event)) *Session {
	if observe == nil {
		observe = func(Event) {}
	}
	return &Session{
		cfg:     cfg,
		gen:     NewGenerator(rng),
		rng:     rng,
		sched:   sched,
		observe: observe,
		now:     time.Now,
		stats:   Stats{TimeRemaining: cfg.DurationSeconds, DurationSeconds: cfg.DurationSeconds},
	}
}

// Load replaces the word set and resets the session to its not-started state.
func (s *Session) Load(words []VocabularyItem) {
	s.halt()
	s.words = append([]VocabularyItem(nil), words...)
	s.pool = nil
	s.round = nil
	s.started = false
	s.over = false
	s.outcome = ""
	s.summary = Summary{}
	s.stats = Stats{TimeRemaining: s.cfg.DurationSeconds, DurationSeconds: s.cfg.DurationSeconds}
}

// Start begins a new run: shuffles the words into the pool, resets stats and
// the countdown, and asks the first question.
func (s *Session) Start() error {
	if len(s.words) == 0 {
		return ErrNoWords
	}

	s.halt()
	s.pool = Shuffle(s.rng, s.words)
	s.round = nil
	s.started = true
	s.over = false
	s.outcome = ""
	s.summary = Summary{}
	s.stats = Stats{
		TimeRemaining:   s.cfg.DurationSeconds,
		DurationSeconds: s.cfg.DurationSeconds,
		PoolSize:        len(s.pool),
		StartedAt:       s.now(),
	}

	s.observe(StartedEvent{WordCount: len(s.words), Stats: s.stats})
	s.scheduleTick()
	s.advance(s.pool)
	return nil
}

// Stop cancels the countdown and every pending callback.
func (s *Session) Stop() {
	s.halt()
	s.started = false
}

func (s *Session) Running() bool { return s.started && !s.over }

// OnCorrect credits itemID, removes it from the pool and, unless a matching
// round is active, moves on to the next question.
func (s *Session) OnCorrect(itemID string) {
	if !s.Running() {
		return
	}

	pool, ok := removeItem(s.pool, itemID)
	if !ok {
		return
	}
	s.pool = pool
	s.stats.Score += s.cfg.CorrectPoints
	s.stats.Correct++
	s.stats.PoolSize = len(s.pool)
	s.observe(StatsEvent{Stats: s.stats})

	if len(s.pool) == 0 {
		s.finish(OutcomeVictory)
		return
	}
	if s.activeType() != GameTypeMatching {
		s.advance(s.pool)
	}
}

// OnIncorrect deducts the penalty and asks a fresh question from the
// unchanged pool.
func (s *Session) OnIncorrect() {
	s.OnIncorrectWithNext(nil)
}

// OnIncorrectWithNext deducts the penalty and installs next, or a freshly
// generated question when next is nil.
func (s *Session) OnIncorrectWithNext(next Question) {
	if !s.Running() {
		return
	}
	s.penalize()
	if next == nil {
		s.advance(s.pool)
		return
	}
	s.install(next)
}

func (s *Session) SelectOption(option string) error {
	round, err := activeRound[*MultipleChoiceRound](s)
	if err != nil {
		return err
	}
	return round.Select(option)
}

func (s *Session) SubmitAnswer(answer string) error {
	round, err := activeRound[*FillInBlankRound](s)
	if err != nil {
		return err
	}
	return round.Submit(answer)
}

func (s *Session) SelectLeft(index int) error {
	round, err := activeRound[*MatchingRound](s)
	if err != nil {
		return err
	}
	return round.SelectLeft(index)
}

func (s *Session) SelectRight(index int) error {
	round, err := activeRound[*MatchingRound](s)
	if err != nil {
		return err
	}
	return round.SelectRight(index)
}

func activeRound[R Round](s *Session) (R, error) {
	var zero R
	switch {
	case s.over:
		return zero, ErrGameOver
	case !s.started:
		return zero, ErrNotStarted
	}
	round, ok := s.round.(R)
	if !ok {
		return zero, ErrWrongGameType
	}
	return round, nil
}

func (s *Session) State() State {
	st := State{
		Started:   s.started,
		Over:      s.over,
		Outcome:   s.outcome,
		WordCount: len(s.words),
		Stats:     s.stats,
	}
	if s.round != nil {
		fb := s.round.Feedback()
		st.Question = s.round.Question()
		st.Feedback = &fb
	}
	return st
}

// Summary reports the last finished run.
func (s *Session) Summary() (Summary, bool) {
	return s.summary, s.over
}

func (s *Session) Pool() []VocabularyItem {
	return append([]VocabularyItem(nil), s.pool...)
}

func (s *Session) activeType() GameType {
	if s.round == nil {
		return ""
	}
	return s.round.Question().Type()
}

func (s *Session) penalize() {
	s.stats.Score = max(0, s.stats.Score-s.cfg.IncorrectPenalty)
	s.observe(StatsEvent{Stats: s.stats})
}

func (s *Session) advance(pool []VocabularyItem) {
	q, err := s.gen.Generate(pool, s.words)
	if err != nil {
		s.finish(OutcomeVictory)
		return
	}
	s.install(q)
}

func (s *Session) install(q Question) {
	s.cancelPending()
	s.seq++
	s.stats.Attempts++
	s.round = newRound(q, &questionHost{session: s, seq: s.seq}, s.cfg.Timing)
	s.observe(QuestionEvent{Question: q, Stats: s.stats})
}

func (s *Session) finish(outcome Outcome) {
	s.halt()
	s.over = true
	s.outcome = outcome
	s.round = nil
	s.summary = Summarize(s.stats, outcome, len(s.pool))
	s.observe(GameOverEvent{Summary: s.summary})
}

func (s *Session) scheduleTick() {
	seq := s.tickSeq
	s.stopTick = s.sched.AfterFunc(s.cfg.TickInterval, func() {
		if seq != s.tickSeq || !s.Running() {
			return
		}
		s.tick()
	})
}

func (s *Session) tick() {
	s.stats.TimeRemaining = max(0, s.stats.TimeRemaining-1)
	s.observe(TickEvent{TimeRemaining: s.stats.TimeRemaining})
	if s.stats.TimeRemaining == 0 {
		s.finish(OutcomeTimeout)
		return
	}
	s.scheduleTick()
}

// halt stops the countdown and invalidates the active question's callbacks.
func (s *Session) halt() {
	s.tickSeq++
	if s.stopTick != nil {
		s.stopTick()
		s.stopTick = nil
	}
	s.cancelPending()
	s.seq++
}

func (s *Session) cancelPending() {
	for _, stop := range s.pending {
		stop()
	}
	s.pending = nil
}

// questionHost binds a round to the question it was created for.
type questionHost struct {
	session *Session
	seq     uint64
}

func (h *questionHost) live() bool {
	return h.seq == h.session.seq && h.session.Running()
}

func (h *questionHost) Correct(itemID string) {
	if h.live() {
		h.session.OnCorrect(itemID)
	}
}

func (h *questionHost) Incorrect() {
	if h.live() {
		h.session.OnIncorrect()
	}
}

func (h *questionHost) Penalize() {
	if h.live() {
		h.session.penalize()
	}
}

func (h *questionHost) Complete(exclude ...string) {
	if !h.live() {
		return
	}
	s := h.session
	next, err := s.gen.Generate(excludeItems(s.pool, exclude...), s.words)
	if err != nil {
		s.finish(OutcomeVictory)
		return
	}
	s.OnIncorrectWithNext(next)
}

func (h *questionHost) HandOff(exclude ...string) {
	if h.live() {
		h.session.advance(excludeItems(h.session.pool, exclude...))
	}
}

func (h *questionHost) After(d time.Duration, f func()) {
	if !h.live() {
		return
	}
	stop := h.session.sched.AfterFunc(d, func() {
		if h.live() {
			f()
		}
	})
	h.session.pending = append(h.session.pending, stop)
}

func (h *questionHost) Feedback(fb Feedback) {
	if h.live() {
		h.session.observe(FeedbackEvent{Feedback: fb})
	}
}
