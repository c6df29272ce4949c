package game

import (
	"errors"
	"testing"
	"time"
)

func currentQuestion(t *testing.T, s *Session) Question {
	t.Helper()
	q := s.State().Question
	if q == nil {
		t.Fatal("no active question")
	}
	return q
}

func TestSessionStartRequiresWords(t *testing.T) {
	s, _, _ := newTestSession(fixedRand{f: 0.1}, nil)
	if err := s.Start(); !errors.Is(err, ErrNoWords) {
		t.Errorf("Start() error = %v, want %v", err, ErrNoWords)
	}
	if err := s.SelectOption("x"); !errors.Is(err, ErrNotStarted) {
		t.Errorf("SelectOption() error = %v, want %v", err, ErrNotStarted)
	}
}

func TestSessionVictoryWhenPoolEmpties(t *testing.T) {
	s, sched, log := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b", "C", "c"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := range 3 {
		mc, ok := currentQuestion(t, s).(MultipleChoiceQuestion)
		if !ok {
			t.Fatalf("question %d is %T, want MultipleChoiceQuestion", i, currentQuestion(t, s))
		}
		before := len(s.Pool())
		if err := s.SelectOption(mc.Word.Back); err != nil {
			t.Fatalf("SelectOption() error = %v", err)
		}
		sched.Advance(time.Second)
		if got := len(s.Pool()); got != before-1 {
			t.Fatalf("pool size = %d, want %d", got, before-1)
		}
		for _, item := range s.Pool() {
			if item.ID == mc.Word.ID {
				t.Fatalf("%s still in pool after a correct answer", item.ID)
			}
		}
	}

	st := s.State()
	if !st.Over || st.Outcome != OutcomeVictory {
		t.Fatalf("State() = over %v outcome %q, want over victory", st.Over, st.Outcome)
	}
	if st.Stats.Score != 30 || st.Stats.Correct != 3 || st.Stats.Attempts != 3 {
		t.Errorf("Stats = %+v, want score 30, correct 3, attempts 3", st.Stats)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending timers = %d after game over, want 0", sched.Pending())
	}

	summary, ok := s.Summary()
	if !ok {
		t.Fatal("Summary() not available after game over")
	}
	if summary.Accuracy != 100 || summary.WordsRemaining != 0 {
		t.Errorf("Summary() = %+v", summary)
	}
	if log.count(func(e Event) bool { _, ok := e.(GameOverEvent); return ok }) != 1 {
		t.Error("want exactly one GameOverEvent")
	}
}

func TestSessionTimeout(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sched.Advance(1799 * time.Second)
	if s.State().Over {
		t.Fatal("session over before the countdown reached zero")
	}
	sched.Advance(time.Second)

	st := s.State()
	if !st.Over || st.Outcome != OutcomeTimeout {
		t.Fatalf("State() = over %v outcome %q, want over timeout", st.Over, st.Outcome)
	}
	if len(s.Pool()) != 2 {
		t.Errorf("pool size = %d, want 2", len(s.Pool()))
	}
	if err := s.SelectOption("a"); !errors.Is(err, ErrGameOver) {
		t.Errorf("SelectOption() error = %v, want %v", err, ErrGameOver)
	}

	sched.Advance(10 * time.Second)
	if st.Stats.TimeRemaining != 0 || s.State().Stats.TimeRemaining != 0 {
		t.Errorf("TimeRemaining = %d, want 0", s.State().Stats.TimeRemaining)
	}
}

func TestSessionRestartKeepsSingleCountdown(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b"))
	for range 3 {
		if err := s.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	}
	sched.Advance(10 * time.Second)
	if got := s.State().Stats.TimeRemaining; got != 1790 {
		t.Errorf("TimeRemaining = %d, want 1790", got)
	}
}

func TestSessionScoreFloor(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b", "C", "c"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for range 6 {
		mc := currentQuestion(t, s).(MultipleChoiceQuestion)
		wrong := ""
		for _, o := range mc.Options {
			if o != mc.Word.Back {
				wrong = o
				break
			}
		}
		if err := s.SelectOption(wrong); err != nil {
			t.Fatalf("SelectOption() error = %v", err)
		}
		sched.Advance(2 * time.Second)
		if score := s.State().Stats.Score; score < 0 {
			t.Fatalf("Score = %d, want >= 0", score)
		}
	}

	st := s.State().Stats
	if st.Score != 0 || st.Attempts != 7 || len(s.Pool()) != 3 {
		t.Errorf("Stats = %+v pool %d, want score 0, attempts 7, pool 3", st, len(s.Pool()))
	}
}

func TestSessionDropsStaleCallbacks(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	mc := currentQuestion(t, s).(MultipleChoiceQuestion)
	if err := s.SelectOption(mc.Word.Back); err != nil {
		t.Fatalf("SelectOption() error = %v", err)
	}

	// The word set changes before the feedback delay elapses.
	s.Load(words("X", "x", "Y", "y"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sched.Advance(time.Second)

	st := s.State().Stats
	if st.Correct != 0 || st.Score != 0 || len(s.Pool()) != 2 {
		t.Errorf("stale callback applied: stats %+v, pool %d", st, len(s.Pool()))
	}
}

func TestSessionOnIncorrectWithNext(t *testing.T) {
	s, _, _ := newTestSession(fixedRand{f: 0.1}, words("A", "a", "B", "b"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	next := FillInBlankQuestion{Word: s.Pool()[1], PromptIsFront: true}
	s.OnIncorrectWithNext(next)

	if got := currentQuestion(t, s); got != Question(next) {
		t.Errorf("question = %+v, want %+v", got, next)
	}
	if err := s.SubmitAnswer("b"); err != nil {
		t.Errorf("SubmitAnswer() error = %v", err)
	}
	if err := s.SelectOption("a"); !errors.Is(err, ErrWrongGameType) {
		t.Errorf("SelectOption() error = %v, want %v", err, ErrWrongGameType)
	}
}

func indexOfTerm(terms []MatchTerm, text string) int {
	for i, term := range terms {
		if term.Text == text {
			return i
		}
	}
	return -1
}

func TestSessionMatchingMismatchTwiceSkips(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.9}, words("cat", "mèo", "dog", "chó"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m := currentQuestion(t, s).(MatchingQuestion)
	left := indexOfTerm(m.LeftTerms, "cat")
	right := indexOfTerm(m.RightTerms, "chó")

	for miss := 1; miss <= 2; miss++ {
		if err := s.SelectLeft(left); err != nil {
			t.Fatalf("miss %d: SelectLeft() error = %v", miss, err)
		}
		if err := s.SelectRight(right); err != nil {
			t.Fatalf("miss %d: SelectRight() error = %v", miss, err)
		}
		if miss == 1 {
			sched.Advance(time.Second)
		}
	}

	fb := s.State().Feedback
	if fb == nil || fb.Phase != PhaseFailed || fb.WrongAttempts != 2 {
		t.Fatalf("Feedback = %+v, want failed after two misses", fb)
	}

	sched.Advance(2 * time.Second)
	st := s.State()
	if st.Stats.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", st.Stats.Attempts)
	}
	if st.Stats.Score != 0 {
		t.Errorf("Score = %d, want 0", st.Stats.Score)
	}
	if len(s.Pool()) != 2 {
		t.Errorf("pool size = %d, want 2", len(s.Pool()))
	}
	if _, ok := st.Question.(MatchingQuestion); !ok {
		t.Errorf("next question is %T, want MatchingQuestion", st.Question)
	}
	if st.Feedback.WrongAttempts != 0 {
		t.Errorf("WrongAttempts = %d on the new question, want 0", st.Feedback.WrongAttempts)
	}
}

func TestSessionMatchingCompletionDeductsAndAdvances(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.9}, words("cat", "mèo", "dog", "chó", "bird", "chim"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m := currentQuestion(t, s).(MatchingQuestion)
	for _, w := range m.Words {
		if err := s.SelectLeft(indexOfTerm(m.LeftTerms, w.Front)); err != nil {
			t.Fatalf("SelectLeft() error = %v", err)
		}
		if err := s.SelectRight(indexOfTerm(m.RightTerms, w.Back)); err != nil {
			t.Fatalf("SelectRight() error = %v", err)
		}
	}
	if st := s.State().Stats; st.Score != 20 || st.Correct != 2 {
		t.Fatalf("Stats = %+v, want score 20, correct 2", st)
	}
	if _, ok := s.State().Question.(MatchingQuestion); !ok {
		t.Fatal("question changed before the completion delay")
	}

	sched.Advance(time.Second)
	st := s.State()
	mc, ok := st.Question.(MultipleChoiceQuestion)
	if !ok {
		t.Fatalf("next question is %T, want MultipleChoiceQuestion fallback", st.Question)
	}
	for _, w := range m.Words {
		if mc.Word.ID == w.ID {
			t.Errorf("matched word %s asked again", w.ID)
		}
	}
	if st.Stats.Score != 15 || st.Stats.Attempts != 2 {
		t.Errorf("Stats = %+v, want score 15, attempts 2", st.Stats)
	}
}

func TestSessionMatchingLastPairIsVictory(t *testing.T) {
	s, sched, _ := newTestSession(fixedRand{f: 0.9}, words("cat", "mèo", "dog", "chó"))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m := currentQuestion(t, s).(MatchingQuestion)
	for _, w := range m.Words {
		_ = s.SelectLeft(indexOfTerm(m.LeftTerms, w.Front))
		_ = s.SelectRight(indexOfTerm(m.RightTerms, w.Back))
	}
	if st := s.State(); !st.Over || st.Outcome != OutcomeVictory {
		t.Fatalf("State() = over %v outcome %q, want victory", st.Over, st.Outcome)
	}
	sched.Advance(5 * time.Second)
	if st := s.State(); st.Stats.Attempts != 1 || st.Question != nil {
		t.Errorf("activity after game over: %+v", st)
	}
}
