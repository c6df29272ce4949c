package game

import (
	"errors"
	"time"
)

var (
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrRoundLocked      = errors.New("round is showing feedback")
)

// Reporter is how a round talks back to the session that owns it. Rounds never
// touch the pool or the score themselves.
//
// All calls made through a Reporter after its question was replaced are dropped.
type Reporter interface {
	// Correct credits itemID and removes it from the pool.
	Correct(itemID string)
	// Incorrect deducts the penalty and moves to a freshly generated question.
	Incorrect()
	// Penalize deducts the penalty without changing the question.
	Penalize()
	// Complete deducts the penalty and moves to a question generated from the
	// pool minus exclude. A finished matching round ends this way.
	Complete(exclude ...string)
	// HandOff moves to a question generated from the pool minus exclude,
	// without penalty.
	HandOff(exclude ...string)
	// After runs f once d has elapsed, unless the question changed meanwhile.
	After(d time.Duration, f func())
	// Feedback publishes the round's visible state.
	Feedback(fb Feedback)
}

// Timing holds the feedback windows of the mini-games.
type Timing struct {
	CorrectDelay   time.Duration
	IncorrectDelay time.Duration
	MatchDelay     time.Duration
	SkipDelay      time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		CorrectDelay:   time.Second,
		IncorrectDelay: 2 * time.Second,
		MatchDelay:     time.Second,
		SkipDelay:      2 * time.Second,
	}
}

type Phase string

const (
	PhaseUnanswered Phase = "unanswered"
	PhaseAnswered   Phase = "answered"
	PhaseSelecting  Phase = "selecting"
	PhaseMatched    Phase = "matched"
	PhaseMismatch   Phase = "mismatch"
	PhaseComplete   Phase = "complete"
	PhaseFailed     Phase = "failed"
)

// Feedback is the visible state of the active round. Index fields are -1 when
// nothing is selected.
type Feedback struct {
	GameType      GameType
	Phase         Phase
	Correct       bool
	Selected      string
	Expected      string
	Left          int
	Right         int
	MatchedLeft   []int
	MatchedRight  []int
	WrongAttempts int
}

// Round is the mini-game state machine for one question.
type Round interface {
	Question() Question
	Feedback() Feedback
}

func newRound(q Question, host Reporter, timing Timing) Round {
	switch q := q.(type) {
	case MultipleChoiceQuestion:
		return NewMultipleChoiceRound(q, host, timing)
	case FillInBlankQuestion:
		return NewFillInBlankRound(q, host, timing)
	case MatchingQuestion:
		return NewMatchingRound(q, host, timing)
	default:
		return nil
	}
}
