package game

import "slices"

const maxWrongAttempts = 2

// MatchingRound pairs the left (front) and right (back) terms of a
// MatchingQuestion. Two misses end the round early.
type MatchingRound struct {
	question MatchingQuestion
	host     Reporter
	timing   Timing

	phase         Phase
	left, right   int
	matched       map[string]struct{}
	matchedLeft   []int
	matchedRight  []int
	wrongAttempts int
}

func NewMatchingRound(q MatchingQuestion, host Reporter, timing Timing) *MatchingRound {
	return &MatchingRound{
		question: q,
		host:     host,
		timing:   timing,
		phase:    PhaseSelecting,
		left:     -1,
		right:    -1,
		matched:  make(map[string]struct{}, len(q.Words)),
	}
}

func (r *MatchingRound) Question() Question { return r.question }

func (r *MatchingRound) SelectLeft(index int) error {
	if err := r.checkSelectable(r.question.LeftTerms, index); err != nil {
		return err
	}
	r.left = index
	return r.selected()
}

func (r *MatchingRound) SelectRight(index int) error {
	if err := r.checkSelectable(r.question.RightTerms, index); err != nil {
		return err
	}
	r.right = index
	return r.selected()
}

func (r *MatchingRound) checkSelectable(terms []MatchTerm, index int) error {
	switch r.phase {
	case PhaseMismatch:
		return ErrRoundLocked
	case PhaseComplete, PhaseFailed:
		return ErrAlreadyAnswered
	}
	if index < 0 || index >= len(terms) {
		return ErrInvalidSelection
	}
	if _, done := r.matched[terms[index].ItemID]; done {
		return ErrInvalidSelection
	}
	return nil
}

func (r *MatchingRound) selected() error {
	r.phase = PhaseSelecting
	if r.left < 0 || r.right < 0 {
		r.host.Feedback(r.Feedback())
		return nil
	}

	leftTerm := r.question.LeftTerms[r.left]
	rightTerm := r.question.RightTerms[r.right]
	if leftTerm.ItemID == rightTerm.ItemID {
		r.match(leftTerm.ItemID)
	} else {
		r.mismatch()
	}
	return nil
}

func (r *MatchingRound) match(id string) {
	r.matched[id] = struct{}{}
	r.matchedLeft = append(r.matchedLeft, r.left)
	r.matchedRight = append(r.matchedRight, r.right)
	r.left, r.right = -1, -1

	complete := len(r.matched) == len(r.question.Words)
	if complete {
		r.phase = PhaseComplete
	} else {
		r.phase = PhaseMatched
	}
	r.host.Feedback(r.Feedback())
	r.host.Correct(id)

	if complete {
		ids := make([]string, 0, len(r.matched))
		for matchedID := range r.matched {
			ids = append(ids, matchedID)
		}
		r.host.After(r.timing.MatchDelay, func() { r.host.Complete(ids...) })
		return
	}

	r.host.After(r.timing.MatchDelay, func() {
		if r.phase == PhaseMatched {
			r.phase = PhaseSelecting
			r.host.Feedback(r.Feedback())
		}
	})
}

func (r *MatchingRound) mismatch() {
	r.wrongAttempts++
	r.phase = PhaseMismatch
	if r.wrongAttempts >= maxWrongAttempts {
		r.phase = PhaseFailed
	}
	r.host.Feedback(r.Feedback())
	r.host.Penalize()

	if r.phase == PhaseFailed {
		r.host.After(r.timing.SkipDelay, func() { r.host.HandOff() })
		return
	}

	r.host.After(r.timing.MatchDelay, func() {
		r.left, r.right = -1, -1
		r.phase = PhaseSelecting
		r.host.Feedback(r.Feedback())
	})
}

func (r *MatchingRound) WrongAttempts() int { return r.wrongAttempts }

func (r *MatchingRound) Feedback() Feedback {
	return Feedback{
		GameType:      GameTypeMatching,
		Phase:         r.phase,
		Correct:       r.phase == PhaseMatched || r.phase == PhaseComplete,
		Left:          r.left,
		Right:         r.right,
		MatchedLeft:   slices.Clone(r.matchedLeft),
		MatchedRight:  slices.Clone(r.matchedRight),
		WrongAttempts: r.wrongAttempts,
	}
}
