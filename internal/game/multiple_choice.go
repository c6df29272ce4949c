package game

import "slices"

type MultipleChoiceRound struct {
	question MultipleChoiceQuestion
	host     Reporter
	timing   Timing

	answered bool
	selected string
}

func NewMultipleChoiceRound(q MultipleChoiceQuestion, host Reporter, timing Timing) *MultipleChoiceRound {
	return &MultipleChoiceRound{question: q, host: host, timing: timing}
}

func (r *MultipleChoiceRound) Question() Question { return r.question }

// Select answers the question with one of its options. Only the first
// selection counts.
func (r *MultipleChoiceRound) Select(option string) error {
	if r.answered {
		return ErrAlreadyAnswered
	}
	if !slices.Contains(r.question.Options, option) {
		return ErrInvalidSelection
	}

	r.answered = true
	r.selected = option
	r.host.Feedback(r.Feedback())

	if r.correct() {
		id := r.question.Word.ID
		r.host.After(r.timing.CorrectDelay, func() { r.host.Correct(id) })
	} else {
		r.host.After(r.timing.IncorrectDelay, r.host.Incorrect)
	}
	return nil
}

func (r *MultipleChoiceRound) correct() bool {
	return r.selected == r.question.Word.Back
}

func (r *MultipleChoiceRound) Feedback() Feedback {
	fb := Feedback{
		GameType: GameTypeMultipleChoice,
		Phase:    PhaseUnanswered,
		Left:     -1,
		Right:    -1,
	}
	if r.answered {
		fb.Phase = PhaseAnswered
		fb.Correct = r.correct()
		fb.Selected = r.selected
		fb.Expected = r.question.Word.Back
	}
	return fb
}
