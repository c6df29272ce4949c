package game

import "strings"

type FillInBlankRound struct {
	question FillInBlankQuestion
	host     Reporter
	timing   Timing

	submitted bool
	answer    string
}

func NewFillInBlankRound(q FillInBlankQuestion, host Reporter, timing Timing) *FillInBlankRound {
	return &FillInBlankRound{question: q, host: host, timing: timing}
}

func (r *FillInBlankRound) Question() Question { return r.question }

// Submit judges answer against the expected term. Further submissions are
// rejected.
func (r *FillInBlankRound) Submit(answer string) error {
	if r.submitted {
		return ErrAlreadyAnswered
	}

	r.submitted = true
	r.answer = answer
	r.host.Feedback(r.Feedback())

	if r.correct() {
		id := r.question.Word.ID
		r.host.After(r.timing.CorrectDelay, func() { r.host.Correct(id) })
	} else {
		r.host.After(r.timing.IncorrectDelay, r.host.Incorrect)
	}
	return nil
}

func (r *FillInBlankRound) correct() bool {
	return CheckAnswer(r.answer, r.question.Expected())
}

func (r *FillInBlankRound) Feedback() Feedback {
	fb := Feedback{
		GameType: GameTypeFillInBlank,
		Phase:    PhaseUnanswered,
		Left:     -1,
		Right:    -1,
	}
	if r.submitted {
		fb.Phase = PhaseAnswered
		fb.Correct = r.correct()
		fb.Selected = r.answer
		fb.Expected = r.question.Expected()
	}
	return fb
}

// CheckAnswer compares a typed answer to the expected term, ignoring
// surrounding whitespace and case.
func CheckAnswer(answer, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}
