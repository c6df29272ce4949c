package game

// Question is the active prompt of a session. Exactly one of
// MultipleChoiceQuestion, FillInBlankQuestion or MatchingQuestion.
type Question interface {
	Type() GameType
	isQuestion()
}

type MultipleChoiceQuestion struct {
	Word    VocabularyItem
	Options []string
}

func (MultipleChoiceQuestion) Type() GameType { return GameTypeMultipleChoice }
func (MultipleChoiceQuestion) isQuestion()    {}

// FillInBlankQuestion shows Word.Front and expects Word.Back when PromptIsFront,
// and the inverse otherwise.
type FillInBlankQuestion struct {
	Word          VocabularyItem
	PromptIsFront bool
}

func (FillInBlankQuestion) Type() GameType { return GameTypeFillInBlank }
func (FillInBlankQuestion) isQuestion()    {}

func (q FillInBlankQuestion) Prompt() string {
	if q.PromptIsFront {
		return q.Word.Front
	}
	return q.Word.Back
}

func (q FillInBlankQuestion) Expected() string {
	if q.PromptIsFront {
		return q.Word.Back
	}
	return q.Word.Front
}

// MatchTerm is one entry of a matching column. ItemID never leaves the server.
type MatchTerm struct {
	ItemID string
	Text   string
}

type MatchingQuestion struct {
	Words      []VocabularyItem
	LeftTerms  []MatchTerm
	RightTerms []MatchTerm
}

func (MatchingQuestion) Type() GameType { return GameTypeMatching }
func (MatchingQuestion) isQuestion()    {}
