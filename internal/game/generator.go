package game

import (
	"errors"
	"fmt"
)

const (
	optionCount       = 4
	matchingPairCount = 2
)

// ErrPoolEmpty signals the end of a session: there is nothing left to ask.
var ErrPoolEmpty = errors.New("word pool is empty")

type Generator struct {
	rng Rand
}

func NewGenerator(rng Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds one question from remaining. full is the complete word set
// of the topic and only feeds multiple choice distractors.
func (g *Generator) Generate(remaining, full []VocabularyItem) (Question, error) {
	if len(remaining) == 0 {
		return nil, ErrPoolEmpty
	}

	gameType := SelectGameType(g.rng)
	if gameType == GameTypeMatching && len(remaining) < matchingPairCount {
		gameType = GameTypeMultipleChoice
		if g.rng.IntN(2) == 1 {
			gameType = GameTypeFillInBlank
		}
	}

	switch gameType {
	case GameTypeMultipleChoice:
		return g.multipleChoice(g.pick(remaining), full), nil
	case GameTypeFillInBlank:
		return g.fillInBlank(g.pick(remaining)), nil
	case GameTypeMatching:
		return g.matching(remaining), nil
	default:
		return nil, fmt.Errorf("unknown game type: %s", gameType)
	}
}

func (g *Generator) pick(pool []VocabularyItem) VocabularyItem {
	return pool[g.rng.IntN(len(pool))]
}

func (g *Generator) multipleChoice(word VocabularyItem, full []VocabularyItem) MultipleChoiceQuestion {
	options := make([]string, 0, optionCount)
	options = append(options, word.Back)
	seen := map[string]struct{}{word.Back: {}}

	for _, other := range Shuffle(g.rng, excludeItems(full, word.ID)) {
		if len(options) == optionCount {
			break
		}
		if _, dup := seen[other.Back]; dup {
			continue
		}
		seen[other.Back] = struct{}{}
		options = append(options, other.Back)
	}

	for n := 1; len(options) < optionCount; n++ {
		placeholder := fmt.Sprintf("Wrong answer %d", n)
		if _, dup := seen[placeholder]; dup {
			continue
		}
		seen[placeholder] = struct{}{}
		options = append(options, placeholder)
	}

	return MultipleChoiceQuestion{
		Word:    word,
		Options: Shuffle(g.rng, options),
	}
}

func (g *Generator) fillInBlank(word VocabularyItem) FillInBlankQuestion {
	return FillInBlankQuestion{
		Word:          word,
		PromptIsFront: g.rng.IntN(2) == 0,
	}
}

func (g *Generator) matching(remaining []VocabularyItem) MatchingQuestion {
	words := Shuffle(g.rng, remaining)[:matchingPairCount]

	left := make([]MatchTerm, len(words))
	right := make([]MatchTerm, len(words))
	for i, w := range words {
		left[i] = MatchTerm{ItemID: w.ID, Text: w.Front}
		right[i] = MatchTerm{ItemID: w.ID, Text: w.Back}
	}

	return MatchingQuestion{
		Words:      words,
		LeftTerms:  Shuffle(g.rng, left),
		RightTerms: Shuffle(g.rng, right),
	}
}
