package game

const (
	multipleChoiceWeight = 0.6
	fillInBlankWeight    = 0.2
)

// SelectGameType draws one value in [0,1) and maps it to a format:
// [0,0.6) multiple choice, [0.6,0.8) fill in blank, [0.8,1) matching.
func SelectGameType(r Rand) GameType {
	v := r.Float64()
	switch {
	case v < multipleChoiceWeight:
		return GameTypeMultipleChoice
	case v < multipleChoiceWeight+fillInBlankWeight:
		return GameTypeFillInBlank
	default:
		return GameTypeMatching
	}
}
