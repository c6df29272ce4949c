package game

// VocabularyItem is one flashcard as seen by a game session.
type VocabularyItem struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
	Type  string `json:"type,omitempty"`
}

type GameType string

const (
	GameTypeMultipleChoice GameType = "multiple_choice"
	GameTypeFillInBlank    GameType = "fill_in_blank"
	GameTypeMatching       GameType = "matching"
)

func removeItem(pool []VocabularyItem, id string) ([]VocabularyItem, bool) {
	for i, item := range pool {
		if item.ID == id {
			out := make([]VocabularyItem, 0, len(pool)-1)
			out = append(out, pool[:i]...)
			return append(out, pool[i+1:]...), true
		}
	}
	return pool, false
}

func excludeItems(pool []VocabularyItem, ids ...string) []VocabularyItem {
	if len(ids) == 0 {
		return pool
	}
	skip := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	out := make([]VocabularyItem, 0, len(pool))
	for _, item := range pool {
		if _, ok := skip[item.ID]; !ok {
			out = append(out, item)
		}
	}
	return out
}
