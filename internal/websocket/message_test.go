package websocket

import (
	"errors"
	"strings"
	"testing"

	"flashcard-service/internal/game"

	"github.com/goccy/go-json"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    Command
		wantErr bool
	}{
		{"start", `{"type":"start"}`, Command{Type: MessageTypeStart}, false},
		{"ping", `{"type":"ping"}`, Command{Type: MessageTypePing}, false},
		{"state", `{"type":"state"}`, Command{Type: MessageTypeState}, false},
		{"select option", `{"type":"select_option","payload":{"option":"Phá rừng"}}`, Command{Type: MessageTypeSelectOption, Option: "Phá rừng"}, false},
		{"blank answer", `{"type":"submit_answer","payload":{"answer":""}}`, Command{Type: MessageTypeSubmitAnswer}, false},
		{"left zero", `{"type":"select_left","payload":{"index":0}}`, Command{Type: MessageTypeSelectLeft, Index: 0}, false},
		{"right one", `{"type":"select_right","payload":{"index":1}}`, Command{Type: MessageTypeSelectRight, Index: 1}, false},
		{"empty option", `{"type":"select_option","payload":{"option":""}}`, Command{}, true},
		{"missing payload", `{"type":"select_option"}`, Command{}, true},
		{"missing index", `{"type":"select_left","payload":{}}`, Command{}, true},
		{"negative index", `{"type":"select_right","payload":{"index":-1}}`, Command{}, true},
		{"unknown type", `{"type":"join"}`, Command{}, true},
		{"missing type", `{"payload":{}}`, Command{}, true},
		{"not json", `start`, Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand([]byte(tt.frame))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMessage) {
					t.Errorf("DecodeCommand() error = %v, want %v", err, ErrInvalidMessage)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeCommand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeCommand() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEventMessageQuestionHidesAnswers(t *testing.T) {
	word := game.VocabularyItem{ID: "w1", Front: "Deforestation", Back: "Phá rừng", Type: "n."}
	other := game.VocabularyItem{ID: "w2", Front: "Air pollution", Back: "Ô nhiễm không khí"}
	stats := game.Stats{TimeRemaining: 1799, PoolSize: 2}

	tests := []struct {
		name     string
		question game.Question
		check    func(t *testing.T, p QuestionPayload)
	}{
		{
			name:     "fill in blank from back",
			question: game.FillInBlankQuestion{Word: word, PromptIsFront: false},
			check: func(t *testing.T, p QuestionPayload) {
				if p.Prompt != "Phá rừng" || p.PromptSide != "back" {
					t.Errorf("prompt = %q/%q, want %q/back", p.Prompt, p.PromptSide, "Phá rừng")
				}
			},
		},
		{
			name: "matching",
			question: game.MatchingQuestion{
				Words:      []game.VocabularyItem{word, other},
				LeftTerms:  []game.MatchTerm{{ItemID: "w2", Text: other.Front}, {ItemID: "w1", Text: word.Front}},
				RightTerms: []game.MatchTerm{{ItemID: "w1", Text: word.Back}, {ItemID: "w2", Text: other.Back}},
			},
			check: func(t *testing.T, p QuestionPayload) {
				if len(p.Left) != 2 || p.Left[0] != other.Front || p.Right[0] != word.Back {
					t.Errorf("columns = %v / %v", p.Left, p.Right)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := eventMessage(game.QuestionEvent{Question: tt.question, Stats: stats})
			if msg.Type != MessageTypeQuestion {
				t.Fatalf("eventMessage() type = %s, want %s", msg.Type, MessageTypeQuestion)
			}
			p := msg.Payload.(QuestionPayload)
			tt.check(t, p)
			if p.Stats.Clock != "29:59" {
				t.Errorf("clock = %q, want %q", p.Stats.Clock, "29:59")
			}

			data, err := json.Marshal(msg)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if strings.Contains(string(data), `"w1"`) || strings.Contains(string(data), "expected") {
				t.Errorf("question frame leaks the answer: %s", data)
			}
		})
	}
}

func TestEventMessageMapping(t *testing.T) {
	tests := []struct {
		event game.Event
		want  MessageType
	}{
		{game.StartedEvent{WordCount: 3}, MessageTypeStats},
		{game.StatsEvent{}, MessageTypeStats},
		{game.FeedbackEvent{Feedback: game.Feedback{Left: -1, Right: -1}}, MessageTypeFeedback},
		{game.TickEvent{TimeRemaining: 65}, MessageTypeTick},
		{game.GameOverEvent{Summary: game.Summary{Outcome: game.OutcomeTimeout}}, MessageTypeGameOver},
	}
	for _, tt := range tests {
		if got := eventMessage(tt.event); got.Type != tt.want {
			t.Errorf("eventMessage(%T) = %s, want %s", tt.event, got.Type, tt.want)
		}
	}

	tick := eventMessage(game.TickEvent{TimeRemaining: 65}).Payload.(TickPayload)
	if tick.Clock != "01:05" {
		t.Errorf("tick clock = %q, want %q", tick.Clock, "01:05")
	}
}

func TestSummaryModel(t *testing.T) {
	s := game.Summarize(game.Stats{Score: 40, Attempts: 4, Correct: 2, DurationSeconds: 1800, TimeRemaining: 1500}, game.OutcomeVictory, 0)
	got := SummaryModel(s)
	if got.Outcome != "victory" || got.Accuracy != 50 || got.Elapsed != "05:00" {
		t.Errorf("SummaryModel() = %+v", got)
	}
	if got.FinalScore != s.FinalScore || got.Verdict != s.Verdict {
		t.Errorf("SummaryModel() = %+v, want fields of %+v", got, s)
	}
}
