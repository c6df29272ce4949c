package websocket

import (
	"errors"
	"fmt"

	"flashcard-service/internal/game"
	"flashcard-service/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

type MessageType string

const (
	// Client -> Server
	MessageTypeStart        MessageType = "start"
	MessageTypeSelectOption MessageType = "select_option"
	MessageTypeSubmitAnswer MessageType = "submit_answer"
	MessageTypeSelectLeft   MessageType = "select_left"
	MessageTypeSelectRight  MessageType = "select_right"
	MessageTypeState        MessageType = "state"
	MessageTypePing         MessageType = "ping"

	// Server -> Client
	MessageTypeConnected   MessageType = "connected"
	MessageTypeTopicLoaded MessageType = "topic_loaded"
	MessageTypeQuestion    MessageType = "question"
	MessageTypeFeedback    MessageType = "feedback"
	MessageTypeStats       MessageType = "stats"
	MessageTypeTick        MessageType = "tick"
	MessageTypeGameOver    MessageType = "game_over"
	MessageTypeError       MessageType = "error"
	MessageTypePong        MessageType = "pong"
)

// ErrInvalidMessage is returned by DecodeCommand for frames that are not
// well-formed commands.
var ErrInvalidMessage = errors.New("invalid message")

var validate = validator.New(validator.WithRequiredStructEnabled())

type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

type inboundMessage struct {
	Type    MessageType     `json:"type" validate:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type SelectOptionPayload struct {
	Option string `json:"option" validate:"required"`
}

// SubmitAnswerPayload allows a blank answer; it is judged like any other.
type SubmitAnswerPayload struct {
	Answer string `json:"answer"`
}

type SelectIndexPayload struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// Command is a decoded client frame.
type Command struct {
	Type   MessageType
	Option string
	Answer string
	Index  int
}

// DecodeCommand parses and validates one client frame.
func DecodeCommand(data []byte) (Command, error) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validate.Struct(msg); err != nil {
		return Command{}, fmt.Errorf("%w: missing type", ErrInvalidMessage)
	}

	cmd := Command{Type: msg.Type}
	switch msg.Type {
	case MessageTypeStart, MessageTypeState, MessageTypePing:
	case MessageTypeSelectOption:
		var p SelectOptionPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		cmd.Option = p.Option
	case MessageTypeSubmitAnswer:
		var p SubmitAnswerPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		cmd.Answer = p.Answer
	case MessageTypeSelectLeft, MessageTypeSelectRight:
		var p SelectIndexPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		cmd.Index = *p.Index
	default:
		return Command{}, fmt.Errorf("%w: unknown message type %q", ErrInvalidMessage, msg.Type)
	}
	return cmd, nil
}

func decodePayload(raw json.RawMessage, dest any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", ErrInvalidMessage)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}

type ConnectedPayload struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	TopicID   string `json:"topic_id"`
	Status    string `json:"status"`
}

type TopicLoadedPayload struct {
	WordCount int `json:"word_count"`
}

// QuestionPayload never carries the expected answer.
type QuestionPayload struct {
	GameType     game.GameType `json:"game_type"`
	Prompt       string        `json:"prompt,omitempty"`
	PromptSide   string        `json:"prompt_side,omitempty"`
	PartOfSpeech string        `json:"part_of_speech,omitempty"`
	Options      []string      `json:"options,omitempty"`
	Left         []string      `json:"left,omitempty"`
	Right        []string      `json:"right,omitempty"`
	Stats        StatsPayload  `json:"stats"`
}

type FeedbackPayload struct {
	GameType      game.GameType `json:"game_type"`
	Phase         game.Phase    `json:"phase"`
	Correct       bool          `json:"correct"`
	Selected      string        `json:"selected,omitempty"`
	Expected      string        `json:"expected,omitempty"`
	Left          int           `json:"left"`
	Right         int           `json:"right"`
	MatchedLeft   []int         `json:"matched_left,omitempty"`
	MatchedRight  []int         `json:"matched_right,omitempty"`
	WrongAttempts int           `json:"wrong_attempts"`
}

type StatsPayload struct {
	Score         int     `json:"score"`
	Attempts      int     `json:"attempts"`
	Correct       int     `json:"correct"`
	Accuracy      float64 `json:"accuracy"`
	TimeRemaining int     `json:"time_remaining"`
	Clock         string  `json:"clock"`
	WordsLeft     int     `json:"words_left"`
}

type TickPayload struct {
	TimeRemaining int    `json:"time_remaining"`
	Clock         string `json:"clock"`
}

type GameOverPayload struct {
	Summary models.SessionSummary `json:"summary"`
}

type StatePayload struct {
	Started   bool             `json:"started"`
	Over      bool             `json:"over"`
	Outcome   game.Outcome     `json:"outcome,omitempty"`
	WordCount int              `json:"word_count"`
	Question  *QuestionPayload `json:"question,omitempty"`
	Feedback  *FeedbackPayload `json:"feedback,omitempty"`
	Stats     StatsPayload     `json:"stats"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newStatsPayload(s game.Stats) StatsPayload {
	return StatsPayload{
		Score:         s.Score,
		Attempts:      s.Attempts,
		Correct:       s.Correct,
		Accuracy:      game.Accuracy(s.Correct, s.Attempts),
		TimeRemaining: s.TimeRemaining,
		Clock:         game.FormatTime(s.TimeRemaining),
		WordsLeft:     s.PoolSize,
	}
}

func newQuestionPayload(q game.Question, s game.Stats) QuestionPayload {
	p := QuestionPayload{GameType: q.Type(), Stats: newStatsPayload(s)}
	switch q := q.(type) {
	case game.MultipleChoiceQuestion:
		p.Prompt = q.Word.Front
		p.PartOfSpeech = q.Word.Type
		p.Options = q.Options
	case game.FillInBlankQuestion:
		p.Prompt = q.Prompt()
		p.PartOfSpeech = q.Word.Type
		p.PromptSide = "back"
		if q.PromptIsFront {
			p.PromptSide = "front"
		}
	case game.MatchingQuestion:
		p.Left = termTexts(q.LeftTerms)
		p.Right = termTexts(q.RightTerms)
	}
	return p
}

func termTexts(terms []game.MatchTerm) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Text
	}
	return out
}

func newFeedbackPayload(fb game.Feedback) FeedbackPayload {
	return FeedbackPayload{
		GameType:      fb.GameType,
		Phase:         fb.Phase,
		Correct:       fb.Correct,
		Selected:      fb.Selected,
		Expected:      fb.Expected,
		Left:          fb.Left,
		Right:         fb.Right,
		MatchedLeft:   fb.MatchedLeft,
		MatchedRight:  fb.MatchedRight,
		WrongAttempts: fb.WrongAttempts,
	}
}

func newStatePayload(st game.State) StatePayload {
	p := StatePayload{
		Started:   st.Started,
		Over:      st.Over,
		Outcome:   st.Outcome,
		WordCount: st.WordCount,
		Stats:     newStatsPayload(st.Stats),
	}
	if st.Question != nil {
		q := newQuestionPayload(st.Question, st.Stats)
		p.Question = &q
	}
	if st.Feedback != nil {
		fb := newFeedbackPayload(*st.Feedback)
		p.Feedback = &fb
	}
	return p
}

// SummaryModel converts a game summary to its wire and event form.
func SummaryModel(s game.Summary) models.SessionSummary {
	return models.SessionSummary{
		Outcome:        string(s.Outcome),
		Score:          s.Score,
		Attempts:       s.Attempts,
		Correct:        s.Correct,
		Accuracy:       s.Accuracy,
		ElapsedSeconds: s.ElapsedSeconds,
		Elapsed:        game.FormatTime(s.ElapsedSeconds),
		AccuracyRating: s.AccuracyRating,
		SpeedRating:    s.SpeedRating,
		Verdict:        s.Verdict,
		FinalScore:     s.FinalScore,
		WordsRemaining: s.WordsRemaining,
	}
}

// eventMessage maps a session event to the frame sent to the player.
func eventMessage(ev game.Event) Message {
	switch ev := ev.(type) {
	case game.StartedEvent:
		return Message{Type: MessageTypeStats, Payload: newStatsPayload(ev.Stats)}
	case game.QuestionEvent:
		return Message{Type: MessageTypeQuestion, Payload: newQuestionPayload(ev.Question, ev.Stats)}
	case game.FeedbackEvent:
		return Message{Type: MessageTypeFeedback, Payload: newFeedbackPayload(ev.Feedback)}
	case game.StatsEvent:
		return Message{Type: MessageTypeStats, Payload: newStatsPayload(ev.Stats)}
	case game.TickEvent:
		return Message{Type: MessageTypeTick, Payload: TickPayload{
			TimeRemaining: ev.TimeRemaining,
			Clock:         game.FormatTime(ev.TimeRemaining),
		}}
	case game.GameOverEvent:
		return Message{Type: MessageTypeGameOver, Payload: GameOverPayload{Summary: SummaryModel(ev.Summary)}}
	default:
		return Message{Type: MessageTypeError, Payload: ErrorPayload{Code: "unknown_event", Message: fmt.Sprintf("%T", ev)}}
	}
}
