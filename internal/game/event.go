package game

// Event is emitted by a Session whenever its visible state changes.
type Event interface {
	isEvent()
}

type StartedEvent struct {
	WordCount int
	Stats     Stats
}

type QuestionEvent struct {
	Question Question
	Stats    Stats
}

type FeedbackEvent struct {
	Feedback Feedback
}

type StatsEvent struct {
	Stats Stats
}

type TickEvent struct {
	TimeRemaining int
}

type GameOverEvent struct {
	Summary Summary
}

func (StartedEvent) isEvent()  {}
func (QuestionEvent) isEvent() {}
func (FeedbackEvent) isEvent() {}
func (StatsEvent) isEvent()    {}
func (TickEvent) isEvent()     {}
func (GameOverEvent) isEvent() {}
