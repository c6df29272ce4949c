package constants

const (
	SessionStatusConnected = "connected"
	SessionStatusLoaded    = "loaded"
	SessionStatusPlaying   = "playing"
	SessionStatusFinished  = "finished"
)

const (
	// FlashcardsChannel carries the id of a topic whose flashcards changed.
	FlashcardsChannel = "flashcards_changed"
)

const (
	ErrorCodeDataLoad       = "data_load_failure"
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidAction  = "invalid_action"
	ErrorCodeNotReady       = "not_ready"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeInvalidInput   = "invalid_input"
	ErrorCodeBusy           = "explanation_busy"
	ErrorCodeExplanation    = "explanation_failure"
)

const (
	CacheKeyTopicFlashcards = "topic:%s:flashcards"
	CacheKeyExplanation     = "flashcard:%s:explanation"
)
