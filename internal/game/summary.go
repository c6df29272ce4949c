package game

import (
	"fmt"
	"math"
)

type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeTimeout Outcome = "timeout"
)

const (
	veryFastSeconds    = 600
	fairlyFastSeconds  = 1200
	excellentAccuracy  = 90
	veryGoodAccuracy   = 80
	goodAccuracy       = 70
	accuracyBonusScale = 50
)

// Summary is the end-of-session report.
type Summary struct {
	Outcome        Outcome
	Score          int
	Attempts       int
	Correct        int
	Accuracy       float64
	ElapsedSeconds int
	AccuracyRating string
	SpeedRating    string
	Verdict        string
	FinalScore     int
	WordsRemaining int
}

func Summarize(stats Stats, outcome Outcome, wordsRemaining int) Summary {
	accuracy := Accuracy(stats.Correct, stats.Attempts)
	elapsed := stats.Elapsed()
	return Summary{
		Outcome:        outcome,
		Score:          stats.Score,
		Attempts:       stats.Attempts,
		Correct:        stats.Correct,
		Accuracy:       accuracy,
		ElapsedSeconds: elapsed,
		AccuracyRating: RateAccuracy(accuracy),
		SpeedRating:    RateSpeed(elapsed),
		Verdict:        Verdict(accuracy, elapsed),
		FinalScore:     FinalScore(stats.Score, accuracy, elapsed),
		WordsRemaining: wordsRemaining,
	}
}

// Accuracy is correct/attempts as a percentage, clamped to [0,100].
// A matching question is one attempt but may credit two correct answers, so
// the raw ratio can exceed 100.
func Accuracy(correct, attempts int) float64 {
	if attempts <= 0 || correct <= 0 {
		return 0
	}
	return math.Min(100, float64(correct)/float64(attempts)*100)
}

func RateAccuracy(accuracy float64) string {
	switch {
	case accuracy >= excellentAccuracy:
		return "excellent"
	case accuracy >= goodAccuracy:
		return "good"
	default:
		return "needs work"
	}
}

func RateSpeed(elapsedSeconds int) string {
	switch {
	case elapsedSeconds <= veryFastSeconds:
		return "very fast"
	case elapsedSeconds <= fairlyFastSeconds:
		return "fairly fast"
	default:
		return "slow"
	}
}

func Verdict(accuracy float64, elapsedSeconds int) string {
	switch {
	case accuracy >= excellentAccuracy && elapsedSeconds <= veryFastSeconds:
		return "Excellent! You are a vocabulary master."
	case accuracy >= veryGoodAccuracy && elapsedSeconds <= fairlyFastSeconds:
		return "Very good! Your knowledge is solid and your pace is steady."
	case accuracy >= goodAccuracy:
		return "Good! You are on the right track, keep practicing."
	default:
		return "Needs more work. Don't give up, review the words and try again!"
	}
}

// FinalScore is max(0, floor(score + accuracy/10*50 - elapsed/60)). The
// accuracy bonus tops out at 500 because Accuracy is clamped.
func FinalScore(score int, accuracy float64, elapsedSeconds int) int {
	v := math.Floor(float64(score) + accuracy/10*accuracyBonusScale - float64(elapsedSeconds)/60)
	return int(math.Max(0, v))
}

// FormatTime renders seconds as MM:SS.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
