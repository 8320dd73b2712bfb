package game

import "math"

// Daily mode constants.
const (
	MaxDailyAttempts   = 5
	HintPenalty        = 20
	PatternHintPenalty = 10
)

// Time-attack mode constants.
const (
	MaxRushAttempts  = 3
	rushBaseScore    = 1000
	rushTimeRate     = 50 // points lost per second
	rushMaxTimeLoss  = 500
	rushAttemptLoss  = 250
	rushHintLoss     = 200
	rushMinimumScore = 100
)

var dailyScoreTable = map[int]int{
	1: 100,
	2: 75,
	3: 50,
	4: 25,
	5: 10,
}

// DailyScore computes the score for a winning daily guess. The base value is
// looked up by attempt number (0 outside 1-5) and each used hint subtracts a
// fixed penalty. There is no floor; the result can go negative.
func DailyScore(attemptNumber int, usedHint, usedPatternHint bool) int {
	score := dailyScoreTable[attemptNumber]
	if usedHint {
		score -= HintPenalty
	}
	if usedPatternHint {
		score -= PatternHintPenalty
	}
	return score
}

// TimeAttackScore computes the score for a correct time-attack guess from the
// response time in seconds, the attempt number (1-based) and hint usage.
// Never returns less than 100.
func TimeAttackScore(responseTime float64, attemptNumber int, usedHint bool) int {
	timePenalty := math.Round(math.Min(responseTime*rushTimeRate, rushMaxTimeLoss))
	attemptPenalty := float64(attemptNumber-1) * rushAttemptLoss

	score := rushBaseScore - timePenalty - attemptPenalty
	if usedHint {
		score -= rushHintLoss
	}
	return int(math.Max(score, rushMinimumScore))
}
