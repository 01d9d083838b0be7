package quiz

import "aula-quiz-client/internal/domain"

// Summary is the results dashboard aggregate for one section.
type Summary struct {
	TotalQuestions   int
	CorrectAnswers   int
	IncorrectAnswers int
	TotalScore       int
	ObtainedScore    int
}

// Tier buckets a percentage into the three qualitative feedback levels.
type Tier int

const (
	TierLow Tier = iota // below 50%
	TierMid             // 50% to 79%
	TierTop             // 80% and above
)

// Aggregate computes the results summary from the section's questions and
// the user's submitted answers. Pure and time-independent.
//
// The upstream API should hold at most one answer per question per user; if
// it ever returns duplicates, the first row per question wins and later rows
// are ignored, so score can never be double-counted.
func Aggregate(questions []domain.Question, answers []domain.UserAnswer) Summary {
	s := Summary{TotalQuestions: len(questions)}
	for _, q := range questions {
		s.TotalScore += q.Score
	}

	seen := make(map[int]bool)
	incorrect := make(map[int]bool)
	for _, answer := range answers {
		if seen[answer.QuestionID] {
			continue
		}
		seen[answer.QuestionID] = true
		if answer.Option.IsCorrect {
			s.CorrectAnswers++
			s.ObtainedScore += answer.Question.Score
		} else {
			incorrect[answer.QuestionID] = true
		}
	}
	s.IncorrectAnswers = len(incorrect)
	return s
}

// QuestionPercentage is the share of questions answered correctly.
// Zero-question sections degrade to 0 rather than dividing by zero.
func (s Summary) QuestionPercentage() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}

// ScorePercentage is the share of available score obtained.
func (s Summary) ScorePercentage() float64 {
	if s.TotalScore == 0 {
		return 0
	}
	return float64(s.ObtainedScore) / float64(s.TotalScore) * 100
}

// QuestionTier and ScoreTier are computed independently; a user can land in
// different tiers for the two metrics.
func (s Summary) QuestionTier() Tier { return tierFor(s.QuestionPercentage()) }

func (s Summary) ScoreTier() Tier { return tierFor(s.ScorePercentage()) }

func tierFor(percentage float64) Tier {
	switch {
	case percentage >= 80:
		return TierTop
	case percentage >= 50:
		return TierMid
	default:
		return TierLow
	}
}

// QuestionFeedback mirrors the dashboard's encouragement line for the
// question-count metric.
func (s Summary) QuestionFeedback() string {
	switch s.QuestionTier() {
	case TierTop:
		return "Excellent! You have a strong command of this topic."
	case TierMid:
		return "Good work! There is still room to improve."
	default:
		return "Keep practicing; consistency is the key."
	}
}

// ScoreFeedback is the encouragement line for the score metric.
func (s Summary) ScoreFeedback() string {
	switch s.ScoreTier() {
	case TierTop:
		return "Excellent score! Keep it up."
	case TierMid:
		return "Not bad, but there is margin to improve."
	default:
		return "Your score needs work; you can do it."
	}
}
