// Package evaluation turns per-answer AI ratings into an interview-level
// verdict. It is pure computation; persistence stays in the controllers.
package evaluation

import (
	"math"
	"strings"

	"github.com/manoj1689/hireLn-api/internal/model"
)

// RatingToScore maps a categorical rating onto the 1-4 numeric scale.
// Matching ignores case and surrounding whitespace; anything unrecognized
// counts as Fair.
func RatingToScore(rating string) float64 {
	switch strings.ToLower(strings.TrimSpace(rating)) {
	case "poor":
		return 1.0
	case "fair":
		return 2.0
	case "good":
		return 3.0
	case "excellent":
		return 4.0
	default:
		return 2.0
	}
}

// Classify converts an average score into a pass verdict and summary line.
func Classify(averageScore float64) (passStatus, summary string) {
	switch {
	case averageScore >= 4.0:
		return "pass", "Candidate passed with Excellent performance"
	case averageScore >= 3.0:
		return "pass", "Candidate passed with Good performance"
	case averageScore >= 2.0:
		return "borderline", "Candidate is borderline – Fair performance"
	case averageScore >= 1.0:
		return "fail", "Candidate failed – Poor performance"
	default:
		return "fail", "Candidate failed – Incomplete or missing answers"
	}
}

// QuestionEvaluation pairs one interview question with its evaluation, when
// one exists. Questions without an answer or an AI rating yet carry a nil
// Evaluation.
type QuestionEvaluation struct {
	QuestionText string
	AnswerText   string
	Evaluation   *model.Evaluation
}

// BreakdownEntry is the per-question slice of an interview summary. Questions
// whose answers have not been evaluated yet appear with a zero score and a
// placeholder verdict.
type BreakdownEntry struct {
	QuestionText    string  `json:"questionText"`
	AnswerText      string  `json:"answerText"`
	Score           float64 `json:"score"`
	FinalEvaluation string  `json:"finalEvaluation"`
}

// Summary is the aggregate of all evaluations recorded for one interview.
type Summary struct {
	EvaluatedCount         int
	TotalQuestions         int
	AverageFactualAccuracy float64
	AverageCompleteness    float64
	AverageRelevance       float64
	AverageCoherence       float64
	AverageScore           float64
	PassStatus             string
	SummaryResult          string
	Breakdown              []BreakdownEntry
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Aggregate computes the interview summary. An item counts as evaluated once
// its evaluation carries a factual accuracy rating; pending items still
// appear in the breakdown but do not dilute the averages.
func Aggregate(items []QuestionEvaluation) Summary {
	summary := Summary{
		TotalQuestions: len(items),
		Breakdown:      make([]BreakdownEntry, 0, len(items)),
	}

	var factualSum, completenessSum, relevanceSum, coherenceSum, scoreSum float64
	for _, item := range items {
		entry := BreakdownEntry{
			QuestionText:    item.QuestionText,
			AnswerText:      item.AnswerText,
			FinalEvaluation: "Evaluation not available yet",
		}
		if eval := item.Evaluation; eval != nil && eval.FactualAccuracy != nil {
			summary.EvaluatedCount++
			factualSum += RatingToScore(*eval.FactualAccuracy)
			completenessSum += RatingToScore(deref(eval.Completeness))
			relevanceSum += RatingToScore(deref(eval.Relevance))
			coherenceSum += RatingToScore(deref(eval.Coherence))
			scoreSum += eval.Score

			entry.Score = eval.Score
			entry.FinalEvaluation = eval.FinalEvaluation
		}
		summary.Breakdown = append(summary.Breakdown, entry)
	}

	if summary.EvaluatedCount > 0 {
		n := float64(summary.EvaluatedCount)
		summary.AverageFactualAccuracy = round2(factualSum / n)
		summary.AverageCompleteness = round2(completenessSum / n)
		summary.AverageRelevance = round2(relevanceSum / n)
		summary.AverageCoherence = round2(coherenceSum / n)
		summary.AverageScore = round2(scoreSum / n)
	}

	summary.PassStatus, summary.SummaryResult = Classify(summary.AverageScore)
	return summary
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
