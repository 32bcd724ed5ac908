package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manoj1689/hireLn-api/internal/model"
)

func strPtr(s string) *string { return &s }

func TestRatingToScore(t *testing.T) {
	assert.Equal(t, 1.0, RatingToScore("Poor"))
	assert.Equal(t, 2.0, RatingToScore("Fair"))
	assert.Equal(t, 3.0, RatingToScore("Good"))
	assert.Equal(t, 4.0, RatingToScore("Excellent"))

	assert.Equal(t, 4.0, RatingToScore(" Excellent "))
	assert.Equal(t, 4.0, RatingToScore("EXCELLENT"))
	assert.Equal(t, 3.0, RatingToScore("good"))

	assert.Equal(t, 2.0, RatingToScore("Outstanding"))
	assert.Equal(t, 2.0, RatingToScore(""))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score   float64
		status  string
		summary string
	}{
		{4.0, "pass", "Candidate passed with Excellent performance"},
		{4.5, "pass", "Candidate passed with Excellent performance"},
		{3.0, "pass", "Candidate passed with Good performance"},
		{3.99, "pass", "Candidate passed with Good performance"},
		{2.0, "borderline", "Candidate is borderline – Fair performance"},
		{2.99, "borderline", "Candidate is borderline – Fair performance"},
		{1.0, "fail", "Candidate failed – Poor performance"},
		{1.99, "fail", "Candidate failed – Poor performance"},
		{0.5, "fail", "Candidate failed – Incomplete or missing answers"},
		{0.0, "fail", "Candidate failed – Incomplete or missing answers"},
	}
	for _, tc := range cases {
		status, summary := Classify(tc.score)
		assert.Equal(t, tc.status, status, "score %v", tc.score)
		assert.Equal(t, tc.summary, summary, "score %v", tc.score)
	}
}

func scoredItem(question string, rating string, score float64) QuestionEvaluation {
	return QuestionEvaluation{
		QuestionText: question,
		AnswerText:   "some answer",
		Evaluation: &model.Evaluation{
			FactualAccuracy: strPtr(rating),
			Completeness:    strPtr(rating),
			Relevance:       strPtr(rating),
			Coherence:       strPtr(rating),
			Score:           score,
			FinalEvaluation: "Solid answer",
		},
	}
}

func TestAggregatePartiallyEvaluated(t *testing.T) {
	items := []QuestionEvaluation{
		scoredItem("What is a goroutine?", "Good", 3.0),
		scoredItem("Explain channels.", "Excellent", 4.0),
		{QuestionText: "Describe the scheduler."},
	}

	summary := Aggregate(items)

	assert.Equal(t, 2, summary.EvaluatedCount)
	assert.Equal(t, 3, summary.TotalQuestions)
	assert.Equal(t, 3.5, summary.AverageScore)
	assert.Equal(t, 3.5, summary.AverageFactualAccuracy)
	assert.Equal(t, "pass", summary.PassStatus)
	assert.Equal(t, "Candidate passed with Good performance", summary.SummaryResult)

	assert.Len(t, summary.Breakdown, 3)
	assert.Equal(t, 3.0, summary.Breakdown[0].Score)
	assert.Equal(t, "Solid answer", summary.Breakdown[0].FinalEvaluation)
	assert.Equal(t, 0.0, summary.Breakdown[2].Score)
	assert.Equal(t, "Evaluation not available yet", summary.Breakdown[2].FinalEvaluation)
}

func TestAggregateNothingEvaluated(t *testing.T) {
	items := []QuestionEvaluation{
		{QuestionText: "Q1"},
		{QuestionText: "Q2"},
	}

	summary := Aggregate(items)

	assert.Equal(t, 0, summary.EvaluatedCount)
	assert.Equal(t, 2, summary.TotalQuestions)
	assert.Equal(t, 0.0, summary.AverageScore)
	assert.Equal(t, "fail", summary.PassStatus)
	assert.Equal(t, "Candidate failed – Incomplete or missing answers", summary.SummaryResult)
}

func TestAggregateUnknownRatingDefaultsToFair(t *testing.T) {
	item := scoredItem("Q1", "Good", 3.0)
	item.Evaluation.Completeness = strPtr("Stellar")

	summary := Aggregate([]QuestionEvaluation{item})

	assert.Equal(t, 3.0, summary.AverageFactualAccuracy)
	assert.Equal(t, 2.0, summary.AverageCompleteness)
}

func TestAggregateRounding(t *testing.T) {
	items := []QuestionEvaluation{
		scoredItem("Q1", "Good", 3.0),
		scoredItem("Q2", "Good", 3.0),
		scoredItem("Q3", "Excellent", 4.0),
	}

	summary := Aggregate(items)

	assert.Equal(t, 3, summary.EvaluatedCount)
	assert.Equal(t, 3.33, summary.AverageScore)
	assert.Equal(t, 3.33, summary.AverageCoherence)
}
