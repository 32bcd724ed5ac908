package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswerEvaluation(t *testing.T) {
	content := "Here is my evaluation:\n```json\n" + `{
		"factualAccuracy": "Good",
		"factualAccuracyExplanation": "Mostly correct",
		"completeness": "Fair",
		"completenessExplanation": "Missed edge cases",
		"relevance": "Excellent",
		"relevanceExplanation": "On topic",
		"coherence": "Good",
		"coherenceExplanation": "Well structured",
		"score": 3.5,
		"finalEvaluation": "A solid answer overall"
	}` + "\n```\nLet me know if you need more detail."

	evaluation, err := ParseAnswerEvaluation(content)
	require.NoError(t, err)
	assert.Equal(t, "Good", evaluation.FactualAccuracy)
	assert.Equal(t, "Fair", evaluation.Completeness)
	assert.Equal(t, "Excellent", evaluation.Relevance)
	assert.Equal(t, 3.5, evaluation.Score)
	assert.Equal(t, "A solid answer overall", evaluation.FinalEvaluation)
}

func TestParseAnswerEvaluationNoJSON(t *testing.T) {
	_, err := ParseAnswerEvaluation("I cannot evaluate this answer.")
	assert.Error(t, err)
}

func TestParseAnswerEvaluationMalformedJSON(t *testing.T) {
	_, err := ParseAnswerEvaluation(`{"factualAccuracy": "Good", "score": }`)
	assert.Error(t, err)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "gpt-4")
	assert.Error(t, err)

	client, err := NewClient("sk-test", "")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
