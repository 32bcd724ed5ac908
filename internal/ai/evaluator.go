package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerEvaluation is the payload the rating capability must return for one
// question/answer pair. Any other shape is a hard failure; nothing is written
// to the database when parsing fails.
type AnswerEvaluation struct {
	FactualAccuracy            string  `json:"factualAccuracy"`
	FactualAccuracyExplanation string  `json:"factualAccuracyExplanation"`
	Completeness               string  `json:"completeness"`
	CompletenessExplanation    string  `json:"completenessExplanation"`
	Relevance                  string  `json:"relevance"`
	RelevanceExplanation       string  `json:"relevanceExplanation"`
	Coherence                  string  `json:"coherence"`
	CoherenceExplanation       string  `json:"coherenceExplanation"`
	Score                      float64 `json:"score"`
	FinalEvaluation            string  `json:"finalEvaluation"`
}

// Usage carries the token counters of one evaluation call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Evaluator rates a candidate answer against its question. Implemented by
// Client; tests inject fakes.
type Evaluator interface {
	EvaluateAnswer(questionText, answerText, knowledgeLevel string) (*AnswerEvaluation, Usage, error)
}

const evaluationSystemPrompt = "You are an expert interviewer and evaluator. Provide detailed, constructive feedback."

func evaluationPrompt(questionText, answerText, knowledgeLevel string) string {
	return fmt.Sprintf(`You are an expert interviewer evaluating a candidate's answer. Please evaluate the following:

Question: %s
Answer: %s
Knowledge Level: %s

Please provide a comprehensive evaluation with the following criteria:

1. Factual Accuracy: Rate as "Poor", "Fair", "Good", or "Excellent"
2. Completeness: Rate as "Poor", "Fair", "Good", or "Excellent"
3. Relevance: Rate as "Poor", "Fair", "Good", or "Excellent"
4. Coherence: Rate as "Poor", "Fair", "Good", or "Excellent"
5. Overall Score: Provide a numerical score from 1.0 to 5.0
6. Final Evaluation: Provide a summary evaluation

Please respond in the following JSON format:
{
    "factualAccuracy": "rating",
    "factualAccuracyExplanation": "detailed explanation",
    "completeness": "rating",
    "completenessExplanation": "detailed explanation",
    "relevance": "rating",
    "relevanceExplanation": "detailed explanation",
    "coherence": "rating",
    "coherenceExplanation": "detailed explanation",
    "score": numerical_score,
    "finalEvaluation": "overall summary"
}`, questionText, answerText, knowledgeLevel)
}

// EvaluateAnswer asks the model to rate the answer and parses the JSON object
// out of the completion text.
func (c *Client) EvaluateAnswer(questionText, answerText, knowledgeLevel string) (*AnswerEvaluation, Usage, error) {
	messages := []Message{
		{Role: "system", Content: evaluationSystemPrompt},
		{Role: "user", Content: evaluationPrompt(questionText, answerText, knowledgeLevel)},
	}

	resp, err := c.CreateChat(messages)
	if err != nil {
		return nil, Usage{}, err
	}

	evaluation, err := ParseAnswerEvaluation(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, Usage{}, err
	}

	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}
	return evaluation, usage, nil
}

// ParseAnswerEvaluation extracts the JSON object from a completion and decodes
// it. Models often wrap the object in prose or code fences, so everything
// outside the first '{' and last '}' is discarded.
func ParseAnswerEvaluation(content string) (*AnswerEvaluation, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in AI evaluation response")
	}

	var evaluation AnswerEvaluation
	if err := json.Unmarshal([]byte(content[start:end+1]), &evaluation); err != nil {
		return nil, fmt.Errorf("failed to parse AI evaluation response: %w", err)
	}
	return &evaluation, nil
}
