package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go-quiz-api/logger"
	"go-quiz-api/model"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// GradingResult is the outcome of grading one free-form answer.
type GradingResult struct {
	IsCorrect bool   `json:"is_correct"`
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
}

// GeminiService grades short/descriptive answers and generates supplementary
// explanations via the Gemini REST API. Without an API key, or when the call
// fails, it falls back to local keyword grading so solving never breaks on an
// upstream outage.
type GeminiService struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewGeminiService(apiKey, apiURL string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// GradeAnswer grades a short-answer or descriptive response.
func (s *GeminiService) GradeAnswer(problem *model.Problem, userAnswer string) *GradingResult {
	if s.apiKey == "" {
		logger.Log.Warn("Gemini API key not configured, using fallback grading")
		return s.fallbackGrading(problem, userAnswer)
	}

	prompt := buildGradingPrompt(problem, userAnswer)
	response, err := s.callGemini(prompt)
	if err != nil {
		logger.Log.WithError(err).Error("Gemini grading failed, using fallback grading")
		return s.fallbackGrading(problem, userAnswer)
	}

	result, err := parseGradingResponse(response)
	if err != nil {
		logger.Log.WithError(err).Error("Could not parse Gemini grading response, using fallback grading")
		return s.fallbackGrading(problem, userAnswer)
	}
	return result
}

// GenerateExplanation produces a supplementary explanation for a
// multiple-choice answer. Falls back to the problem's stored explanation.
func (s *GeminiService) GenerateExplanation(problem *model.Problem, userAnswer string, isCorrect bool) string {
	if s.apiKey == "" {
		return problem.Explanation
	}

	prompt := buildExplanationPrompt(problem, userAnswer, isCorrect)
	response, err := s.callGemini(prompt)
	if err != nil {
		logger.Log.WithError(err).Error("Gemini explanation failed, using stored explanation")
		return problem.Explanation
	}
	return response
}

// fallbackGrading is a crude keyword match: correct if the model answer's
// words mostly appear in the student's answer.
func (s *GeminiService) fallbackGrading(problem *model.Problem, userAnswer string) *GradingResult {
	expected := strings.Fields(strings.ToLower(problem.Answer))
	given := strings.ToLower(userAnswer)

	if len(expected) == 0 {
		return &GradingResult{IsCorrect: false, Score: 0, Feedback: "Could not grade the answer automatically."}
	}

	matched := 0
	for _, word := range expected {
		if strings.Contains(given, word) {
			matched++
		}
	}
	score := matched * 100 / len(expected)

	return &GradingResult{
		IsCorrect: score >= 70,
		Score:     score,
		Feedback:  "Graded by keyword match against the model answer. Compare your answer with the explanation.",
	}
}

// --- Gemini wire format ---

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiService) callGemini(prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.apiURL, s.apiKey)
	resp, err := s.httpClient.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func buildGradingPrompt(problem *model.Problem, userAnswer string) string {
	return fmt.Sprintf(`You are a friendly mentor grading a student's answer.

[Question]
%s

[Model answer]
%s

[Student answer]
%s

Grading philosophy: accept different wording if the core concept is understood.
Core concept only: 70-85. Core plus detail: 85-95. Complete and precise: 95-100.
Core with some mistakes: 50-70. Misunderstood concept: 0-40.
Keep the feedback to two or three sentences.

Respond exactly in this format:
verdict: [correct/partial/incorrect]
score: [0-100]
feedback: [two or three sentences]`,
		problem.Question, problem.Answer, userAnswer)
}

func buildExplanationPrompt(problem *model.Problem, userAnswer string, isCorrect bool) string {
	if isCorrect {
		return fmt.Sprintf(`The student answered this question correctly.

[Question]
%s

[Answer]
%s

[Stored explanation]
%s

Give additional depth: practical tips, caveats, and related concepts.`,
			problem.Question, problem.Answer, problem.Explanation)
	}
	return fmt.Sprintf(`The student answered this question incorrectly.

[Question]
%s

[Correct answer]
%s

[Student's choice]
%s

[Stored explanation]
%s

Explain why the choice is wrong and clarify the correct concept.`,
		problem.Question, problem.Answer, userAnswer, problem.Explanation)
}

var (
	scoreLinePattern   = regexp.MustCompile(`(?i)score:\s*(\d{1,3})`)
	verdictLinePattern = regexp.MustCompile(`(?i)verdict:\s*(\w+)`)
)

func parseGradingResponse(response string) (*GradingResult, error) {
	scoreMatch := scoreLinePattern.FindStringSubmatch(response)
	if scoreMatch == nil {
		return nil, fmt.Errorf("no score line in response")
	}
	score, err := strconv.Atoi(scoreMatch[1])
	if err != nil || score > 100 {
		return nil, fmt.Errorf("invalid score %q", scoreMatch[1])
	}

	isCorrect := score >= 70
	if verdictMatch := verdictLinePattern.FindStringSubmatch(response); verdictMatch != nil {
		isCorrect = strings.EqualFold(verdictMatch[1], "correct") ||
			(strings.EqualFold(verdictMatch[1], "partial") && score >= 70)
	}

	feedback := response
	if idx := strings.Index(strings.ToLower(response), "feedback:"); idx >= 0 {
		feedback = strings.TrimSpace(response[idx+len("feedback:"):])
	}

	return &GradingResult{IsCorrect: isCorrect, Score: score, Feedback: feedback}, nil
}
