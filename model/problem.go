package model

import "encoding/json"

type ProblemType string

const (
	ProblemTypeMultipleChoice ProblemType = "MULTIPLE_CHOICE"
	ProblemTypeShortAnswer    ProblemType = "SHORT_ANSWER"
	ProblemTypeDescriptive    ProblemType = "DESCRIPTIVE"
)

type Category string

const (
	CategoryJava     Category = "JAVA"
	CategorySpring   Category = "SPRING"
	CategoryDatabase Category = "DATABASE"
	CategoryNetwork  Category = "NETWORK"
	CategoryOS       Category = "OS"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Problem struct {
	ID          int         `json:"id"`
	ProblemType ProblemType `json:"problem_type"`
	Category    Category    `json:"category"`
	Difficulty  Difficulty  `json:"difficulty"`
	Question    string      `json:"question"`
	Answer      string      `json:"-"` // Answers are never sent to solvers.
	Explanation string      `json:"explanation,omitempty"`
	ChoicesJSON string      `json:"-"`
}

// Choices decodes the stored choices_json column. A nil result means the
// problem has no fixed choices (short answer / descriptive).
func (p *Problem) Choices() []string {
	if p.ChoicesJSON == "" {
		return nil
	}
	var choices []string
	if err := json.Unmarshal([]byte(p.ChoicesJSON), &choices); err != nil {
		return nil
	}
	return choices
}

// SetChoices encodes the choice list into the choices_json column.
func (p *Problem) SetChoices(choices []string) {
	if len(choices) == 0 {
		p.ChoicesJSON = ""
		return
	}
	data, err := json.Marshal(choices)
	if err != nil {
		p.ChoicesJSON = ""
		return
	}
	p.ChoicesJSON = string(data)
}
