package learning

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
)

const OptionsPerQuestion = 4

var optionLabels = [OptionsPerQuestion]string{"A", "B", "C", "D"}

type Quiz struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	LessonID  uint           `gorm:"index;not null;column:lesson_id" json:"lesson_id"`
	Questions datatypes.JSON `gorm:"not null;column:questions" json:"questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

type Question struct {
	Question string   `json:"question" validate:"required"`
	Options  []string `json:"options" validate:"len=4,dive,required"`
	Answer   string   `json:"answer" validate:"required"`
}

var (
	ErrEmptyQuiz       = errors.New("quiz payload is empty")
	ErrQuestionCount   = errors.New("unexpected number of questions")
	ErrAnswerNotOption = errors.New("answer does not match any option")
)

var questionValidate = validator.New(validator.WithRequiredStructEnabled())

// ParseQuestions decodes model output into exactly n well-formed questions.
// A surrounding markdown code fence is tolerated. Answers given as a bare
// option label ("B", "B)") are rewritten to the matching option text.
func ParseQuestions(raw string, n int) ([]Question, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, ErrEmptyQuiz
	}
	var questions []Question
	if err := json.Unmarshal([]byte(body), &questions); err != nil {
		return nil, fmt.Errorf("decode quiz json: %w", err)
	}
	if n > 0 && len(questions) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrQuestionCount, len(questions), n)
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	for i := range questions {
		q := &questions[i]
		q.Question = strings.TrimSpace(q.Question)
		q.Answer = strings.TrimSpace(q.Answer)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
		if err := questionValidate.Struct(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		answer, ok := matchAnswer(q.Answer, q.Options)
		if !ok {
			return nil, fmt.Errorf("question %d: %w: %q", i+1, ErrAnswerNotOption, q.Answer)
		}
		q.Answer = answer
	}
	return questions, nil
}

// EncodeQuestions produces the stored form of a validated question list.
func EncodeQuestions(questions []Question) (datatypes.JSON, error) {
	b, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// DecodeQuestions returns the stored questions. Rows written as a JSON string
// holding the array are unwrapped once.
func (q *Quiz) DecodeQuestions() ([]Question, error) {
	if q == nil || len(q.Questions) == 0 {
		return []Question{}, nil
	}
	raw := []byte(q.Questions)
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		raw = []byte(wrapped)
	}
	var out []Question
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode stored questions: %w", err)
	}
	if out == nil {
		out = []Question{}
	}
	return out, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func matchAnswer(answer string, options []string) (string, bool) {
	for _, opt := range options {
		if opt == answer {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.EqualFold(stripLabel(opt), answer) {
			return opt, true
		}
	}
	label := strings.ToUpper(strings.TrimRight(answer, ").: "))
	for i, l := range optionLabels {
		if label == l && i < len(options) {
			return options[i], true
		}
	}
	return "", false
}

// stripLabel drops a leading "A) " style label from an option.
func stripLabel(opt string) string {
	if len(opt) < 2 {
		return opt
	}
	for _, l := range optionLabels {
		if strings.HasPrefix(strings.ToUpper(opt), l) && (opt[1] == ')' || opt[1] == '.' || opt[1] == ':') {
			return strings.TrimSpace(opt[2:])
		}
	}
	return opt
}
