package services

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	types "github.com/yungbote/lessonquiz-backend/internal/domain"
	"github.com/yungbote/lessonquiz-backend/internal/platform/apierr"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

// DefaultQuestionCount is the number of questions requested per quiz.
const DefaultQuestionCount = 3

// QuizGenerator turns lesson text into raw model output that is expected to be
// a JSON array of questions. It does not validate what it returns.
type QuizGenerator interface {
	Generate(ctx context.Context, lessonText string) (string, error)
}

// TextModel is a single-prompt text generation backend.
type TextModel interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type promptQuizGenerator struct {
	log           *logger.Logger
	model         TextModel
	questionCount int
}

func NewQuizGenerator(log *logger.Logger, model TextModel, questionCount int) QuizGenerator {
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}
	return &promptQuizGenerator{
		log:           log.With("service", "QuizGenerator"),
		model:         model,
		questionCount: questionCount,
	}
}

func (g *promptQuizGenerator) Generate(ctx context.Context, lessonText string) (string, error) {
	ctx, span := otel.Tracer("lessonquiz/services").Start(ctx, "quiz.generate")
	defer span.End()
	span.SetAttributes(
		attribute.Int("quiz.question_count", g.questionCount),
		attribute.Int("quiz.lesson_text_len", len(lessonText)),
	)

	raw, err := g.model.GenerateText(ctx, BuildQuizPrompt(lessonText, g.questionCount))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate text")
		return "", err
	}
	span.SetAttributes(attribute.Int("quiz.response_len", len(raw)))
	return raw, nil
}

// BuildQuizPrompt renders the fixed quiz instruction around the lesson text.
func BuildQuizPrompt(lessonText string, questionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a quiz in JSON format with %d multiple-choice questions from the given lesson content.\n", questionCount)
	b.WriteString("Each question should have 4 answer choices and 1 correct answer.\n\n")
	b.WriteString("Lesson Content:\n")
	b.WriteString(lessonText)
	b.WriteString("\n\nEnsure the output is a valid JSON array of objects and nothing else.\n\n")
	b.WriteString("JSON Format:\n")
	b.WriteString(`[
  {
    "question": "<question>",
    "options": ["A) <option>", "B) <option>", "C) <option>", "D) <option>"],
    "answer": "<correct_option>"
  }
]`)
	b.WriteString("\n")
	return b.String()
}

// generateQuestions runs the generator and validates its output. Every failure
// surfaces as a 500 quiz_generation_failed.
func generateQuestions(ctx context.Context, log *logger.Logger, gen QuizGenerator, questionCount int, lessonText string) ([]types.Question, error) {
	if gen == nil {
		return nil, apierr.Internal("quiz_generation_failed", fmt.Errorf("quiz generator not configured"))
	}
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}
	raw, err := gen.Generate(ctx, lessonText)
	if err != nil {
		log.Error("Quiz generation failed", "error", err)
		return nil, apierr.Internal("quiz_generation_failed", fmt.Errorf("generate quiz: %w", err))
	}
	questions, err := types.ParseQuestions(raw, questionCount)
	if err != nil {
		log.Warn("Quiz output rejected", "error", err, "response_len", len(raw))
		return nil, apierr.Internal("quiz_generation_failed", fmt.Errorf("parse quiz: %w", err))
	}
	return questions, nil
}
