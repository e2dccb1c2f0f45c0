package app

import (
	"fmt"

	"github.com/yungbote/lessonquiz-backend/internal/platform/gemini"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
	"github.com/yungbote/lessonquiz-backend/internal/platform/openai"
	"github.com/yungbote/lessonquiz-backend/internal/services"
)

const quizSystemPrompt = "You write multiple-choice quizzes and reply with a JSON array only."

type Clients struct {
	// QuizModel is nil when the selected provider has no API key.
	QuizModel services.TextModel
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "quiz_provider", cfg.Quiz.Provider)

	var (
		model services.TextModel
		key   string
	)
	switch cfg.Quiz.Provider {
	case ProviderGemini:
		key = cfg.Quiz.Gemini.APIKey
		if key == "" {
			break
		}
		c, err := gemini.NewClient(log, gemini.Config{
			APIKey:       key,
			BaseURL:      cfg.Quiz.Gemini.BaseURL,
			Model:        cfg.Quiz.Gemini.Model,
			Timeout:      cfg.Quiz.Timeout(),
			JSONResponse: true,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init gemini client: %w", err)
		}
		model = c
	case ProviderOpenAI:
		key = cfg.Quiz.OpenAI.APIKey
		if key == "" {
			break
		}
		c, err := openai.NewClient(log, openai.Config{
			APIKey:  key,
			BaseURL: cfg.Quiz.OpenAI.BaseURL,
			Model:   cfg.Quiz.OpenAI.Model,
			Timeout: cfg.Quiz.Timeout(),
			System:  quizSystemPrompt,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		model = c
	default:
		return Clients{}, fmt.Errorf("unknown quiz provider %q", cfg.Quiz.Provider)
	}

	if model == nil {
		log.Warn("Quiz provider API key not set; quiz generation will fail", "quiz_provider", cfg.Quiz.Provider)
	}
	return Clients{QuizModel: model}, nil
}
