package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/config"
	"github.com/vytor/pharmaflash/internal/models"
	"github.com/vytor/pharmaflash/internal/quiz"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                ":8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		QuizMaxQuestions:    10,
		QuizOptionCount:     4,
		QuizMinPool:         4,
		AutofillWorkerCount: 2,
		AutofillQueueSize:   32,
		PubChemBaseURL:      "http://localhost",
		PubChemTimeout:      time.Second,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = " " }, "DB_PATH cannot be empty"},
		{"log level", func(c *config.Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"max questions", func(c *config.Config) { c.QuizMaxQuestions = 0 }, "QUIZ_MAX_QUESTIONS"},
		{"one option", func(c *config.Config) { c.QuizOptionCount = 1; c.QuizMinPool = 4 }, "QUIZ_OPTION_COUNT"},
		{"nine options", func(c *config.Config) { c.QuizOptionCount = 9; c.QuizMinPool = 9 }, "QUIZ_OPTION_COUNT"},
		{"small pool", func(c *config.Config) { c.QuizMinPool = 3 }, "QUIZ_MIN_POOL"},
		{"unknown modality", func(c *config.Config) { c.QuizModalities = []string{"sound_from_name"} }, "QUIZ_MODALITIES"},
		{"unknown field", func(c *config.Config) { c.QuizModalities = []string{"field_from_name:colour"} }, "QUIZ_MODALITIES"},
		{"workers", func(c *config.Config) { c.AutofillWorkerCount = 0 }, "AUTOFILL_WORKER_COUNT"},
		{"queue", func(c *config.Config) { c.AutofillQueueSize = -1 }, "AUTOFILL_QUEUE_SIZE"},
		{"timeout", func(c *config.Config) { c.PubChemTimeout = 0 }, "PUBCHEM_TIMEOUT_SECONDS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "info", "Warn", "WARNING", "ERROR"} {
		cfg := validConfig()
		cfg.LogLevel = level
		assert.NoError(t, cfg.Validate(), level)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "nope"}
	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "QUIZ_OPTION_COUNT")
	assert.Contains(t, errStr, "AUTOFILL_WORKER_COUNT")
	assert.Contains(t, errStr, "AUTOFILL_QUEUE_SIZE")
	assert.Contains(t, errStr, "PUBCHEM_TIMEOUT_SECONDS")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "QUIZ_MAX_QUESTIONS", "QUIZ_OPTION_COUNT",
		"QUIZ_MIN_POOL", "RANDOM_SEED", "AUTOFILL_WORKER_COUNT", "AUTOFILL_QUEUE_SIZE",
		"PUBCHEM_BASE_URL", "PUBCHEM_TIMEOUT_SECONDS", "CORS_ALLOWED_ORIGINS", "QUIZ_MODALITIES"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:pharmaflash.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.QuizMaxQuestions)
	assert.Equal(t, 4, cfg.QuizOptionCount)
	assert.Equal(t, uint64(0), cfg.RandomSeed)
	assert.Equal(t, 15*time.Second, cfg.PubChemTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("QUIZ_OPTION_COUNT", "3")
	t.Setenv("QUIZ_MIN_POOL", "5")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("AUTOFILL_WORKER_COUNT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://app.example ,")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 3, cfg.QuizOptionCount)
	assert.Equal(t, 5, cfg.QuizMinPool)
	assert.Equal(t, uint64(42), cfg.RandomSeed)
	assert.Equal(t, 2, cfg.AutofillWorkerCount)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example"}, cfg.CORSAllowedOrigins)
}

func TestQuizOptions_DefaultModalities(t *testing.T) {
	opts, err := validConfig().QuizOptions()
	require.NoError(t, err)
	assert.Equal(t, quiz.DefaultOptions().Modalities, opts.Modalities)
}

func TestQuizOptions_ParsesModalities(t *testing.T) {
	t.Setenv("QUIZ_MODALITIES", "name_from_formula, field_from_name:primary_function")
	cfg := config.Load()

	opts, err := cfg.QuizOptions()
	require.NoError(t, err)
	assert.Equal(t, cfg.QuizMaxQuestions, opts.MaxQuestions)
	assert.Equal(t, []quiz.Modality{
		quiz.NameFromFormula,
		quiz.FieldFromName(models.FieldPrimaryFunction, ""),
	}, opts.Modalities)
}
