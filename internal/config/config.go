package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/pharmaflash/internal/logger"
	"github.com/vytor/pharmaflash/internal/quiz"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	QuizMaxQuestions    int
	QuizOptionCount     int
	QuizMinPool         int
	QuizModalities      []string
	RandomSeed          uint64
	AutofillWorkerCount int
	AutofillQueueSize   int
	PubChemBaseURL      string
	PubChemTimeout      time.Duration
	CORSAllowedOrigins  []string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:pharmaflash.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		QuizMaxQuestions:    envIntOr("QUIZ_MAX_QUESTIONS", 10),
		QuizOptionCount:     envIntOr("QUIZ_OPTION_COUNT", 4),
		QuizMinPool:         envIntOr("QUIZ_MIN_POOL", 4),
		QuizModalities:      splitList(envOr("QUIZ_MODALITIES", "")),
		RandomSeed:          envUintOr("RANDOM_SEED", 0),
		AutofillWorkerCount: envIntOr("AUTOFILL_WORKER_COUNT", 2),
		AutofillQueueSize:   envIntOr("AUTOFILL_QUEUE_SIZE", 32),
		PubChemBaseURL:      envOr("PUBCHEM_BASE_URL", "https://pubchem.ncbi.nlm.nih.gov/rest/pug"),
		PubChemTimeout:      time.Duration(envIntOr("PUBCHEM_TIMEOUT_SECONDS", 15)) * time.Second,
		CORSAllowedOrigins:  splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.QuizMaxQuestions <= 0 {
		problems = append(problems, "QUIZ_MAX_QUESTIONS must be positive")
	}
	if c.QuizOptionCount < 2 || c.QuizOptionCount > 8 {
		problems = append(problems, "QUIZ_OPTION_COUNT must be between 2 and 8")
	}
	if c.QuizMinPool < c.QuizOptionCount {
		problems = append(problems, "QUIZ_MIN_POOL must be at least QUIZ_OPTION_COUNT")
	}
	if _, err := c.QuizOptions(); err != nil {
		problems = append(problems, fmt.Sprintf("QUIZ_MODALITIES: %v", err))
	}
	if c.AutofillWorkerCount <= 0 {
		problems = append(problems, "AUTOFILL_WORKER_COUNT must be positive")
	}
	if c.AutofillQueueSize <= 0 {
		problems = append(problems, "AUTOFILL_QUEUE_SIZE must be positive")
	}
	if c.PubChemTimeout <= 0 {
		problems = append(problems, "PUBCHEM_TIMEOUT_SECONDS must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// QuizOptions builds the generator options. An empty QuizModalities keeps the
// default visual pair; entries use the form "name_from_formula" or
// "field_from_name:primary_function".
func (c Config) QuizOptions() (quiz.Options, error) {
	opts := quiz.DefaultOptions()
	opts.MaxQuestions = c.QuizMaxQuestions
	opts.OptionCount = c.QuizOptionCount
	opts.MinPool = c.QuizMinPool
	if len(c.QuizModalities) == 0 {
		return opts, nil
	}
	opts.Modalities = make([]quiz.Modality, 0, len(c.QuizModalities))
	for _, s := range c.QuizModalities {
		m, err := quiz.ParseModality(s)
		if err != nil {
			return opts, err
		}
		opts.Modalities = append(opts.Modalities, m)
	}
	return opts, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envUintOr(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
