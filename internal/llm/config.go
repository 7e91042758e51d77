package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskExplain narrates a finished plan run.
	TaskExplain TaskType = "explain"
	// TaskAdvise suggests input changes for a run that ended with defects.
	TaskAdvise TaskType = "advise"
)

type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the optional explainer model.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a disabled configuration pointing at a local Ollama.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  10000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskExplain: {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 8000},
			TaskAdvise:  {Temperature: 0.2, MaxTokens: 768},
		},
	}
}

// LoadConfig reads STUDYPLANNER_LLM_* variables over the defaults.
// Unparseable values are ignored.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYPLANNER_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLANNER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLANNER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDYPLANNER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := positiveInt("STUDYPLANNER_LLM_TIMEOUT_MS"); ok {
		cfg.TimeoutMs = n
	}
	if v := os.Getenv("STUDYPLANNER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if n, ok := positiveInt("STUDYPLANNER_LLM_EXPLAIN_TIMEOUT_MS"); ok {
		tc := cfg.Tasks[TaskExplain]
		tc.TimeoutMs = n
		cfg.Tasks[TaskExplain] = tc
	}
	return cfg
}

// TaskTimeout returns the task-specific timeout when set, otherwise the
// global one.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func positiveInt(env string) (int, bool) {
	v := os.Getenv(env)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
