package planner

import (
	"os"
	"strconv"

	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// Config holds the tunables of one planning run.
type Config struct {
	MaxIterations int
	PagesPerHour  float64
	Weights       scheduler.ScoringWeights
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 3,
		PagesPerHour:  scheduler.DefaultPagesPerHour,
		Weights:       scheduler.DefaultWeights(),
	}
}

// LoadConfig reads planner configuration from environment variables,
// falling back to defaults for any unset or invalid values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYPLANNER_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxIterations = n
		}
	}
	if v := os.Getenv("STUDYPLANNER_PAGES_PER_HOUR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.PagesPerHour = f
		}
	}

	return cfg
}

func (c Config) normalized() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 1
	}
	if c.PagesPerHour <= 0 {
		c.PagesPerHour = scheduler.DefaultPagesPerHour
	}
	if c.Weights == (scheduler.ScoringWeights{}) {
		c.Weights = scheduler.DefaultWeights()
	}
	return c
}
