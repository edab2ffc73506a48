package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"timegrid/internal/model"
)

// Config carries the fixed public parameters of the engine: the weekly grid
// shape, scheduling preferences, solver selection and input/output locations.
// Loaded once at startup; the pipeline never re-derives any of it.
type Config struct {
	Days           uint64
	Periods        uint64
	PeriodWeights  []int64
	MorningPeriods uint64

	Solver       string
	SolverBudget time.Duration

	SubjectsFile string
	RoomsFile    string

	Log Log
}

type Log struct {
	Level  string
	Format string
}

// Load reads configuration from the environment (prefix TIMETABLE_, optional
// .env file) on top of the built-in defaults, then validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TIMETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("days", model.DefaultDays)
	v.SetDefault("periods", model.DefaultPeriods)
	v.SetDefault("period_weights", "5,4,3,2,1")
	v.SetDefault("morning_periods", model.DefaultMorningPeriods)
	v.SetDefault("solver", "local")
	v.SetDefault("solver_budget", "600s")
	v.SetDefault("subjects_file", "subjects.json")
	v.SetDefault("rooms_file", "rooms.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	weights, err := parseWeights(v.GetString("period_weights"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Days:           v.GetUint64("days"),
		Periods:        v.GetUint64("periods"),
		PeriodWeights:  weights,
		MorningPeriods: v.GetUint64("morning_periods"),
		Solver:         strings.ToLower(v.GetString("solver")),
		SolverBudget:   v.GetDuration("solver_budget"),
		SubjectsFile:   v.GetString("subjects_file"),
		RoomsFile:      v.GetString("rooms_file"),
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Grid().Validate(); err != nil {
		return nil, err
	}
	if cfg.SolverBudget <= 0 {
		return nil, fmt.Errorf("solver budget must be positive: %v", cfg.SolverBudget)
	}
	return cfg, nil
}

// Grid assembles the weekly grid the model is built over.
func (cfg *Config) Grid() model.Grid {
	return model.Grid{
		Days:           cfg.Days,
		Periods:        cfg.Periods,
		PeriodWeights:  cfg.PeriodWeights,
		MorningPeriods: cfg.MorningPeriods,
	}
}

func parseWeights(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	weights := make([]int64, 0, len(parts))
	for _, part := range parts {
		weight, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid period weight %q: %w", part, err)
		}
		weights = append(weights, weight)
	}
	return weights, nil
}
