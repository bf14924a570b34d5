package config

import (
	"os"
	"strconv"
	"time"
)

// Settings groups the workflow tunables. Values come from the environment
// with the defaults the club runs in production.
type Settings struct {
	// AutoValidateAfter is how long an unconfirmed match waits before the
	// sweeper may resolve it unilaterally.
	AutoValidateAfter time.Duration
	// ContestWindow is how long after validation a match can still be
	// disputed.
	ContestWindow time.Duration
	// ContestMonthlyQuota caps how many contests one player may file per
	// calendar month.
	ContestMonthlyQuota int
	// SweepToken is the shared secret required on the internal sweep
	// trigger endpoint.
	SweepToken string
	JWTSecret  string
	Port       string
}

func LoadSettings() Settings {
	return Settings{
		AutoValidateAfter:   time.Duration(envInt("AUTO_VALIDATE_HOURS", 24)) * time.Hour,
		ContestWindow:       time.Duration(envInt("CONTEST_WINDOW_DAYS", 7)) * 24 * time.Hour,
		ContestMonthlyQuota: envInt("CONTEST_MONTHLY_QUOTA", 3),
		SweepToken:          os.Getenv("SWEEP_TOKEN"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Port:                envString("PORT", "8080"),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
