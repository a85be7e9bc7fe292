package config

import (
	"os"
	"strconv"
	"time"

	"github.com/Siroshun09/serrors"
)

func getRequiredString(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", serrors.Errorf("%s is required", name)
	}
	return value, nil
}

func getOptionalString(name string) string {
	return os.Getenv(name)
}

func getDurationFromEnv(name string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, serrors.Errorf("failed to parse %s as duration: %w", name, err)
	}
	return duration, nil
}

func getBoolFromEnv(name string, defaultValue bool) (bool, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, serrors.Errorf("failed to parse %s as bool: %w", name, err)
	}
	return parsed, nil
}

func getIntFromEnv(name string, defaultValue int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, serrors.Errorf("failed to parse %s as int: %w", name, err)
	}
	return parsed, nil
}
