package config

import "time"

type RateLimitConfig struct {
	RefreshLimitCount int
	RefreshWindowSize time.Duration
}

func NewRateLimitConfigFromEnv() (RateLimitConfig, error) {
	limitCount, err := getIntFromEnv("AUTH_SERVICE_REFRESH_RATE_LIMIT", 10)
	if err != nil {
		return RateLimitConfig{}, err
	}

	windowSize, err := getDurationFromEnv("AUTH_SERVICE_REFRESH_RATE_WINDOW", time.Minute)
	if err != nil {
		return RateLimitConfig{}, err
	}

	return RateLimitConfig{
		RefreshLimitCount: limitCount,
		RefreshWindowSize: windowSize,
	}, nil
}
