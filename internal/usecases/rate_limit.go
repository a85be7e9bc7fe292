package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/ratelimit"
)

type CheckRateLimitParams struct {
	Key                 string
	IPAddress           string
	LimitCount          int
	WindowSizeInSeconds int64
}

type RateLimitResult struct {
	Allowed      bool
	CurrentCount int64
}

type RateLimitUsecase interface {
	// Check counts the request against its window and reports whether it is
	// allowed. Denial is an outcome, not an error; callers decide what to do
	// with it.
	Check(ctx context.Context, params CheckRateLimitParams) (RateLimitResult, error)
	CurrentCount(ctx context.Context, key string) (int64, error)
}

func NewRateLimitUsecase(limiter *ratelimit.Limiter) RateLimitUsecase {
	return rateLimitUsecase{limiter: limiter}
}

type rateLimitUsecase struct {
	limiter *ratelimit.Limiter
}

func (u rateLimitUsecase) Check(ctx context.Context, params CheckRateLimitParams) (RateLimitResult, error) {
	if strings.TrimSpace(params.Key) == "" {
		return RateLimitResult{}, domain.NewValidationError("key", "must not be blank")
	}
	if strings.TrimSpace(params.IPAddress) == "" {
		return RateLimitResult{}, domain.NewValidationError("ipAddress", "must not be blank")
	}
	if params.LimitCount <= 0 {
		return RateLimitResult{}, domain.NewValidationError("limitCount", "must be positive")
	}
	if params.WindowSizeInSeconds <= 0 {
		return RateLimitResult{}, domain.NewValidationError("windowSizeInSeconds", "must be positive")
	}

	allowed, count, err := u.limiter.CheckAndIncrement(ctx, params.Key, params.LimitCount, time.Duration(params.WindowSizeInSeconds)*time.Second)
	if err != nil {
		return RateLimitResult{}, serrors.WithStackTrace(err)
	}

	return RateLimitResult{Allowed: allowed, CurrentCount: count}, nil
}

func (u rateLimitUsecase) CurrentCount(ctx context.Context, key string) (int64, error) {
	count, err := u.limiter.CurrentCount(ctx, key)
	if err != nil {
		return 0, serrors.WithStackTrace(err)
	}
	return count, nil
}
