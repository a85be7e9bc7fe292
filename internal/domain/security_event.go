package domain

import (
	"strings"
	"time"
)

type SecurityEventType string

const (
	SecurityEventAuthenticationFailure SecurityEventType = "AUTHENTICATION_FAILURE"
	SecurityEventTokenExpired          SecurityEventType = "TOKEN_EXPIRED"
	SecurityEventInvalidTokenAttempt   SecurityEventType = "INVALID_TOKEN_ATTEMPT"
	SecurityEventBlacklistedToken      SecurityEventType = "BLACKLISTED_TOKEN_ATTEMPT"
	SecurityEventRateLimitExceeded     SecurityEventType = "RATE_LIMIT_EXCEEDED"
	SecurityEventSuspiciousAccess      SecurityEventType = "SUSPICIOUS_ACCESS_PATTERN"
	SecurityEventLogoutSuccess         SecurityEventType = "LOGOUT_SUCCESS"
)

var securityEventTypes = map[SecurityEventType]struct{}{
	SecurityEventAuthenticationFailure: {},
	SecurityEventTokenExpired:          {},
	SecurityEventInvalidTokenAttempt:   {},
	SecurityEventBlacklistedToken:      {},
	SecurityEventRateLimitExceeded:     {},
	SecurityEventSuspiciousAccess:      {},
	SecurityEventLogoutSuccess:         {},
}

func (t SecurityEventType) IsValid() bool {
	_, ok := securityEventTypes[t]
	return ok
}

// SecurityEvent is an immutable audit record. It is created once and never
// mutated or deleted by this service.
type SecurityEvent struct {
	ID          int64
	EventType   SecurityEventType
	UserID      string
	IPAddress   string
	UserAgent   string
	Description string
	OccurredAt  time.Time
}

// NewSecurityEvent validates the required fields and stamps the event with
// the current time. UserID and UserAgent may be blank.
func NewSecurityEvent(eventType SecurityEventType, userID string, ipAddress string, userAgent string, description string) (SecurityEvent, error) {
	if !eventType.IsValid() {
		return SecurityEvent{}, NewValidationError("eventType", "unknown security event type")
	}
	if strings.TrimSpace(ipAddress) == "" {
		return SecurityEvent{}, NewValidationError("ipAddress", "must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return SecurityEvent{}, NewValidationError("description", "must not be blank")
	}

	return SecurityEvent{
		EventType:   eventType,
		UserID:      userID,
		IPAddress:   ipAddress,
		UserAgent:   TruncateUserAgent(userAgent),
		Description: description,
		OccurredAt:  time.Now(),
	}, nil
}

const UserAgentMaxLength = 255

func TruncateUserAgent(userAgent string) string {
	if len(userAgent) <= UserAgentMaxLength {
		return userAgent
	}
	return userAgent[:UserAgentMaxLength]
}

// ClientInfo identifies the remote client for audit purposes.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
