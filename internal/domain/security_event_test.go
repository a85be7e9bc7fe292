package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecurityEvent(t *testing.T) {
	tests := []struct {
		name        string
		eventType   SecurityEventType
		userID      string
		ipAddress   string
		userAgent   string
		description string
		wantErr     bool
	}{
		{
			name:        "success: all fields",
			eventType:   SecurityEventLogoutSuccess,
			userID:      "10",
			ipAddress:   "203.0.113.7",
			userAgent:   "test-agent",
			description: "user logged out",
		},
		{
			name:        "success: anonymous event",
			eventType:   SecurityEventRateLimitExceeded,
			ipAddress:   "203.0.113.7",
			description: "refresh limit exceeded",
		},
		{
			name:        "error: unknown event type",
			eventType:   SecurityEventType("SOMETHING_ELSE"),
			ipAddress:   "203.0.113.7",
			description: "whatever",
			wantErr:     true,
		},
		{
			name:        "error: blank ip",
			eventType:   SecurityEventLogoutSuccess,
			ipAddress:   "   ",
			description: "user logged out",
			wantErr:     true,
		},
		{
			name:        "error: blank description",
			eventType:   SecurityEventLogoutSuccess,
			ipAddress:   "203.0.113.7",
			description: "",
			wantErr:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewSecurityEvent(tt.eventType, tt.userID, tt.ipAddress, tt.userAgent, tt.description)
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.eventType, event.EventType)
			assert.Equal(t, tt.userID, event.UserID)
			assert.Equal(t, tt.ipAddress, event.IPAddress)
			assert.Equal(t, tt.userAgent, event.UserAgent)
			assert.Equal(t, tt.description, event.Description)
			assert.False(t, event.OccurredAt.IsZero())
		})
	}
}

func TestNewSecurityEvent_TruncatesUserAgent(t *testing.T) {
	long := strings.Repeat("a", UserAgentMaxLength+50)

	event, err := NewSecurityEvent(SecurityEventInvalidTokenAttempt, "", "203.0.113.7", long, "bad token")
	require.NoError(t, err)
	assert.Len(t, event.UserAgent, UserAgentMaxLength)
}

func TestSecurityEventType_IsValid(t *testing.T) {
	for _, eventType := range []SecurityEventType{
		SecurityEventAuthenticationFailure,
		SecurityEventTokenExpired,
		SecurityEventInvalidTokenAttempt,
		SecurityEventBlacklistedToken,
		SecurityEventRateLimitExceeded,
		SecurityEventSuspiciousAccess,
		SecurityEventLogoutSuccess,
	} {
		assert.True(t, eventType.IsValid(), string(eventType))
	}

	assert.False(t, SecurityEventType("").IsValid())
	assert.False(t, SecurityEventType("logout_success").IsValid())
}
