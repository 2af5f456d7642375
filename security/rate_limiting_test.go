package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuspiciousUserAgent(t *testing.T) {
	r := NewRateLimiter(nil)

	assert.True(t, r.isSuspiciousUserAgent("Googlebot/2.1"))
	assert.True(t, r.isSuspiciousUserAgent("my-crawler 1.0"))
	assert.False(t, r.isSuspiciousUserAgent("Mozilla/5.0 (Linux; Android 14)"))
	assert.False(t, r.isSuspiciousUserAgent(""))
}
