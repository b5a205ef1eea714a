package agentlite

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_WrapAndMatch(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"validation", ErrValidation},
		{"introspection", ErrIntrospection},
		{"invalid input", ErrInvalidInput},
		{"no credentials", ErrNoCredentials},
		{"upstream", ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("%w: extra context", tt.sentinel)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.ErrorContains(t, wrapped, tt.sentinel.Error())
		})
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrValidation, ErrIntrospection, ErrInvalidInput, ErrNoCredentials, ErrUpstream}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}
