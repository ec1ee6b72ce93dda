package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lokvaani/commentengine/pkg/config"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "single part",
			parts:    []string{"test"},
			expected: "098f6bcd4621d373cade4e832627b4f6",
		},
		{
			name:  "multiple parts",
			parts: []string{"test", "key", "with", "many", "parts"},
		},
		{
			name:     "empty parts",
			parts:    []string{},
			expected: "d41d8cd98f00b204e9800998ecf8427e",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			// Hash should be consistent
			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}

			// Hash should be 32 characters (MD5 hex)
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
			if tt.expected != "" && hashed1 != tt.expected {
				t.Errorf("HashKey() = %s, want %s", hashed1, tt.expected)
			}
		})
	}
}

func TestCache_NamespaceKey(t *testing.T) {
	cache := &Cache{}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "lokvaani:test",
		},
		{
			name:     "key with colon",
			key:      "analysis:abc",
			expected: "lokvaani:analysis:abc",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "lokvaani:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cache.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDisabledCache(t *testing.T) {
	ctx := context.Background()
	c, err := New(ctx, &config.RedisConfig{Enabled: false})
	if err != nil || c != nil {
		t.Fatalf("disabled cache: %v %v", c, err)
	}

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Get: %v", err)
	}
	if err := c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("SetJSON: %v", err)
	}
	var dest map[string]int
	if err := c.GetJSON(ctx, "k", &dest); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("GetJSON: %v", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Health(ctx); !errors.Is(err, ErrCacheDisabled) {
		t.Errorf("Health: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewInvalidURL(t *testing.T) {
	_, err := New(context.Background(), &config.RedisConfig{Enabled: true, URL: "://bad"})
	if err == nil {
		t.Error("expected parse error")
	}
}
