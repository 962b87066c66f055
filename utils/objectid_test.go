package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectID(t *testing.T) {
	id := NewObjectID()
	assert.Len(t, id, 24)
	assert.True(t, IsValidObjectID(id))

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewObjectID()
		assert.False(t, seen[id], "generated a duplicate identifier")
		seen[id] = true
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"Lowercase hex", strings.Repeat("ab12", 6), true},
		{"Uppercase hex", strings.Repeat("AB12", 6), true},
		{"Too short", strings.Repeat("a", 23), false},
		{"Too long", strings.Repeat("a", 25), false},
		{"Non-hex characters", strings.Repeat("g", 24), false},
		{"Empty", "", false},
		{"Hex with trailing space", strings.Repeat("a", 23) + " ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidObjectID(tt.id))
		})
	}
}
