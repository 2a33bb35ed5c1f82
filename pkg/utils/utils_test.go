package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 8)
		assert.True(t, IsValidID(id), id)
		assert.False(t, seen[id], "IDs should not repeat")
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("deadbeef"))
	assert.False(t, IsValidID("DEADBEEF"))
	assert.False(t, IsValidID("short"))
	assert.False(t, IsValidID("deadbeef0"))
	assert.False(t, IsValidID(""))
}
