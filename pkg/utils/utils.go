package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var idPattern = regexp.MustCompile("^[0-9a-f]{8}$")

// NewID generates a short ID (8 hex characters) for notes, folders,
// tags and suggestions.
func NewID() string {
	fullUUID := uuid.New().String()
	return strings.ReplaceAll(fullUUID[:8], "-", "")
}

// IsValidID checks if an ID matches the short ID pattern. The "all-notes"
// folder sentinel is the one reserved exception.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
