// Package model defines the domain models for studytrack.
package model

import "fmt"

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// KeyPrefix constants for database key generation.
const (
	PrefixEntry    = "entry"
	PrefixStreak   = "streak"
	PrefixInsights = "insights"
	KeyConfig      = "config"
)

// userKey builds "<prefix>:<userID>".
func userKey(prefix, userID string) string {
	return fmt.Sprintf("%s:%s", prefix, userID)
}
