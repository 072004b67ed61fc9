package model

import "time"

// StreakRecord is the persisted streak result for a user.
type StreakRecord struct {
	Key         string    `json:"key"`
	UserID      string    `json:"user_id"`
	Current     int       `json:"current"`
	Longest     int       `json:"longest"`
	Policy      string    `json:"policy"`
	LastUpdated time.Time `json:"last_updated"`
}

// SetKey sets the database key for this record.
func (s *StreakRecord) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for this record.
func (s *StreakRecord) GetKey() string {
	return s.Key
}

// GenerateStreakKey returns the database key for a user's streak.
func GenerateStreakKey(userID string) string {
	return userKey(PrefixStreak, userID)
}

// NewStreakRecord creates a streak record stamped with the current time.
func NewStreakRecord(userID string, current, longest int, policy string) *StreakRecord {
	return &StreakRecord{
		Key:         GenerateStreakKey(userID),
		UserID:      userID,
		Current:     current,
		Longest:     longest,
		Policy:      policy,
		LastUpdated: time.Now(),
	}
}
