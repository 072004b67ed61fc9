package model

// Config holds application configuration (singleton).
type Config struct {
	Key    string `json:"key"`
	UserID string `json:"user_id"`
}

// SetKey sets the database key for this config.
func (c *Config) SetKey(key string) {
	c.Key = key
}

// GetKey returns the database key for this config.
func (c *Config) GetKey() string {
	return c.Key
}

// NewConfig creates a new config with the given local user ID.
func NewConfig(userID string) *Config {
	return &Config{
		Key:    KeyConfig,
		UserID: userID,
	}
}
