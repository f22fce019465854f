package releasenote

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Changes []string

// Value implements driver.Valuer for JSONB storage
func (c Changes) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal(Changes{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB retrieval
func (c *Changes) Scan(value interface{}) error {
	if value == nil {
		*c = Changes{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Changes: invalid type")
	}
	return json.Unmarshal(bytes, c)
}

// ReleaseNote is an admin-curated changelog entry. Unpublished notes are
// visible to admins only.
type ReleaseNote struct {
	ID          string
	Version     string
	Title       string
	Description *string
	Changes     Changes
	Published   bool
	CreatedBy   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
