package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON document in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return fmt.Errorf("StringSlice Scan: unsupported type %T", value)
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// User represents a user row in the USERS table.
type User struct {
	ID           string      `db:"ID"` // ULID
	Username     string      `db:"USERNAME"`
	Email        string      `db:"EMAIL"`
	PasswordHash string      `db:"PASSWORD_HASH"`
	Roles        StringSlice `db:"ROLES"` // JSON array in a CLOB column
	Active       bool        `db:"ACTIVE"`
	CreatedAt    time.Time   `db:"CREATED_AT"`
	UpdatedAt    time.Time   `db:"UPDATED_AT"`
}
