package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// QuestionRecord is the persisted shape of one question inside a quiz's
// QUESTIONS column.
type QuestionRecord struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// QuestionSlice stores a quiz's questions as a JSON document in a CLOB
// column, following the same codec pattern as StringSlice.
type QuestionSlice []QuestionRecord

// Value implements the driver.Valuer interface
func (q QuestionSlice) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionSlice) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return fmt.Errorf("QuestionSlice Scan: unsupported type %T", value)
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*q = QuestionSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, q)
}

// Quiz represents a quiz row in the QUIZZES table.
type Quiz struct {
	ID        string        `db:"ID"` // ULID
	UserID    string        `db:"USER_ID"`
	Statement string        `db:"STATEMENT"`
	Questions QuestionSlice `db:"QUESTIONS"` // JSON array in a CLOB column
	CreatedAt time.Time     `db:"CREATED_AT"`
	UpdatedAt time.Time     `db:"UPDATED_AT"`
}
