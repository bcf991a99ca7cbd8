package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExpenseIngestedMessage signals that new records landed in a given month.
// It carries only identifiers and counts; the worker re-reads the records
// from the store when regenerating advice.
type ExpenseIngestedMessage struct {
	BatchID   string    `json:"batch_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseIngestedMessage creates a message for a freshly stored batch.
func NewExpenseIngestedMessage(year, month, count int) *ExpenseIngestedMessage {
	return &ExpenseIngestedMessage{
		BatchID:   uuid.NewString(),
		Year:      year,
		Month:     month,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ExpenseIngestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseIngestedMessageFromJSON creates a message from JSON bytes.
func ExpenseIngestedMessageFromJSON(data []byte) (*ExpenseIngestedMessage, error) {
	var msg ExpenseIngestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
