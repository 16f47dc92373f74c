package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ID is a UUID identifier shared by every aggregate
type ID string

// GenerateUUID creates a fresh random ID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID parses an external string into an ID, rejecting anything that is
// not a valid UUID
func NewID(id string) (ID, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return ID(id), nil
}

func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the ID is unset
func (id ID) IsZero() bool {
	return id == ""
}

// Money is a monetary amount in minor units (cents) with its currency code
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// Add sums two amounts of the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, errors.New("currency mismatch")
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Times scales the amount by a quantity, for pricing line items
func (m Money) Times(qty int) Money {
	return Money{Amount: m.Amount * int64(qty), Currency: m.Currency}
}

// Timestamps carries the audit times every persisted entity records
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{CreatedAt: now, UpdatedAt: now}
}

// Update refreshes UpdatedAt
func (t Timestamps) Update() Timestamps {
	t.UpdatedAt = time.Now()
	return t
}

// Version is the optimistic locking counter. Saves compare the stored
// version against the one they read from, and a mismatch means another
// writer got there first.
type Version struct {
	Value int
}

func NewVersion() Version {
	return Version{Value: 1}
}

// Update increments the version
func (v Version) Update() Version {
	v.Value++
	return v
}
