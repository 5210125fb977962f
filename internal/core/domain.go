package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

type (
	TransactionType string

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. ID and the
	// timestamps are assigned by the store, never by callers.
	Transaction struct {
		ID          string
		Type        TransactionType
		Amount      Money
		Description string
		Category    string
		Date        time.Time // calendar date; only year/month/day are meaningful
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// Budget is a monthly spending ceiling for one expense category.
	// Month is a YYYY-MM token that is stored and echoed back but not
	// used when matching spend against the budget; utilization is always
	// computed against the evaluation instant's month.
	Budget struct {
		ID        string
		Category  string
		Amount    Money
		Month     string
		CreatedAt time.Time
		UpdatedAt time.Time
	}
)

var (
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidMonth     = errors.New("invalid month token")
	ErrNegativeAmount   = errors.New("negative amount")
)

func (t TransactionType) Valid() bool {
	return t == Expense || t == Income
}

// Validate checks the invariants the store enforces before accepting a
// transaction. Amount sign is deliberately not checked here: the edit
// form is the layer that rejects non-positive amounts.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if b.Month != "" && !ValidMonth(b.Month) {
		return ErrInvalidMonth
	}
	return nil
}

// ParseDate accepts a bare calendar date (2006-01-02) or anything with a
// parseable RFC 3339 prefix, normalized to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ValidMonth reports whether s is a well-formed YYYY-MM token.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// MonthToken returns the YYYY-MM token for t, the format budget rows carry.
func MonthToken(t time.Time) string {
	return t.Format("2006-01")
}
