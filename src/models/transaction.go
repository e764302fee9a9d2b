package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Direction tells whether money entered or left the account.
type Direction string

const (
	Incoming Direction = "Incoming"
	Outgoing Direction = "Outgoing"
)

// Transaction is a normalized transfer/ledger row.
type Transaction struct {
	Date         *time.Time `json:"date"`          // nil when no date column parsed
	Amount       float64    `json:"amount"`        // Magnitude, always >= 0
	SignedAmount float64    `json:"signed_amount"` // Amount as coerced from the sheet, before sign normalization
	Direction    Direction  `json:"direction"`
	Type         string     `json:"type"`   // Raw type text, case preserved
	Status       string     `json:"status"` // Raw status text
}

// IsIncoming reports whether the transaction was classified as incoming.
func (t Transaction) IsIncoming() bool {
	return t.Direction == Incoming
}

// HasDate reports whether a date could be parsed for the transaction.
func (t Transaction) HasDate() bool {
	return t.Date != nil
}

// NormalizedStatus returns the status as reported in the status distribution.
func (t Transaction) NormalizedStatus() string {
	return NormalizeStatus(t.Status)
}

// NormalizeStatus trims s and capitalizes its first letter, lowercasing the rest,
// so "OPEN", "open" and "OpEn" all become "Open".
func NormalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
