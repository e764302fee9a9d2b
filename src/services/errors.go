package services

import "errors"

var (
	ErrNoRows         = errors.New("no rows returned by the sheet source")
	ErrFetchFailed    = errors.New("failed to fetch rows")
	ErrQuotesDisabled = errors.New("quotes disabled")
	ErrNoSymbols      = errors.New("no symbols provided")
	ErrParsingFailed  = errors.New("failed to parse uploaded file")
)
