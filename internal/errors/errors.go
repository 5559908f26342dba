package errors

import (
	"errors"
	"fmt"
)

// Code identifies a class of fatal analysis error.
type Code string

const (
	// CodeSchema indicates a required column is missing or a cell could not
	// be coerced to its expected type.
	CodeSchema Code = "SCHEMA"
	// CodeMissingReference indicates stock rows reference SKUs that have no
	// cost record.
	CodeMissingReference Code = "MISSING_REFERENCE"
	// CodeDegenerateInput indicates the input admits no meaningful
	// distribution (zero grand total, or too few defined CVs).
	CodeDegenerateInput Code = "DEGENERATE_INPUT"
)

// Error is a structured analysis error. Details carries whatever context
// identifies the offending input: file, column, row, or SKU list.
type Error struct {
	Code    Code
	Message string
	Details interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches two *Error values by code so callers can test against the
// predefined sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// Predefined sentinels for errors.Is checks.
var (
	ErrSchema           = &Error{Code: CodeSchema, Message: "schema violation"}
	ErrMissingReference = &Error{Code: CodeMissingReference, Message: "missing cost reference"}
	ErrDegenerateInput  = &Error{Code: CodeDegenerateInput, Message: "degenerate input"}
)

// New creates a new Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewWithDetails creates a new Error with additional details.
func NewWithDetails(code Code, message string, details interface{}) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

// SchemaContext locates a schema violation inside a source file.
type SchemaContext struct {
	File   string
	Column string
	Row    int // 1-based spreadsheet row, 0 if the whole column is missing
}

func (sc SchemaContext) String() string {
	if sc.Row > 0 {
		return fmt.Sprintf("file=%s column=%s row=%d", sc.File, sc.Column, sc.Row)
	}
	return fmt.Sprintf("file=%s column=%s", sc.File, sc.Column)
}

// Schema creates a SCHEMA error pointing at a file, column and row.
func Schema(message, file, column string, row int) *Error {
	return NewWithDetails(CodeSchema, message, SchemaContext{File: file, Column: column, Row: row})
}

// MissingReference creates a MISSING_REFERENCE error carrying the SKUs that
// had no cost record. The list is capped to keep messages readable.
func MissingReference(skus []string) *Error {
	const maxListed = 20
	listed := skus
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	return NewWithDetails(CodeMissingReference,
		fmt.Sprintf("%d SKU(s) in stock data have no cost record", len(skus)),
		listed)
}

// DegenerateInput creates a DEGENERATE_INPUT error.
func DegenerateInput(message string) *Error {
	return New(CodeDegenerateInput, message)
}
