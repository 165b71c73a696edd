// Error Codes Reference
//
// This file defines the error kinds of the catalog and the user-friendly
// messages shown for them. Users can quote the code when reporting a problem.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid data: the entered data is invalid
//	         Action: Correct the value; the previous value was kept
//	         Sentinel: ErrValidationRejected
//
//	VAL002 - Unknown field: the edited column does not exist
//	         Sentinel: ErrUnknownField
//
//	VAL003 - Row out of range: the edited row no longer exists
//	         Sentinel: ErrRowOutOfRange
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Malformed source: the file does not match the expected format
//	          Action: Check the file; the previously loaded catalog is unchanged
//	          Sentinel: ErrParseMalformed
//
//	FILE002 - Unknown format: only .txt and .xml catalogs are supported
//	          Sentinel: ErrUnknownFormat
//
//	FILE003 - File too large
//	          Patterns: "file too large", "request body too large"
//
//	FILE004 - No file: no file was selected
//	          Patterns: "no file provided"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Export on empty catalog: load a source file first
//	         Sentinel: ErrExportOnEmpty
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Superseded: a newer file selection replaced this load
//	          Sentinel: ErrStaleLoad
//
//	LOAD002 - System busy: too many loads in progress
//	          Sentinel: ErrTooManyLoads
//
//	LOAD003 - Request cancelled / timed out
//	          Patterns: "context canceled", "context deadline exceeded"
//
// # Page Errors (PAGE001)
//
//	PAGE001 - Invalid page action or page size
//	          Sentinel: ErrInvalidNavigation
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check application logs for the technical error.
//
// # Matching
//
// Sentinels are matched with errors.Is first, in table order. Text patterns
// are matched case-insensitively with strings.Contains afterwards, for errors
// that come from outside the package (net/http, context).

package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidationRejected is returned when a candidate value fails its field rule.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrParseMalformed is returned when a source file does not match its format.
	ErrParseMalformed = errors.New("malformed source")

	// ErrExportOnEmpty is returned when exporting before anything was loaded.
	ErrExportOnEmpty = errors.New("nothing to export")

	// ErrStaleLoad is returned when a load completes after a newer one started.
	ErrStaleLoad = errors.New("load superseded by a newer load")

	// ErrRowOutOfRange is returned for an edit addressed to a row that does not exist.
	ErrRowOutOfRange = errors.New("row out of range")

	// ErrUnknownField is returned for an edit addressed to a column that does not exist.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownFormat is returned when no codec is registered for a format or extension.
	ErrUnknownFormat = errors.New("unknown format")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages is checked with errors.Is, first match wins.
var sentinelMessages = []sentinelMessage{
	{ErrValidationRejected, UserMessage{
		Message: "The entered data is invalid",
		Action:  "Correct the value; the previous value was kept",
		Code:    "VAL001",
	}},
	{ErrUnknownField, UserMessage{
		Message: "Unknown column",
		Action:  "Reload the page and try again",
		Code:    "VAL002",
	}},
	{ErrRowOutOfRange, UserMessage{
		Message: "The edited row no longer exists",
		Action:  "Reload the page and try again",
		Code:    "VAL003",
	}},
	{ErrParseMalformed, UserMessage{
		Message: "The file does not match the expected format",
		Action:  "Check the file; the previously loaded catalog is unchanged",
		Code:    "FILE001",
	}},
	{ErrUnknownFormat, UserMessage{
		Message: "Unsupported file format",
		Action:  "Select a .txt or .xml catalog file",
		Code:    "FILE002",
	}},
	{ErrExportOnEmpty, UserMessage{
		Message: "Load a source file first",
		Action:  "Select a .txt or .xml catalog before saving",
		Code:    "EXP001",
	}},
	{ErrStaleLoad, UserMessage{
		Message: "A newer file selection replaced this one",
		Action:  "The most recently selected file is shown",
		Code:    "LOAD001",
	}},
	{ErrTooManyLoads, UserMessage{
		Message: "System is busy loading other files",
		Action:  "Please wait a moment and try again",
		Code:    "LOAD002",
	}},
	{ErrInvalidNavigation, UserMessage{
		Message: "Invalid page request",
		Action:  "Choose a page size of 10, 20, 30, 40 or 50",
		Code:    "PAGE001",
	}},
}

// errorPattern defines a text pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{"file too large", UserMessage{"File exceeds the maximum size limit", "Select a smaller file", "FILE003"}},
	{"request body too large", UserMessage{"File exceeds the maximum size limit", "Select a smaller file", "FILE003"}},
	{"no file provided", UserMessage{"No file was selected", "Please select a catalog file", "FILE004"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "LOAD003"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file or try again later", "LOAD003"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// MessageForCode returns the user message registered under code, for shells
// that carry only the code across a redirect.
func MessageForCode(code string) (UserMessage, bool) {
	for _, sm := range sentinelMessages {
		if sm.msg.Code == code {
			return sm.msg, true
		}
	}
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep.msg, true
		}
	}
	if code == defaultMessage.Code {
		return defaultMessage, true
	}
	return UserMessage{}, false
}
