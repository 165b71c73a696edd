package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "validation error maps through Unwrap",
			err:         &ValidationError{Field: "diskType", Value: "FOO", Message: "must be HDD or SSD"},
			wantCode:    "VAL001",
			wantMessage: "The entered data is invalid",
		},
		{
			name:        "wrapped parse failure maps correctly",
			err:         fmt.Errorf("parse xml: %w: laptop 3: missing <disc>", ErrParseMalformed),
			wantCode:    "FILE001",
			wantMessage: "The file does not match the expected format",
		},
		{
			name:        "export on empty maps correctly",
			err:         ErrExportOnEmpty,
			wantCode:    "EXP001",
			wantMessage: "Load a source file first",
		},
		{
			name:        "stale load maps correctly",
			err:         fmt.Errorf("commit abc: %w", ErrStaleLoad),
			wantCode:    "LOAD001",
			wantMessage: "A newer file selection replaced this one",
		},
		{
			name:        "busy limiter maps correctly",
			err:         ErrTooManyLoads,
			wantCode:    "LOAD002",
			wantMessage: "System is busy loading other files",
		},
		{
			name:        "unknown format maps correctly",
			err:         fmt.Errorf("%w: \".csv\"", ErrUnknownFormat),
			wantCode:    "FILE002",
			wantMessage: "Unsupported file format",
		},
		{
			name:        "timeout maps by text",
			err:         fmt.Errorf("parse txt: %w", context.DeadlineExceeded),
			wantCode:    "LOAD003",
			wantMessage: "Request timed out",
		},
		{
			name:        "file too large maps by text",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE003",
			wantMessage: "File exceeds the maximum size limit",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("No File Provided"),
			wantCode:    "FILE004",
			wantMessage: "No file was selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrExportOnEmpty)

	expected := "Load a source file first (Code: EXP001). Select a .txt or .xml catalog before saving"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  fmt.Errorf("wrapped: %w", ErrRowOutOfRange),
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMessageForCode(t *testing.T) {
	msg, ok := MessageForCode("EXP001")
	if !ok || msg.Message != "Load a source file first" {
		t.Errorf("MessageForCode(EXP001) = %+v, %v", msg, ok)
	}

	msg, ok = MessageForCode("LOAD003")
	if !ok || msg.Code != "LOAD003" {
		t.Errorf("MessageForCode(LOAD003) = %+v, %v", msg, ok)
	}

	if _, ok := MessageForCode("NOPE01"); ok {
		t.Error("MessageForCode(NOPE01) should not resolve")
	}
}
