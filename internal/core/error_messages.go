// Error Codes Reference
//
// This file maps technical errors to user-friendly messages with codes that
// users can quote when they report a problem. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum upload size
//	          Action: Split the file into smaller files
//	          Patterns: "file too large"
//
//	FILE002 - Invalid CSV: File is not valid CSV
//	          Action: Check for unbalanced quotes near the reported line
//	          Patterns: "invalid csv"
//
//	FILE003 - Invalid workbook: File is not a readable XLSX workbook
//	          Action: Re-save the workbook as .xlsx or export it as CSV
//	          Patterns: "invalid xlsx"
//
//	FILE004 - No file: No file was selected
//	          Action: Choose a CSV file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The file has no header or no data rows
//	          Action: Add a header row and at least one prompt row
//	          Patterns: "empty file"
//
//	FILE006 - Unsupported type: Only CSV and XLSX files are accepted
//	          Action: Upload a file ending in .csv or .xlsx
//	          Patterns: "unsupported file type"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Bad selection: The requested prompt does not exist
//	         Action: Pick a prompt from the list
//	         Patterns: "selection out of range"
//
//	SES002 - Bad view mode: Unknown view mode
//	         Action: Use rendered or raw
//	         Patterns: "invalid view mode"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	         Action: Please wait a moment and try again
//	         Patterns: "too many uploads"
//
//	UPL004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout: Request timed out
//	         Action: Try a smaller file or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting and Access (RATE001, AUTH001)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
//	AUTH001 - Unauthorized: Missing or invalid API key
//	          Action: Send a valid key in the X-API-Key header
//	          Patterns: "api key"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Patterns are matched case-insensitively with strings.Contains. The first
// match wins, so specific patterns go before general ones. When a user reports
// ERR000, the technical error is in the server log under the request id.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// When adding a pattern, update the reference at the top of this file.
var errorPatterns = []errorPattern{
	// File errors (FILE001-FILE006)
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not valid CSV",
			Action:  "Check for unbalanced quotes near the reported line",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid xlsx",
		msg: UserMessage{
			Message: "File is not a readable XLSX workbook",
			Action:  "Re-save the workbook as .xlsx or export it as CSV",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no header or no data rows",
			Action:  "Add a header row and at least one prompt row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Only CSV and XLSX files are accepted",
			Action:  "Upload a file ending in .csv or .xlsx",
			Code:    "FILE006",
		},
	},

	// Session errors (SES001-SES002)
	{
		pattern: "selection out of range",
		msg: UserMessage{
			Message: "The requested prompt does not exist",
			Action:  "Pick a prompt from the list",
			Code:    "SES001",
		},
	},
	{
		pattern: "invalid view mode",
		msg: UserMessage{
			Message: "Unknown view mode",
			Action:  "Use rendered or raw",
			Code:    "SES002",
		},
	},

	// Upload errors (UPL002, UPL004, UPL005)
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// Throttling and access
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Missing or invalid API key",
			Action:  "Send a valid key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or the ERR000 fallback.
//
// Example:
//
//	msg := MapError(&ParseError{Line: 3, Column: 7, Err: csv.ErrQuote})
//	// msg.Code == "FILE002"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error (for logs) with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
