package jobs

// errors.go defines the package's sentinel errors and maps them, together
// with common I/O and context failures, to user-facing messages.
//
// Error codes:
//
//	JOB001  - Unknown field: the requested column does not exist
//	JOB002  - Data not loaded: the job data could not be loaded
//	FILE002 - Invalid CSV: the data file could not be parsed
//	FILE003 - Encoding error: the data file contains invalid characters
//	FILE005 - Empty file: the data file has no header row
//	UPL004  - Request cancelled
//	UPL005  - Request timeout
//	GEN001  - Unexpected error (fallback)

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotLoaded is returned when a query runs before the data could be loaded.
	ErrNotLoaded = errors.New("job data not loaded")

	// ErrUnknownField is returned when a query names a column the data does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrEmptyHeader is returned when a source yields no header row.
	ErrEmptyHeader = errors.New("empty file: no header row")

	// ErrDuplicateColumn is returned when a header names the same column twice.
	ErrDuplicateColumn = errors.New("invalid csv: duplicate column")

	// ErrReservedColumn is returned when a header uses a name queries reserve.
	ErrReservedColumn = errors.New("invalid csv: reserved column name")
)

// UserMessage is a user-facing description of an error.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUnknownField = UserMessage{
		Message: "That field does not exist in the job data",
		Action:  "Use one of the listed fields, or \"all\"",
		Code:    "JOB001",
	}
	msgNotLoaded = UserMessage{
		Message: "Job data is not available",
		Action:  "Check the data source and try again",
		Code:    "JOB002",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL004",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Please try again later",
		Code:    "UPL005",
	}
	msgUnexpected = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "GEN001",
	}
)

// errorPatterns match on the error text for failures that do not carry a
// sentinel, such as csv.ParseError.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Job data file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "wrong number of fields",
		msg: UserMessage{
			Message: "Job data file is not a valid CSV",
			Action:  "Ensure every row has the same number of columns as the header",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "Job data file contains invalid characters",
			Action:  "Save the file as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "Job data file is empty",
			Action:  "Provide a CSV file with a header row",
			Code:    "FILE005",
		},
	},
}

// MapError converts an error into a UserMessage.
// Sentinels and context errors are matched first, then the error text.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	switch {
	case errors.Is(err, ErrUnknownField):
		return msgUnknownField
	case errors.Is(err, context.Canceled):
		return msgCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	if errors.Is(err, ErrNotLoaded) {
		return msgNotLoaded
	}
	return msgUnexpected
}
