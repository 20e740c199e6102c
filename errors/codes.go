package errors

// ErrorCode represents a unique identifier for diagnostic types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - W0xxx: Warnings
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected input
	E1002 ErrorCode = "E1002" // Unterminated block
	E1003 ErrorCode = "E1003" // Invalid syntax
	E1009 ErrorCode = "E1009" // Maximum nesting depth exceeded
	E1011 ErrorCode = "E1011" // Include cycle
	E1012 ErrorCode = "E1012" // Include below top level
	E1013 ErrorCode = "E1013" // Include could not be loaded
	E1014 ErrorCode = "E1014" // Parse cancelled

	// Warnings (W0xxx)
	W0001 ErrorCode = "W0001" // Author warning
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected input",
	E1002: "unterminated block",
	E1003: "invalid syntax",
	E1009: "maximum nesting depth exceeded",
	E1011: "include cycle",
	E1012: "include below top level",
	E1013: "include could not be loaded",
	E1014: "parse cancelled",

	W0001: "author warning",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch {
	case c[0] == 'W':
		return "warning"
	case c[1] == '1':
		return "parse"
	default:
		return "unknown"
	}
}
