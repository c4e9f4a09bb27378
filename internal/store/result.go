package store

// Code classifies why an operation failed. Transport layers translate codes
// to status codes; the store itself is transport-agnostic.
type Code string

const (
	CodeValidationFailed  Code = "VALIDATION_FAILED"
	CodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	CodeNotFound          Code = "NOT_FOUND"
	CodeUnexpected        Code = "UNEXPECTED"
)

// Pagination describes the window a FindAll result covers.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// Result is the uniform envelope every store operation returns. No operation
// panics or lets a storage error escape: failures come back as a Result with
// a Code set.
type Result struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Code       Code        `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	// Reasons lists every violated rule when Code is CodeValidationFailed.
	Reasons []string `json:"reasons,omitempty"`
}

func ok(data interface{}, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

func fail(code Code, message string) Result {
	return Result{Success: false, Code: code, Message: message}
}

func validationFailed(reasons []string, message string) Result {
	return Result{Success: false, Code: CodeValidationFailed, Message: message, Reasons: reasons}
}

// unexpected wraps a storage failure. The underlying message is kept for
// diagnostics; callers decide whether it is safe to expose.
func unexpected(err error, message string) Result {
	r := fail(CodeUnexpected, message)
	if err != nil {
		r.Reasons = []string{err.Error()}
	}
	return r
}
