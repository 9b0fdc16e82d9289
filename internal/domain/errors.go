package domain

import "fmt"

// Kind classifies a domain error so the transport layer can pick a status
// code without inspecting messages.
type Kind int

const (
	KindBusiness Kind = iota
	KindNotFound
	KindAlreadyExists
	KindInternal
)

// Stable business error codes. These are part of the wire contract; clients
// match on them, so they must never be renumbered.
const (
	CodeInvalidDocument   = 1
	CodeUnderage          = 2
	CodeUserAlreadyExists = 3
	CodeUserNotFound      = 4
	CodeInvalidToken      = 5
	CodeExpiredToken      = 6
	CodeMissingAuthToken  = 7
)

var codeMessages = map[int]string{
	CodeInvalidDocument:   "invalid document",
	CodeUnderage:          "user is underage",
	CodeUserAlreadyExists: "user already exists",
	CodeUserNotFound:      "user not found",
	CodeInvalidToken:      "invalid token",
	CodeExpiredToken:      "expired token",
	CodeMissingAuthToken:  "missing authorization token",
}

// Error carries a kind, a numeric business code and a human readable message.
// Internal errors always have code 0; every other kind carries a code from
// the registry above.
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d - %s", e.Code, e.Message)
}

// NewBusiness builds a Business error from a registry code.
func NewBusiness(code int) *Error {
	return &Error{Kind: KindBusiness, Code: code, Message: codeMessages[code]}
}

// NewNotFound builds a NotFound error from a registry code.
func NewNotFound(code int) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: codeMessages[code]}
}

// NewAlreadyExists builds an AlreadyExists error from a registry code.
func NewAlreadyExists(code int) *Error {
	return &Error{Kind: KindAlreadyExists, Code: code, Message: codeMessages[code]}
}

// NewInternal wraps an unexpected failure. The message may carry diagnostic
// detail; callers must not put secrets in it.
func NewInternal(message string) *Error {
	return &Error{Kind: KindInternal, Code: 0, Message: message}
}
