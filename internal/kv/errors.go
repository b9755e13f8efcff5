package kv

import "errors"

// ErrKeyNotFound signals a missing or expired key.
var ErrKeyNotFound = errors.New("kv: key not found")

// Op constants map to store command names for error context.
const (
	OpGet     = "GET"
	OpSet     = "SET"
	OpHIncrBy = "HINCRBY"
	OpHGetAll = "HGETALL"
	OpExpire  = "EXPIRE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
