// Package errs defines the sticky error vocabulary shared by every package
// in this module.
package errs

import "fmt"

// Code identifies the kind of failure a context or codec operation produced.
// The numeric values mirror the original OpenCTM CTMenum error codes so that
// callers porting from the C API can map one to one.
type Code uint16

const (
	// CodeNone indicates success; no error has occurred.
	CodeNone Code = 0x0000
	// CodeInvalidContext indicates a null or misused context handle.
	CodeInvalidContext Code = 0x0001
	// CodeInvalidArgument indicates an out-of-range enum, nil required
	// pointer, zero count, or non-positive precision.
	CodeInvalidArgument Code = 0x0002
	// CodeInvalidOperation indicates a call illegal in the context's current
	// state (e.g. AddTexMap before DefineMesh, Save on an IMPORT context).
	CodeInvalidOperation Code = 0x0003
	// CodeInvalidMesh indicates zero vertices/triangles, an out-of-range
	// index, or a NaN/Inf value in the input mesh.
	CodeInvalidMesh Code = 0x0004
	// CodeOutOfMemory indicates an allocation failure.
	CodeOutOfMemory Code = 0x0005
	// CodeFileError indicates the stream callback returned a short count, or
	// open/create failed.
	CodeFileError Code = 0x0006
	// CodeFormatError indicates a bad magic, unsupported version, unknown
	// method tag, section tag mismatch, header/count inconsistency, or a
	// string length exceeding the remaining stream.
	CodeFormatError Code = 0x0007
	// CodeLZMAError indicates an LZMA codec failure or an uncompressed
	// length mismatch.
	CodeLZMAError Code = 0x0008
	// CodeInternalError is reserved for invariant violations indicating a
	// bug in this module rather than bad caller input.
	CodeInternalError Code = 0x0009
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "NONE"
	case CodeInvalidContext:
		return "INVALID_CONTEXT"
	case CodeInvalidArgument:
		return "INVALID_ARGUMENT"
	case CodeInvalidOperation:
		return "INVALID_OPERATION"
	case CodeInvalidMesh:
		return "INVALID_MESH"
	case CodeOutOfMemory:
		return "OUT_OF_MEMORY"
	case CodeFileError:
		return "FILE_ERROR"
	case CodeFormatError:
		return "FORMAT_ERROR"
	case CodeLZMAError:
		return "LZMA_ERROR"
	case CodeInternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Error is the concrete error type returned by every fallible operation in
// this module. It carries a Code so callers can branch on error kind without
// string matching, plus a human-readable message for logs.
type Error struct {
	Code Code
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code.String()
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Is reports whether target is an *Error with the same Code, so callers
// can use errors.Is(err, errs.New(errs.CodeInvalidMesh, "")) without
// matching the message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}

// New creates an *Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the Code from err, returning CodeInternalError for any
// error that did not originate from this package.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}

	var e *Error
	if ok := asError(err, &e); ok {
		return e.Code
	}

	return CodeInternalError
}

func asError(err error, target **Error) bool {
	type unwrapper interface {
		Unwrap() error
	}

	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}

		u, ok := err.(unwrapper)
		if !ok {
			return false
		}

		err = u.Unwrap()
	}

	return false
}

// Sentinel constructors, one per error kind. Each returns a fresh *Error
// so callers may attach operation-specific context via fmt-style arguments
// without sharing mutable state.

func InvalidContext(format string, args ...any) *Error {
	return New(CodeInvalidContext, format, args...)
}

func InvalidArgument(format string, args ...any) *Error {
	return New(CodeInvalidArgument, format, args...)
}

func InvalidOperation(format string, args ...any) *Error {
	return New(CodeInvalidOperation, format, args...)
}

func InvalidMesh(format string, args ...any) *Error {
	return New(CodeInvalidMesh, format, args...)
}

func FileError(format string, args ...any) *Error {
	return New(CodeFileError, format, args...)
}

func FormatError(format string, args ...any) *Error {
	return New(CodeFormatError, format, args...)
}

func LZMAError(format string, args ...any) *Error {
	return New(CodeLZMAError, format, args...)
}

func InternalError(format string, args ...any) *Error {
	return New(CodeInternalError, format, args...)
}
