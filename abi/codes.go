package abi

import "github.com/wippyai/physx-binding/errors"

// Code is the numeric error code returned by pxGetLastError.
type Code uint32

const (
	CodeOK Code = iota
	CodeConstructionFailed
	CodeOperationFailed
	CodeNullHandle
	CodeStaleHandle
	CodeWrongKind
	CodeGeometryMismatch
	CodeStepInFlight
	CodeNoStepInFlight
	CodeOutOfBounds
	CodeInvalidInput
	CodeInUse
	CodeInvalidState
	CodeClosed
	CodeUnsupported
	CodeUnknown
)

var kindCodes = map[errors.Kind]Code{
	errors.KindConstruction:     CodeConstructionFailed,
	errors.KindOperationFailed:  CodeOperationFailed,
	errors.KindNullHandle:       CodeNullHandle,
	errors.KindStaleHandle:      CodeStaleHandle,
	errors.KindWrongKind:        CodeWrongKind,
	errors.KindGeometryMismatch: CodeGeometryMismatch,
	errors.KindStepInFlight:     CodeStepInFlight,
	errors.KindNoStepInFlight:   CodeNoStepInFlight,
	errors.KindOutOfBounds:      CodeOutOfBounds,
	errors.KindInvalidInput:     CodeInvalidInput,
	errors.KindInUse:            CodeInUse,
	errors.KindInvalidState:     CodeInvalidState,
	errors.KindClosed:           CodeClosed,
	errors.KindUnsupported:      CodeUnsupported,
}

// CodeOf maps err to its Code. Nil is CodeOK.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	if c, ok := kindCodes[errors.KindOf(err)]; ok {
		return c
	}
	return CodeUnknown
}

func (c Code) String() string {
	for k, v := range kindCodes {
		if v == c {
			return string(k)
		}
	}
	switch c {
	case CodeOK:
		return "ok"
	default:
		return "unknown"
	}
}
