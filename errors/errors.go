package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates which part of the binding raised the error
type Phase string

const (
	PhaseBootstrap Phase = "bootstrap" // foundation, engine, scene creation
	PhaseFactory   Phase = "factory"   // material, actor, shape creation
	PhaseGeometry  Phase = "geometry"  // geometry construction and access
	PhaseAttach    Phase = "attach"    // actor/shape graph edits
	PhaseStep      Phase = "step"      // simulate/fetch protocol
	PhaseQuery     Phase = "query"     // poses, enumeration
	PhaseRelease   Phase = "release"   // teardown
	PhaseLayout    Phase = "layout"    // record translation
	PhaseHandle    Phase = "handle"    // handle table
	PhaseABI       Phase = "abi"       // wasm host module
	PhaseScript    Phase = "script"    // Lua front end
)

// Kind categorizes the error
type Kind string

const (
	KindConstruction     Kind = "construction_failed"
	KindOperationFailed  Kind = "operation_failed"
	KindNullHandle       Kind = "null_handle"
	KindStaleHandle      Kind = "stale_handle"
	KindWrongKind        Kind = "wrong_kind"
	KindGeometryMismatch Kind = "geometry_mismatch"
	KindStepInFlight     Kind = "step_in_flight"
	KindNoStepInFlight   Kind = "no_step_in_flight"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidInput     Kind = "invalid_input"
	KindInUse            Kind = "in_use"
	KindInvalidState     Kind = "invalid_state"
	KindClosed           Kind = "closed"
	KindUnsupported      Kind = "unsupported"
)

// ContractViolation reports whether k is a caller contract violation, as
// opposed to a construction or operation failure.
func (k Kind) ContractViolation() bool {
	switch k {
	case KindConstruction, KindOperationFailed:
		return false
	default:
		return true
	}
}

// Error is the structured error type used throughout the binding
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Op         string
	HandleKind string
	Detail     string
	Handle     uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.HandleKind != "" || e.Handle != 0 {
		b.WriteString(": ")
		if e.HandleKind != "" {
			b.WriteString(e.HandleKind)
			b.WriteByte(' ')
		}
		b.WriteString("handle ")
		fmt.Fprintf(&b, "%#x", e.Handle)
	}

	if e.Detail != "" {
		if e.HandleKind != "" || e.Handle != 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty target Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.Kind == k
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if !stderrors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Handle sets the offending handle and its kind name
func (b *Builder) Handle(h uint32, kind string) *Builder {
	b.err.Handle = h
	b.err.HandleKind = kind
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ConstructionFailed reports a factory that produced no object
func ConstructionFailed(phase Phase, op, what string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConstruction,
		Op:     op,
		Detail: fmt.Sprintf("engine could not create %s", what),
		Cause:  cause,
	}
}

// OperationFailed reports a recoverable precondition that was not met
func OperationFailed(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOperationFailed,
		Op:     op,
		Detail: detail,
	}
}

// NullHandle reports a zero handle passed where a live one is required
func NullHandle(phase Phase, op, kind string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindNullHandle,
		Op:         op,
		HandleKind: kind,
		Detail:     "null handle",
	}
}

// StaleHandle reports a handle whose object has been released
func StaleHandle(phase Phase, op string, h uint32, kind string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindStaleHandle,
		Op:         op,
		Handle:     h,
		HandleKind: kind,
		Detail:     "handle was released or never issued",
	}
}

// WrongKind reports a handle of one kind passed where another is required
func WrongKind(phase Phase, op string, h uint32, want, got string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindWrongKind,
		Op:         op,
		Handle:     h,
		HandleKind: got,
		Detail:     fmt.Sprintf("expected %s handle", want),
		Value:      want,
	}
}

// GeometryMismatch reports a per-kind geometry accessor used on another kind
func GeometryMismatch(op string, h uint32, want, got string) *Error {
	return &Error{
		Phase:      PhaseGeometry,
		Kind:       KindGeometryMismatch,
		Op:         op,
		Handle:     h,
		HandleKind: "geometry",
		Detail:     fmt.Sprintf("geometry is %s, not %s", got, want),
		Value:      got,
	}
}

// StepInFlight reports a scene call made while a step awaits its fetch
func StepInFlight(op string, scene uint32) *Error {
	return &Error{
		Phase:      PhaseStep,
		Kind:       KindStepInFlight,
		Op:         op,
		Handle:     scene,
		HandleKind: "scene",
		Detail:     "a simulation step is in flight; fetch its results first",
	}
}

// NoStepInFlight reports a fetch with nothing scheduled
func NoStepInFlight(op string, scene uint32) *Error {
	return &Error{
		Phase:      PhaseStep,
		Kind:       KindNoStepInFlight,
		Op:         op,
		Handle:     scene,
		HandleKind: "scene",
		Detail:     "no simulation step was scheduled",
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, op string, offset, length, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Op:     op,
		Detail: fmt.Sprintf("range [%d, %d) exceeds %d", offset, offset+length, limit),
		Value:  offset,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Op:     op,
		Detail: detail,
	}
}

// InUse reports a release refused because other objects still depend on h
func InUse(op string, h uint32, kind string, dependents int) *Error {
	return &Error{
		Phase:      PhaseRelease,
		Kind:       KindInUse,
		Op:         op,
		Handle:     h,
		HandleKind: kind,
		Detail:     fmt.Sprintf("%d dependent object(s) still alive", dependents),
		Value:      dependents,
	}
}

// InvalidState reports a call made out of bootstrap order
func InvalidState(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Op:     op,
		Detail: detail,
	}
}

// Closed reports use of a binding after Close
func Closed(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Op:     op,
		Detail: "binding closed",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
