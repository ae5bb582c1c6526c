package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRequest     Phase = "request"     // typed region requests
	PhaseReserve     Phase = "reserve"     // region growth
	PhaseMaterialize Phase = "materialize" // view binding and element access
	PhaseLoad        Phase = "load"        // guest module loading
	PhaseCall        Phase = "call"        // guest function calls
	PhaseParse       Phase = "parse"       // layout parsing
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidRequest     Kind = "invalid_request"
	KindOutOfBounds        Kind = "out_of_bounds"
	KindGrowthFailed       Kind = "growth_failed"
	KindGenerationConflict Kind = "generation_conflict"
	KindOverflow           Kind = "overflow"
	KindInvalidData        Kind = "invalid_data"
	KindUnsupported        Kind = "unsupported"
	KindNotFound           Kind = "not_found"
	KindNotInitialized     Kind = "not_initialized"
	KindInvalidInput       Kind = "invalid_input"
	KindInstantiation      Kind = "instantiation"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Elem   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Elem != "" {
		b.WriteString(": elem ")
		b.WriteString(e.Elem)
	}

	if e.Detail != "" {
		if e.Elem != "" {
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// As finds the first error in err's chain that matches target, as the
// standard library errors.As does.
func As(err error, target any) bool {
	return stderrors.As(err, target)
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

// Path sets the path of the failing item
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Elem sets the element type name
func (b *Builder) Elem(name string) *Builder {
	b.err.Elem = name
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

// InvalidRequest creates an invalid typed request error
func InvalidRequest(elem string, count int, detail string) *Error {
	return &Error{
		Phase:  PhaseRequest,
		Kind:   KindInvalidRequest,
		Elem:   elem,
		Detail: detail,
		Value:  count,
	}
}

// OutOfBounds creates an out of bounds error for a byte range
func OutOfBounds(phase Phase, offset, length uint64, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d) exceeds region size %d", offset, offset+length, size),
		Value:  offset,
	}
}

// IndexOutOfBounds creates an out of bounds error for an element index
func IndexOutOfBounds(phase Phase, elem string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Elem:   elem,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// GrowthFailed creates a region growth failure error
func GrowthFailed(pages uint32, size uint32) *Error {
	return &Error{
		Phase:  PhaseReserve,
		Kind:   KindGrowthFailed,
		Detail: fmt.Sprintf("host refused to grow region of %d bytes by %d pages", size, pages),
		Value:  pages,
	}
}

// GenerationConflict creates an error for a region that grew underneath a
// pending generation
func GenerationConflict(phase Phase, base, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindGenerationConflict,
		Detail: fmt.Sprintf("region grew from %d to %d bytes while requests were pending", base, size),
		Value:  size,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, limit),
		Value:  value,
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

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
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

// NotInitialized creates a not-initialized error for missing module/instance
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// CallFailed creates a guest call error
func CallFailed(name string, cause error) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("call %s", name),
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
