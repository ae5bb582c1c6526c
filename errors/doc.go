// Package errors provides structured error types for the wasm-arena module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the element type name, a detail message, the
// offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRequest, errors.KindInvalidRequest).
//		Elem("u32").
//		Value(-1).
//		Detail("negative element count").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseMaterialize, offset, length, size)
//	err := errors.GrowthFailed(pages, size)
//
// Matching uses phase and kind, so a bare template works as a target:
//
//	if errors.Is(err, &wasmerrors.Error{Phase: wasmerrors.PhaseReserve, Kind: wasmerrors.KindGrowthFailed}) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
