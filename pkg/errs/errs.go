// pkg/errs/errs.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package errs implements the compiler's error taxonomy (§7): a closed
// set of error kinds, each matchable with errors.Is, carrying the
// stage and offending entity id that produced them.
package errs

import (
	"errors"
	"fmt"
)

// Kind is one of the six taxonomy members from §7.
type Kind int

const (
	// InputInvalid: missing/undersized arrays, malformed config.
	InputInvalid Kind = iota
	// CoordinateError: non-finite or out-of-extent points.
	CoordinateError
	// GeometryDegenerate: zero-length segments, collinear cross-section.
	GeometryDegenerate
	// SafetyUnresolved: validation found unsafe samples and resolve(abort) was chosen.
	SafetyUnresolved
	// Cancelled: cooperative cancellation.
	Cancelled
	// InternalInconsistency: invariant violation in derived data; a bug indicator.
	InternalInconsistency
)

func (k Kind) String() string {
	switch k {
	case InputInvalid:
		return "InputInvalid"
	case CoordinateError:
		return "CoordinateError"
	case GeometryDegenerate:
		return "GeometryDegenerate"
	case SafetyUnresolved:
		return "SafetyUnresolved"
	case Cancelled:
		return "Cancelled"
	case InternalInconsistency:
		return "InternalInconsistency"
	default:
		return "UnknownErrorKind"
	}
}

// sentinel kinds, one per taxonomy member, so errors.Is(err,
// errs.ErrCancelled) works regardless of stage/entity.
var (
	ErrInputInvalid          = errors.New("InputInvalid")
	ErrCoordinateError       = errors.New("CoordinateError")
	ErrGeometryDegenerate    = errors.New("GeometryDegenerate")
	ErrSafetyUnresolved      = errors.New("SafetyUnresolved")
	ErrCancelled             = errors.New("Cancelled")
	ErrInternalInconsistency = errors.New("InternalInconsistency")
)

func sentinelFor(k Kind) error {
	switch k {
	case InputInvalid:
		return ErrInputInvalid
	case CoordinateError:
		return ErrCoordinateError
	case GeometryDegenerate:
		return ErrGeometryDegenerate
	case SafetyUnresolved:
		return ErrSafetyUnresolved
	case Cancelled:
		return ErrCancelled
	case InternalInconsistency:
		return ErrInternalInconsistency
	default:
		return nil
	}
}

// CompileError is the structured error returned by the pipeline: it
// pinpoints the stage, the offending entity id, and the invariant
// violated (§7 user-visible behavior).
type CompileError struct {
	Kind     Kind
	Stage    string
	EntityID string
	Message  string
	Cause    error
}

func New(kind Kind, stage, entityID, message string) *CompileError {
	return &CompileError{Kind: kind, Stage: stage, EntityID: entityID, Message: message}
}

func Wrap(kind Kind, stage, entityID string, cause error) *CompileError {
	return &CompileError{Kind: kind, Stage: stage, EntityID: entityID, Message: cause.Error(), Cause: cause}
}

func (e *CompileError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s [%s/%s]: %s", e.Kind, e.Stage, e.EntityID, e.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Stage, e.Message)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, errs.ErrCancelled) (and the other sentinels)
// work against a *CompileError without requiring the caller to know
// about Kind at all.
func (e *CompileError) Is(target error) bool {
	return target == sentinelFor(e.Kind)
}
