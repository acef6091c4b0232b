// Copyright 2023 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package codegen

import (
	"errors"
	"fmt"

	"github.com/huff-lang/huffc/contract"
)

// Warning is implemented by errors that could also be just a warning.
type Warning interface {
	error
	IsWarning() bool
}

// IsWarning reports whether an error is a warning.
func IsWarning(err error) bool {
	var w Warning
	return errors.As(err, &w) && w.IsWarning()
}

// Kind identifies the class of a codegen error.
type Kind int

const (
	MissingAst Kind = iota
	MissingMacroDefinition
	MissingConstructor
	MissingConstantDefinition
	StoragePointersNotDerived
	InvalidMacroStatement
	FailedMacroRecursion
	RecursionLimitExceeded
	UndefinedLabel
	IOError
)

func (k Kind) String() string {
	switch k {
	case MissingAst:
		return "expander invoked without a contract tree"
	case MissingMacroDefinition:
		return "macro not defined"
	case MissingConstructor:
		return "CONSTRUCTOR macro not defined"
	case MissingConstantDefinition:
		return "constant not defined"
	case StoragePointersNotDerived:
		return "FreeStoragePointer constant has no assigned slot"
	case InvalidMacroStatement:
		return "statement not valid in this position"
	case FailedMacroRecursion:
		return "nested macro expansion failed"
	case RecursionLimitExceeded:
		return "macro expansion exceeded the recursion limit"
	case UndefinedLabel:
		return "jump to a label not defined in any enclosing macro"
	case IOError:
		return "artifact I/O failed"
	default:
		return fmt.Sprintf("codegen error %d", int(k))
	}
}

// Error is the single structured error type returned by this package. Name, when set,
// identifies the offending macro, constant, or label for diagnostics.
type Error struct {
	Kind Kind
	Pos  contract.Position
	Name string

	// warning marks a condition that is logged rather than treated as fatal. The same Kind
	// (InvalidMacroStatement) is used both for hard errors and for warnings.
	warning bool

	wrapped error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Name != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Name)
	}
	if e.Pos.File != "" {
		msg = fmt.Sprintf("%v: %s", e.Pos, msg)
	}
	if e.wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func (e *Error) Position() contract.Position {
	return e.Pos
}

func (e *Error) IsWarning() bool {
	return e.warning
}

func newError(kind Kind, pos contract.Position, name string) *Error {
	return &Error{Kind: kind, Pos: pos, Name: name}
}

func newWarning(kind Kind, pos contract.Position, name string) *Error {
	return &Error{Kind: kind, Pos: pos, Name: name, warning: true}
}

func wrapError(kind Kind, pos contract.Position, name string, err error) *Error {
	return &Error{Kind: kind, Pos: pos, Name: name, wrapped: err}
}
