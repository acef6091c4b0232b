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

package contract

import "fmt"

// Statement is one element of a macro body. The concrete type of a Statement value is one
// of the types declared below.
type Statement interface {
	Position() Position
	Description() string
}

type (
	// BytesLiteral is a raw hex literal written directly in a macro body, e.g. 0x01.
	BytesLiteral struct {
		Hex string
		Pos Position
	}

	// Opcode is a bare EVM mnemonic, e.g. "add", "jumpi".
	Opcode struct {
		Name string
		Pos  Position
	}

	// ConstantRef is a reference to a named constant, [NAME].
	ConstantRef struct {
		Name string
		Pos  Position
	}

	// LabelDef declares a jump destination.
	LabelDef struct {
		Name string
		Pos  Position
	}

	// LabelRef is a bare label used as a jump target (not inside <>), e.g. `end jumpi`.
	LabelRef struct {
		Name string
		Pos  Position
	}

	// ArgRef is an argument reference <name>, valid only inside a macro body.
	ArgRef struct {
		Name string
		Pos  Position
	}

	// Invocation is a nested macro call inside another macro's body.
	Invocation struct {
		Macro string
		Args  []Argument
		Pos   Position
	}

	// TableRef inlines a table's entries (see TableDefinition) at the call site.
	TableRef struct {
		Name string
		Pos  Position
	}

	// BuiltinCall is one of Huff's compiler builtins, e.g. __FUNC_SIG("transfer(address,uint256)")
	// or __EVENT_HASH("Transfer(address,address,uint256)"). Builtin is the bare name
	// (without the leading "__"); Arg is its single string argument.
	BuiltinCall struct {
		Builtin string
		Arg     string
		Pos     Position
	}
)

func (s *BytesLiteral) Position() Position { return s.Pos }
func (s *BytesLiteral) Description() string {
	return fmt.Sprintf("literal 0x%s", s.Hex)
}

func (s *Opcode) Position() Position    { return s.Pos }
func (s *Opcode) Description() string   { return fmt.Sprintf("opcode %s", s.Name) }

func (s *ConstantRef) Position() Position  { return s.Pos }
func (s *ConstantRef) Description() string { return fmt.Sprintf("constant [%s]", s.Name) }

func (s *LabelDef) Position() Position  { return s.Pos }
func (s *LabelDef) Description() string { return fmt.Sprintf("label %s:", s.Name) }

func (s *LabelRef) Position() Position  { return s.Pos }
func (s *LabelRef) Description() string { return fmt.Sprintf("jump to %s", s.Name) }

func (s *ArgRef) Position() Position  { return s.Pos }
func (s *ArgRef) Description() string { return fmt.Sprintf("argument <%s>", s.Name) }

func (s *Invocation) Position() Position  { return s.Pos }
func (s *Invocation) Description() string { return fmt.Sprintf("invocation of %s()", s.Macro) }

func (s *TableRef) Position() Position  { return s.Pos }
func (s *TableRef) Description() string { return fmt.Sprintf("table %s", s.Name) }

func (s *BuiltinCall) Position() Position { return s.Pos }
func (s *BuiltinCall) Description() string {
	return fmt.Sprintf("__%s(%q)", s.Builtin, s.Arg)
}

// ArgumentKind discriminates the shapes a macro invocation argument can take.
type ArgumentKind int

const (
	ArgLiteral ArgumentKind = iota
	ArgBubble               // another argument reference, to be bubbled up further
	ArgIdent                // an identifier, treated as a label reference at the callee site
)

// Argument is one actual argument in a macro invocation.
type Argument struct {
	Kind ArgumentKind

	// Literal holds the value when Kind == ArgLiteral.
	Literal []byte

	// Name holds the referenced argument name (Kind == ArgBubble) or the identifier text
	// (Kind == ArgIdent).
	Name string
}
