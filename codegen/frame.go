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

import "github.com/huff-lang/huffc/contract"

// invocationEntry is one frame of the invocation stack: the statement index of the
// callsite within the caller's body, and the invocation node itself (which carries the
// actual argument list bound at that callsite).
type invocationEntry struct {
	callsiteIndex int
	node          *contract.Invocation
}

// unmatchedJump is a pending jump patch: byteOffset is the absolute byte offset (counted
// from the start of the whole expansion, not the current frame) of the two-byte operand
// that must be overwritten with name's resolved destination. width is normally 2 (a PUSH2
// jump destination); table entries may use a different width.
type unmatchedJump struct {
	label      string
	byteOffset int
	width      int
}

// scope and invocation stacks are passed as slices rather than a single shared, mutated
// stack value: each recursive call receives its own immutable view and appends to a fresh
// copy when descending, so there is no "underflow on pop" to diagnose.
func pushScope(scope []*contract.MacroDefinition, m *contract.MacroDefinition) []*contract.MacroDefinition {
	next := make([]*contract.MacroDefinition, len(scope)+1)
	copy(next, scope)
	next[len(scope)] = m
	return next
}

func pushInvocation(stack []invocationEntry, e invocationEntry) []invocationEntry {
	next := make([]invocationEntry, len(stack)+1)
	copy(next, stack)
	next[len(stack)] = e
	return next
}
