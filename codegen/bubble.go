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
	"strings"

	"github.com/huff-lang/huffc/contract"
)

// bubble resolves an argument reference <name> appearing in the macro at the top of scope,
// following the fixed precedence: constant shadowing, then opcode, then formal parameter
// (recursing up the invocation stack as needed), then label fallthrough. offset is the
// absolute byte offset at which the resolved bytes will be emitted, used only to compute a
// jump placeholder's operand position when resolution bottoms out at a label.
func (g *Generator) bubble(name string, pos contract.Position, scope []*contract.MacroDefinition, invocations []invocationEntry, offset int) (string, *unmatchedJump, error) {
	if c := g.Tree.ConstantByName(name); c != nil {
		hex, err := resolveConstant(g.Tree, name, pos)
		return hex, nil, err
	}

	if op := g.InstructionSet.OpByName(strings.ToUpper(name)); op != nil {
		return opHex(op), nil, nil
	}

	current := scope[len(scope)-1]
	if idx := current.ParamIndex(name); idx >= 0 && len(invocations) > 0 {
		caller := invocations[len(invocations)-1]
		if idx >= len(caller.node.Args) {
			return "", nil, newError(InvalidMacroStatement, pos, name)
		}
		arg := caller.node.Args[idx]
		switch arg.Kind {
		case contract.ArgLiteral:
			push, err := pushLiteral(arg.Literal)
			if err != nil {
				return "", nil, wrapError(InvalidMacroStatement, pos, name, err)
			}
			return push, nil, nil

		case contract.ArgBubble:
			// Pop M (the macro we're currently resolving within) from scope, and pop the
			// caller's own invocation entry iff the caller invoked M by name — this keeps
			// invocation-stack depth matched to parameter-frame depth when adjacent frames
			// invoke each other directly.
			innerScope := scope[:len(scope)-1]
			innerInvocations := invocations
			if len(invocations) > 0 && invocations[len(invocations)-1].node.Macro == current.Name {
				innerInvocations = invocations[:len(invocations)-1]
			}
			return g.bubble(arg.Name, pos, innerScope, innerInvocations, offset)

		case contract.ArgIdent:
			hex, jump := labelJump(arg.Name, offset)
			return hex, jump, nil
		}
	}

	// No binding found: this is diagnostic-only, per the propagation policy — an identifier
	// that isn't a parameter falls through to label treatment rather than aborting.
	g.warn(newWarning(InvalidMacroStatement, pos, name))
	hex, jump := labelJump(name, offset)
	return hex, jump, nil
}

// labelJump builds the PUSH2 placeholder and pending jump for a name that falls through to
// label treatment: either an Ident-typed macro argument, or any identifier that bound to
// nothing else.
func labelJump(name string, offset int) (string, *unmatchedJump) {
	return "61xxxx", &unmatchedJump{label: name, byteOffset: offset + 1, width: 2}
}
