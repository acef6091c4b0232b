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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/huff-lang/huffc/contract"
	"github.com/huff-lang/huffc/internal/evm"
)

type irKind int

const (
	irBytes irKind = iota
	irConstant
	irArgCall
	irStatement
)

// irNode is the lowered form of one statement in a macro body. Lowering is a one-to-one,
// order-preserving linearisation: it never drops or merges statements, so a node's index in
// the returned slice is also its position in the original body.
type irNode struct {
	kind irKind

	hex  string // irBytes
	name string // irConstant, irArgCall
	pos  contract.Position

	stmt contract.Statement // irStatement
}

// opHex renders an opcode's one-byte encoding as lowercase hex.
func opHex(op *evm.Op) string {
	return fmt.Sprintf("%02x", op.Code)
}

// lower flattens a macro body into IR nodes. Opcode mnemonics are resolved against the
// active instruction set immediately, so an opcode unavailable on the configured fork fails
// here rather than silently encoding the wrong byte.
func lower(is *evm.InstructionSet, macro *contract.MacroDefinition) ([]irNode, error) {
	nodes := make([]irNode, len(macro.Body))
	for i, st := range macro.Body {
		switch s := st.(type) {
		case *contract.BytesLiteral:
			// A bare hex literal in a macro body is Huff shorthand for "push this value",
			// not a raw byte splice: it goes through the same minimal-width PUSH encoding
			// as a resolved constant.
			raw := strings.ToLower(s.Hex)
			if len(raw)%2 != 0 {
				raw = "0" + raw
			}
			value, err := hex.DecodeString(raw)
			if err != nil {
				return nil, newError(InvalidMacroStatement, s.Pos, s.Hex)
			}
			pushed, err := pushLiteral(value)
			if err != nil {
				return nil, newError(InvalidMacroStatement, s.Pos, s.Hex)
			}
			nodes[i] = irNode{kind: irBytes, hex: pushed, pos: s.Pos}

		case *contract.Opcode:
			op := is.OpByName(strings.ToUpper(s.Name))
			if op == nil {
				return nil, newError(InvalidMacroStatement, s.Pos, s.Name)
			}
			nodes[i] = irNode{kind: irBytes, hex: fmt.Sprintf("%02x", op.Code), pos: s.Pos}

		case *contract.ConstantRef:
			nodes[i] = irNode{kind: irConstant, name: s.Name, pos: s.Pos}

		case *contract.ArgRef:
			nodes[i] = irNode{kind: irArgCall, name: s.Name, pos: s.Pos}

		case *contract.LabelDef, *contract.LabelRef, *contract.Invocation, *contract.TableRef, *contract.BuiltinCall:
			nodes[i] = irNode{kind: irStatement, stmt: st, pos: st.Position()}

		default:
			return nil, newError(InvalidMacroStatement, st.Position(), st.Description())
		}
	}
	return nodes, nil
}
