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
	"golang.org/x/crypto/sha3"

	"github.com/huff-lang/huffc/contract"
)

// resolveBuiltin emits the bytes for a compiler builtin. __FUNC_SIG and __EVENT_HASH accept
// a signature string directly (rather than a declared FunctionDecl/EventDecl name), since
// Huff source may reference a selector whose function is declared in another file.
// __RIGHTPAD pads its hex argument with trailing zero bytes to 32 bytes, a common pattern
// for packing short literals into full words.
func (g *Generator) resolveBuiltin(b *contract.BuiltinCall) (string, error) {
	switch b.Builtin {
	case "FUNC_SIG":
		push, err := pushLiteral(keccak256([]byte(b.Arg))[:4])
		if err != nil {
			return "", wrapError(InvalidMacroStatement, b.Pos, b.Builtin, err)
		}
		return push, nil

	case "EVENT_HASH":
		push, err := pushLiteral(keccak256([]byte(b.Arg)))
		if err != nil {
			return "", wrapError(InvalidMacroStatement, b.Pos, b.Builtin, err)
		}
		return push, nil

	case "RIGHTPAD":
		if len(b.Arg)%2 != 0 || len(b.Arg) > 64 {
			return "", newError(InvalidMacroStatement, b.Pos, b.Builtin)
		}
		padded := b.Arg
		for len(padded) < 64 {
			padded += "00"
		}
		return pushFor(padded)

	default:
		return "", newError(InvalidMacroStatement, b.Pos, b.Builtin)
	}
}

func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}
