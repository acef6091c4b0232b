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
	"fmt"
	"math/big"

	"github.com/huff-lang/huffc/contract"
)

// minimalHex returns the minimum-width, even-length hex encoding of value with no leading
// zero bytes, at least two characters wide. The zero value encodes as "00".
func minimalHex(value []byte) string {
	n := new(big.Int).SetBytes(value)
	h := n.Text(16)
	if len(h)%2 != 0 {
		h = "0" + h
	}
	return h
}

// pushFor wraps a minimal-width hex operand in its minimal PUSH opcode: PUSH1 (0x60) for a
// one-byte operand through PUSH32 (0x7F) for a 32-byte operand.
func pushFor(hex string) (string, error) {
	n := len(hex) / 2
	if n == 0 || n > 32 {
		return "", fmt.Errorf("literal requires %d-byte push, which has no PUSH encoding", n)
	}
	opcode := 0x5F + n
	return fmt.Sprintf("%02x%s", opcode, hex), nil
}

// pushLiteral encodes value as a minimal-width PUSH instruction.
func pushLiteral(value []byte) (string, error) {
	return pushFor(minimalHex(value))
}

// slotBytes renders a non-negative storage slot index as minimal big-endian bytes.
func slotBytes(slot int) []byte {
	if slot == 0 {
		return []byte{0}
	}
	var buf []byte
	for slot > 0 {
		buf = append([]byte{byte(slot & 0xff)}, buf...)
		slot >>= 8
	}
	return buf
}

// resolveConstant looks up name by exact, first-match on the contract tree's constant list
// and renders it as a minimal-width PUSH instruction.
func resolveConstant(tree *contract.Tree, name string, pos contract.Position) (string, error) {
	c := tree.ConstantByName(name)
	if c == nil {
		return "", newError(MissingConstantDefinition, pos, name)
	}
	switch c.Kind {
	case contract.ConstantLiteral:
		push, err := pushLiteral(c.Value)
		if err != nil {
			return "", wrapError(InvalidMacroStatement, pos, name, err)
		}
		return push, nil
	case contract.ConstantFreeStoragePointer:
		if !c.Assigned() {
			return "", newError(StoragePointersNotDerived, pos, name)
		}
		push, err := pushLiteral(slotBytes(c.StorageSlot))
		if err != nil {
			return "", wrapError(InvalidMacroStatement, pos, name, err)
		}
		return push, nil
	default:
		return "", newError(InvalidMacroStatement, pos, name)
	}
}
