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

package artifact

import (
	"encoding/hex"
	"fmt"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/huff-lang/huffc/contract"
)

// EncodeConstructorArgs ABI-encodes values against the declared CONSTRUCTOR parameter
// types, in declaration order, and returns the concatenated hex (no "0x" prefix). It is the
// external ABI token encoder that §6 of the generator's contract treats as a narrow,
// swappable collaborator; the encoding itself is entirely go-ethereum's.
func EncodeConstructorArgs(params []contract.AbiParam, values []interface{}) (string, error) {
	if len(params) != len(values) {
		return "", fmt.Errorf("constructor expects %d arguments, got %d", len(params), len(values))
	}
	args := make(gethabi.Arguments, len(params))
	for i, p := range params {
		typ, err := gethabi.NewType(string(p.Type), "", nil)
		if err != nil {
			return "", fmt.Errorf("constructor argument %d (%s): %w", i, p.Name, err)
		}
		args[i] = gethabi.Argument{Name: p.Name, Type: typ}
	}
	packed, err := args.Pack(values...)
	if err != nil {
		return "", fmt.Errorf("packing constructor arguments: %w", err)
	}
	return hex.EncodeToString(packed), nil
}
