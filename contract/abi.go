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

// AbiType is a Solidity ABI type name, e.g. "uint256", "address", "bytes32[]". Huff source
// declares these as bare strings; resolving them to go-ethereum's abi.Type happens in the
// abi package, which is the only place that needs to parse them.
type AbiType string

// AbiParam is one parameter of a function or event signature.
type AbiParam struct {
	Name    string
	Type    AbiType
	Indexed bool // only meaningful for EventDecl fields
}

// FunctionDecl is a Huff #define function declaration. It carries no body: a function
// declaration only contributes a selector (via Sig) and, optionally, a dispatch case to a
// jump table built elsewhere. The macro implementing the function is a regular
// MacroDefinition with IsFunction set and the same Name.
type FunctionDecl struct {
	Name    string
	Inputs  []AbiParam
	Outputs []AbiParam
	Pos     Position
}

// Sig returns the canonical signature string used to derive the 4-byte selector, e.g.
// "transfer(address,uint256)".
func (f *FunctionDecl) Sig() string {
	return signature(f.Name, f.Inputs)
}

// EventDecl is a Huff #define event declaration, used to derive the 32-byte topic0 hash.
type EventDecl struct {
	Name   string
	Inputs []AbiParam
	Pos    Position
}

// Sig returns the canonical signature string used to derive the event's topic0 hash, e.g.
// "Transfer(address,address,uint256)".
func (e *EventDecl) Sig() string {
	return signature(e.Name, e.Inputs)
}

func signature(name string, params []AbiParam) string {
	s := name + "("
	for i, p := range params {
		if i > 0 {
			s += ","
		}
		s += string(p.Type)
	}
	return s + ")"
}
