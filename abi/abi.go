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

// Package abi maps a contract tree's function and event declarations to a canonical ABI
// description, and derives the 4-byte selectors and 32-byte topic hashes the code generator
// needs for __FUNC_SIG and __EVENT_HASH builtins. Parameter types are validated with
// go-ethereum's accounts/abi type parser; signatures and their Keccak256 hashes are built
// here. codegen never parses a type string itself.
package abi

import (
	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"

	"github.com/huff-lang/huffc/contract"
)

// Description is the canonical ABI of a contract, ready for JSON serialisation.
type Description struct {
	Functions []FunctionABI `json:"functions,omitempty"`
	Events    []EventABI    `json:"events,omitempty"`
}

// FunctionABI is one function entry.
type FunctionABI struct {
	Name     string   `json:"name"`
	Inputs   []Param  `json:"inputs"`
	Outputs  []Param  `json:"outputs"`
	Selector string  `json:"selector"`
	Sig      string  `json:"signature"`
}

// EventABI is one event entry.
type EventABI struct {
	Name   string  `json:"name"`
	Inputs []Param `json:"inputs"`
	Topic0 string  `json:"topic0"`
	Sig    string  `json:"signature"`
}

// Param is one ABI parameter.
type Param struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// Generate transforms tree's function and event declarations into a Description.
func Generate(tree *contract.Tree) (*Description, error) {
	desc := &Description{}
	for _, f := range tree.Functions {
		if f.Name == "CONSTRUCTOR" {
			continue
		}
		sel, err := FuncSelector(f)
		if err != nil {
			return nil, err
		}
		desc.Functions = append(desc.Functions, FunctionABI{
			Name:     f.Name,
			Inputs:   toParams(f.Inputs),
			Outputs:  toParams(f.Outputs),
			Selector: sel,
			Sig:      f.Sig(),
		})
	}
	for _, e := range tree.Events {
		topic, err := EventTopic(e)
		if err != nil {
			return nil, err
		}
		desc.Events = append(desc.Events, EventABI{
			Name:   e.Name,
			Inputs: toParams(e.Inputs),
			Topic0: topic,
			Sig:    e.Sig(),
		})
	}
	return desc, nil
}

func toParams(in []contract.AbiParam) []Param {
	out := make([]Param, len(in))
	for i, p := range in {
		out[i] = Param{Name: p.Name, Type: string(p.Type), Indexed: p.Indexed}
	}
	return out
}

// FuncSelector computes the 4-byte function selector (hex, no prefix) for f, the value of
// the __FUNC_SIG builtin.
func FuncSelector(f *contract.FunctionDecl) (string, error) {
	if err := validateTypes(f.Inputs); err != nil {
		return "", err
	}
	return keccak256Hex(f.Sig())[:8], nil
}

// EventTopic computes the 32-byte topic0 hash (hex, no prefix) for e, the value of the
// __EVENT_HASH builtin.
func EventTopic(e *contract.EventDecl) (string, error) {
	if err := validateTypes(e.Inputs); err != nil {
		return "", err
	}
	return keccak256Hex(e.Sig()), nil
}

// validateTypes exercises go-ethereum's ABI type parser purely to reject malformed type
// strings early; codegen only ever needs the resulting signature string and hash.
func validateTypes(params []contract.AbiParam) error {
	for _, p := range params {
		if _, err := gethabi.NewType(string(p.Type), "", nil); err != nil {
			return err
		}
	}
	return nil
}

func keccak256Hex(s string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(s))
	sum := h.Sum(nil)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0xf]
	}
	return string(out)
}
