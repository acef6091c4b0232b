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

// Package artifact assembles deployable bytecode from generated runtime and constructor
// hex, and serialises the result alongside its ABI and source provenance.
package artifact

import (
	"fmt"
	"strings"

	"github.com/huff-lang/huffc/abi"
)

// Source describes where an artifact's bytecode came from.
type Source struct {
	File string `json:"file"`
}

// Artifact is a fully assembled, deployable contract build.
type Artifact struct {
	Bytecode string          `json:"bytecode"`
	Runtime  string          `json:"runtime"`
	Abi      *abi.Description `json:"abi,omitempty"`
	File     Source          `json:"file"`
}

// bootstrapLen is the fixed length, in bytes, of the deployment bootstrap emitted by
// Assemble: PUSH2 size, DUP1, PUSH2 offset, PUSH1 0, CODECOPY, PUSH1 0, RETURN.
const bootstrapLen = 13

// Assemble composes the deployable bytecode: constructorHex, followed by a bootstrap that
// copies runtimeHex out of the deployed code and returns it, followed by runtimeHex itself,
// followed by the ABI-encoded constructor arguments. All hex inputs and the result are
// lowercase, without a "0x" prefix.
func Assemble(file string, encodedArgs, mainHex, constructorHex string, description *abi.Description) (*Artifact, error) {
	runtimeLen := len(mainHex) / 2
	if runtimeLen > 0xFFFF {
		return nil, fmt.Errorf("runtime bytecode too large for a 16-bit size field: %d bytes", runtimeLen)
	}
	codeOffset := bootstrapLen + len(constructorHex)/2
	if codeOffset > 0xFFFF {
		return nil, fmt.Errorf("constructor bytecode too large for a 16-bit offset field: %d bytes", codeOffset)
	}

	bootstrap := fmt.Sprintf("61%04x8061%04x6000396000f3", runtimeLen, codeOffset)

	final := strings.ToLower(constructorHex + bootstrap + mainHex + encodedArgs)
	return &Artifact{
		Bytecode: final,
		Runtime:  strings.ToLower(mainHex),
		Abi:      description,
		File:     Source{File: file},
	}, nil
}
