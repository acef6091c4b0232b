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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/huff-lang/huffc/contract"
)

func TestAssemble(t *testing.T) {
	art, err := Assemble("token.yaml", "", "6001600101", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	// runtimeLen = 5, size = 0005; codeOffset = 13 + 0 = 13 = 000d
	want := "61" + "0005" + "80" + "61" + "000d" + "6000396000f3" + "6001600101"
	if art.Bytecode != want {
		t.Errorf("got  %s\nwant %s", art.Bytecode, want)
	}
	if art.Runtime != "6001600101" {
		t.Errorf("wrong runtime: %s", art.Runtime)
	}
	if art.File.File != "token.yaml" {
		t.Errorf("wrong file: %s", art.File.File)
	}
}

func TestAssembleWithConstructorAndArgs(t *testing.T) {
	// constructorHex is 6 bytes -> codeOffset = 13 + 6 = 19 = 0013
	art, err := Assemble("token.yaml", "deadbeef", "00", "600160015500", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "600160015500" + "61" + "0001" + "80" + "61" + "0013" + "6000396000f3" + "00" + "deadbeef"
	if art.Bytecode != want {
		t.Errorf("got  %s\nwant %s", art.Bytecode, want)
	}
}

func TestAssembleRuntimeTooLarge(t *testing.T) {
	huge := make([]byte, (0xFFFF+1)*2)
	for i := range huge {
		huge[i] = '0'
	}
	if _, err := Assemble("f.yaml", "", string(huge), "", nil); err == nil {
		t.Fatal("expected error for oversized runtime")
	}
}

func TestEncodeConstructorArgs(t *testing.T) {
	params := []contract.AbiParam{
		{Name: "owner", Type: "address"},
		{Name: "supply", Type: "uint256"},
	}
	encoded, err := EncodeConstructorArgs(params, []interface{}{
		common.HexToAddress("0x0000000000000000000000000000000000000001"),
		big.NewInt(1000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != 64*2 {
		t.Errorf("expected two 32-byte words (128 hex chars), got %d chars: %s", len(encoded), encoded)
	}
}

func TestEncodeConstructorArgsWrongCount(t *testing.T) {
	params := []contract.AbiParam{{Name: "owner", Type: "address"}}
	if _, err := EncodeConstructorArgs(params, nil); err == nil {
		t.Fatal("expected error for argument count mismatch")
	}
}
