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

package treefile

import (
	"testing"

	"github.com/huff-lang/huffc/contract"
)

func TestDecode(t *testing.T) {
	src := `
constants:
  - name: OWNER_SLOT
    free_storage_pointer: true
    storage_slot: 0
  - name: MAX_SUPPLY
    value: "2710"
tables:
  - name: JUMP_TABLE
    packed: true
    entries: ["case_a", "case_b"]
functions:
  - name: transfer
    inputs:
      - name: to
        type: address
      - name: amount
        type: uint256
    outputs:
      - name: success
        type: bool
events:
  - name: Transfer
    inputs:
      - name: from
        type: address
        indexed: true
macros:
  - name: MAIN
    body:
      - const: MAX_SUPPLY
      - invoke: HELPER
        args:
          - literal: "01"
          - bubble: "x"
          - ident: "somewhere"
  - name: HELPER
    params: ["a", "b", "c"]
    is_function: true
    body:
      - arg: "a"
`
	tree, err := Decode([]byte(src), "fixture.yaml")
	if err != nil {
		t.Fatal(err)
	}

	owner := tree.ConstantByName("OWNER_SLOT")
	if owner == nil || owner.Kind != contract.ConstantFreeStoragePointer || owner.StorageSlot != 0 {
		t.Fatalf("OWNER_SLOT decoded wrong: %+v", owner)
	}
	if !owner.Assigned() {
		t.Error("explicit storage_slot: 0 should count as assigned")
	}

	maxSupply := tree.ConstantByName("MAX_SUPPLY")
	if maxSupply == nil || len(maxSupply.Value) == 0 {
		t.Fatalf("MAX_SUPPLY decoded wrong: %+v", maxSupply)
	}

	table := tree.TableByName("JUMP_TABLE")
	if table == nil || !table.Packed || table.EntryWidth() != 2 || len(table.Entries) != 2 {
		t.Fatalf("JUMP_TABLE decoded wrong: %+v", table)
	}

	if len(tree.Functions) != 1 || tree.Functions[0].Sig() != "transfer(address,uint256)" {
		t.Fatalf("transfer function decoded wrong: %+v", tree.Functions)
	}
	if len(tree.Events) != 1 || tree.Events[0].Sig() != "Transfer(address)" {
		t.Fatalf("Transfer event decoded wrong: %+v", tree.Events)
	}

	main := tree.MacroByName("MAIN")
	if main == nil || len(main.Body) != 2 {
		t.Fatalf("MAIN decoded wrong: %+v", main)
	}
	inv, ok := main.Body[1].(*contract.Invocation)
	if !ok {
		t.Fatalf("expected an Invocation, got %T", main.Body[1])
	}
	if inv.Macro != "HELPER" || len(inv.Args) != 3 {
		t.Fatalf("HELPER invocation decoded wrong: %+v", inv)
	}
	if inv.Args[0].Kind != contract.ArgLiteral || inv.Args[1].Kind != contract.ArgBubble || inv.Args[2].Kind != contract.ArgIdent {
		t.Fatalf("invocation argument kinds decoded wrong: %+v", inv.Args)
	}

	helper := tree.MacroByName("HELPER")
	if helper == nil || !helper.IsFunction || helper.ParamIndex("b") != 1 {
		t.Fatalf("HELPER decoded wrong: %+v", helper)
	}
}

func TestDecodeUnknownFieldRejected(t *testing.T) {
	_, err := Decode([]byte("macros:\n  - name: MAIN\n    bogus_field: true\n"), "bad.yaml")
	if err == nil {
		t.Fatal("expected strict decoding to reject an unknown field")
	}
}

func TestDecodeMalformedStatement(t *testing.T) {
	_, err := Decode([]byte(`
macros:
  - name: MAIN
    body:
      - {}
`), "bad.yaml")
	if err == nil {
		t.Fatal("expected error for a statement with no recognised form")
	}
}
