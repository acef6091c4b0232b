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

package abi

import (
	"testing"

	"github.com/huff-lang/huffc/contract"
)

func TestFuncSelectorKnownSignatures(t *testing.T) {
	cases := []struct {
		fn   *contract.FunctionDecl
		want string
	}{
		{
			fn:   &contract.FunctionDecl{Name: "transfer", Inputs: []contract.AbiParam{{Type: "address"}, {Type: "uint256"}}},
			want: "a9059cbb",
		},
		{
			fn:   &contract.FunctionDecl{Name: "balanceOf", Inputs: []contract.AbiParam{{Type: "address"}}},
			want: "70a08231",
		},
		{
			fn:   &contract.FunctionDecl{Name: "totalSupply"},
			want: "18160ddd",
		},
	}
	for _, c := range cases {
		got, err := FuncSelector(c.fn)
		if err != nil {
			t.Fatalf("%s: %v", c.fn.Sig(), err)
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", c.fn.Sig(), got, c.want)
		}
	}
}

func TestEventTopicKnownSignature(t *testing.T) {
	ev := &contract.EventDecl{
		Name: "Transfer",
		Inputs: []contract.AbiParam{
			{Type: "address", Indexed: true},
			{Type: "address", Indexed: true},
			{Type: "uint256"},
		},
	}
	got, err := EventTopic(ev)
	if err != nil {
		t.Fatal(err)
	}
	const want = "ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFuncSelectorInvalidType(t *testing.T) {
	fn := &contract.FunctionDecl{Name: "broken", Inputs: []contract.AbiParam{{Type: "not-a-type"}}}
	if _, err := FuncSelector(fn); err == nil {
		t.Fatal("expected error for invalid ABI type")
	}
}

func TestGenerateSkipsConstructor(t *testing.T) {
	tree := &contract.Tree{
		Functions: []*contract.FunctionDecl{
			{Name: "CONSTRUCTOR", Inputs: []contract.AbiParam{{Type: "uint256"}}},
			{Name: "transfer", Inputs: []contract.AbiParam{{Type: "address"}, {Type: "uint256"}}},
		},
	}
	desc, err := Generate(tree)
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Functions) != 1 || desc.Functions[0].Name != "transfer" {
		t.Errorf("expected only transfer in ABI, got %+v", desc.Functions)
	}
}
