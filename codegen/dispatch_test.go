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
	"testing"

	"github.com/huff-lang/huffc/internal/evm"
	"github.com/huff-lang/huffc/internal/treefile"
)

// TestGenerateMainMultiBranchDispatch exercises a three-branch __FUNC_SIG selector dispatcher,
// the same shape as the MAIN macro in the original Huff test suite this project's builtins
// and table support are grounded on: `dup1 __FUNC_SIG(testN) eq test_N jumpi` repeated per
// branch, falling through to per-branch labels. The expected bytecode is assembled here from
// the same low-level primitives (keccak256, pushLiteral, opcode lookup) the generator itself
// uses, rather than a literal copied from elsewhere, since the three selectors' exact bytes
// depend on a hash this test cannot precompute by hand.
func TestGenerateMainMultiBranchDispatch(t *testing.T) {
	const src = `
macros:
  - name: MAIN
    body:
      - bytes: "00"
      - op: CALLDATALOAD
      - bytes: "e0"
      - op: SHR
      - op: DUP1
      - builtin: FUNC_SIG
        builtin_arg: "test1()"
      - op: EQ
      - jump: "sel_1"
      - op: JUMPI
      - op: DUP1
      - builtin: FUNC_SIG
        builtin_arg: "test2()"
      - op: EQ
      - jump: "sel_2"
      - op: JUMPI
      - op: DUP1
      - builtin: FUNC_SIG
        builtin_arg: "test3()"
      - op: EQ
      - jump: "sel_3"
      - op: JUMPI
      - label: "sel_1"
      - op: STOP
      - label: "sel_2"
      - op: STOP
      - label: "sel_3"
      - op: STOP
`
	tree, err := treefile.Decode([]byte(src), "multi-branch-dispatch.yaml")
	if err != nil {
		t.Fatal(err)
	}
	is := evm.FindInstructionSet(evm.LatestFork)

	got, err := New(tree, is).GenerateMain()
	if err != nil {
		t.Fatal(err)
	}

	selector := func(sig string) string {
		push, err := pushLiteral(keccak256([]byte(sig))[:4])
		if err != nil {
			t.Fatal(err)
		}
		return push
	}
	opHexByName := func(name string) string {
		op := is.OpByName(name)
		if op == nil {
			t.Fatalf("instruction set has no %s", name)
		}
		return fmt.Sprintf("%02x", op.Code)
	}

	// PUSH1 0x00, CALLDATALOAD, PUSH1 0xe0, SHR: fixed-width prologue, independent of hashing.
	prologue := "6000" + opHexByName("CALLDATALOAD") + "60e0" + opHexByName("SHR")

	branch := func(sig string) (hex string, labelOffsetInBranch int) {
		dup1 := opHexByName("DUP1")
		sel := selector(sig)
		eq := opHexByName("EQ")
		jumpi := opHexByName("JUMPI")
		body := dup1 + sel + eq + "61xxxx" + jumpi
		return body, len(dup1+sel+eq)/2 + 1 // byte offset of the jump's 2-byte operand
	}

	b1, rel1 := branch("test1()")
	b2, rel2 := branch("test2()")
	b3, rel3 := branch("test3()")

	offset := len(prologue) / 2
	placeholderOffsets := []int{offset + rel1}
	offset += len(b1) / 2
	placeholderOffsets = append(placeholderOffsets, offset+rel2)
	offset += len(b2) / 2
	placeholderOffsets = append(placeholderOffsets, offset+rel3)
	offset += len(b3) / 2

	stop := opHexByName("STOP")
	jumpdest := "5b"
	sel1Dest := offset
	offset += len(jumpdest+stop) / 2
	sel2Dest := offset
	offset += len(jumpdest+stop) / 2
	sel3Dest := offset

	out := []byte(prologue + b1 + b2 + b3 + jumpdest + stop + jumpdest + stop + jumpdest + stop)
	dests := []int{sel1Dest, sel2Dest, sel3Dest}
	for i, byteOffset := range placeholderOffsets {
		charIdx := byteOffset * 2
		copy(out[charIdx:charIdx+4], []byte(fmt.Sprintf("%04x", dests[i])))
	}
	want := string(out)

	if got != want {
		t.Errorf("wrong bytecode\n got:  %s\n want: %s", got, want)
	}
}
