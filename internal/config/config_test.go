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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huff-lang/huffc/internal/evm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "huffc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsOutDir(t *testing.T) {
	path := writeConfig(t, "fork: shanghai\n")
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.OutDir != "out" {
		t.Errorf("got OutDir %q, want default \"out\"", p.OutDir)
	}
	if p.Fork != "shanghai" {
		t.Errorf("got Fork %q, want shanghai", p.Fork)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, "frok: shanghai\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected strict decoding to reject the misspelled field")
	}
}

func TestInstructionSetDefaultsToLatest(t *testing.T) {
	p := &Project{}
	is, err := p.InstructionSet()
	if err != nil {
		t.Fatal(err)
	}
	if is.Name() != evm.LatestFork {
		t.Errorf("got %s, want %s", is.Name(), evm.LatestFork)
	}
}

func TestInstructionSetUnknownFork(t *testing.T) {
	p := &Project{Fork: "nonexistent-fork"}
	if _, err := p.InstructionSet(); err == nil {
		t.Fatal("expected error for unknown fork")
	}
}
