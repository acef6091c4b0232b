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

// Package config loads the project-level build configuration: the target EVM fork, the
// output directory, and named constructor argument values.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/huff-lang/huffc/internal/evm"
)

// Project is the decoded form of huffc.yaml.
type Project struct {
	// Fork names the target EVM instruction set. Empty selects evm.LatestFork.
	Fork string `yaml:"fork,omitempty"`

	// OutDir is where build artifacts are written.
	OutDir string `yaml:"out_dir,omitempty"`

	// ConstructorArgs supplies named values for CONSTRUCTOR's ABI-encoded arguments.
	ConstructorArgs map[string]any `yaml:"constructor_args,omitempty"`
}

// Load reads and decodes a project config from path. Unknown fields are rejected, matching
// the strict-decoding discipline used throughout this project's test fixtures.
func Load(path string) (*Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var p Project
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if p.OutDir == "" {
		p.OutDir = "out"
	}
	return &p, nil
}

// InstructionSet resolves the project's configured fork to an instruction set, defaulting
// to the latest known fork.
func (p *Project) InstructionSet() (*evm.InstructionSet, error) {
	fork := p.Fork
	if fork == "" {
		fork = evm.LatestFork
	}
	is := evm.FindInstructionSet(fork)
	if is == nil {
		return nil, fmt.Errorf("unknown fork %q", fork)
	}
	return is, nil
}
