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

// Package codegen implements macro expansion and bytecode assembly for Huff contract
// trees: recursive macro inlining with argument bubbling, two-phase label resolution, and
// constant materialisation.
package codegen

import (
	"github.com/huff-lang/huffc/contract"
	"github.com/huff-lang/huffc/internal/evm"
)

// Generator expands a contract tree's MAIN and CONSTRUCTOR macros into runtime and
// constructor bytecode. Expansion never mutates the tree, but every Generate* call appends
// to the Generator's warnings list without locking, so a Generator is not safe for
// concurrent use; run concurrent expansions on separate Generators.
type Generator struct {
	Tree           *contract.Tree
	InstructionSet *evm.InstructionSet

	// MaxDepth overrides the macro nesting depth limit. Zero selects defaultMaxRecursionDepth.
	MaxDepth int

	warnings []error
}

// New returns a Generator for tree, targeting the given instruction set.
func New(tree *contract.Tree, is *evm.InstructionSet) *Generator {
	return &Generator{Tree: tree, InstructionSet: is}
}

// Warnings returns every diagnostic-only condition observed since the Generator was
// constructed, in the order encountered. Warnings never abort expansion.
func (g *Generator) Warnings() []error {
	return g.warnings
}

func (g *Generator) warn(err *Error) {
	g.warnings = append(g.warnings, err)
}

// GenerateMain expands the macro named MAIN into runtime bytecode.
func (g *Generator) GenerateMain() (string, error) {
	return g.generateTop("MAIN", MissingMacroDefinition)
}

// GenerateConstructor expands the macro named CONSTRUCTOR into constructor bytecode.
func (g *Generator) GenerateConstructor() (string, error) {
	return g.generateTop("CONSTRUCTOR", MissingConstructor)
}

func (g *Generator) generateTop(name string, missingKind Kind) (string, error) {
	if g.Tree == nil {
		return "", newError(MissingAst, contract.Position{}, "")
	}
	macro := g.Tree.MacroByName(name)
	if macro == nil {
		return "", newError(missingKind, contract.Position{}, name)
	}

	hex, _, unmatched, err := g.expand(macro, []*contract.MacroDefinition{macro}, nil, 0)
	if err != nil {
		return "", err
	}
	if len(unmatched) > 0 {
		return "", newError(UndefinedLabel, macro.Pos, unmatched[0].label)
	}
	return hex, nil
}
