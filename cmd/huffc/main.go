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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huff-lang/huffc/abi"
	"github.com/huff-lang/huffc/artifact"
	"github.com/huff-lang/huffc/codegen"
	"github.com/huff-lang/huffc/contract"
	"github.com/huff-lang/huffc/internal/config"
	"github.com/huff-lang/huffc/internal/treefile"
)

var version = "0.1.0"

var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
)

func main() {
	root := &cobra.Command{
		Use:     "huffc",
		Short:   "Compiler for the Huff EVM assembly language",
		Version: version,
	}

	var configPath string
	root.PersistentFlags().StringVar(&configPath, "config", "huffc.yaml", "project config file")

	buildCmd := &cobra.Command{
		Use:   "build <tree.yaml>",
		Short: "Generate runtime and constructor bytecode and assemble a deployable artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args[0], configPath)
		},
	}

	abiCmd := &cobra.Command{
		Use:   "abi <tree.yaml>",
		Short: "Print the canonical ABI description for a contract tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbi(args[0])
		},
	}

	root.AddCommand(buildCmd, abiCmd)

	if err := root.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(treePath, configPath string) error {
	proj := &config.Project{}
	if _, err := os.Stat(configPath); err == nil {
		p, err := config.Load(configPath)
		if err != nil {
			return err
		}
		proj = p
	}

	tree, err := treefile.Load(treePath)
	if err != nil {
		return err
	}
	is, err := proj.InstructionSet()
	if err != nil {
		return err
	}

	infoColor.Printf("targeting fork %s\n", is.Name())

	// MAIN and CONSTRUCTOR are independent expansions over a read-only tree. Each gets its
	// own Generator so the two goroutines share no mutable state (including the warnings
	// slice) and need no locking.
	mainGen := codegen.New(tree, is)
	ctorGen := codegen.New(tree, is)

	var wg sync.WaitGroup
	var mainHex, ctorHex string
	var mainErr, ctorErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		mainHex, mainErr = mainGen.GenerateMain()
	}()
	go func() {
		defer wg.Done()
		ctorHex, ctorErr = ctorGen.GenerateConstructor()
	}()
	wg.Wait()
	if mainErr != nil {
		return fmt.Errorf("generating MAIN: %w", mainErr)
	}
	if ctorErr != nil {
		return fmt.Errorf("generating CONSTRUCTOR: %w", ctorErr)
	}
	for _, w := range append(mainGen.Warnings(), ctorGen.Warnings()...) {
		warnColor.Printf("warning: %v\n", w)
	}

	description, err := abi.Generate(tree)
	if err != nil {
		return fmt.Errorf("generating ABI: %w", err)
	}

	encodedArgs, err := encodeConstructorArgs(tree, proj)
	if err != nil {
		return fmt.Errorf("encoding constructor arguments: %w", err)
	}

	art, err := artifact.Assemble(treePath, encodedArgs, mainHex, ctorHex, description)
	if err != nil {
		return fmt.Errorf("assembling artifact: %w", err)
	}

	outPath := filepath.Join(proj.OutDir, baseName(treePath)+".json")
	if err := artifact.Export(outPath, art); err != nil {
		return err
	}
	successColor.Printf("wrote %s (%d bytes runtime)\n", outPath, len(art.Runtime)/2)
	return nil
}

func runAbi(treePath string) error {
	tree, err := treefile.Load(treePath)
	if err != nil {
		return err
	}
	description, err := abi.Generate(tree)
	if err != nil {
		return err
	}
	for _, f := range description.Functions {
		fmt.Printf("%s => 0x%s\n", f.Sig, f.Selector)
	}
	for _, e := range description.Events {
		fmt.Printf("%s => 0x%s\n", e.Sig, e.Topic0)
	}
	return nil
}

// encodeConstructorArgs ABI-encodes the project config's named constructor argument values
// against the tree's "CONSTRUCTOR" function declaration, in that declaration's parameter
// order. A project with no constructor_args deploys with an empty argument tail; a project
// that sets constructor_args for a tree with no such declaration is an error.
func encodeConstructorArgs(tree *contract.Tree, proj *config.Project) (string, error) {
	if len(proj.ConstructorArgs) == 0 {
		return "", nil
	}
	var decl *contract.FunctionDecl
	for _, f := range tree.Functions {
		if f.Name == "CONSTRUCTOR" {
			decl = f
			break
		}
	}
	if decl == nil {
		return "", fmt.Errorf("project declares constructor_args but tree has no CONSTRUCTOR function")
	}
	values := make([]interface{}, len(decl.Inputs))
	for i, p := range decl.Inputs {
		v, ok := proj.ConstructorArgs[p.Name]
		if !ok {
			return "", fmt.Errorf("missing value for constructor argument %q", p.Name)
		}
		values[i] = v
	}
	return artifact.EncodeConstructorArgs(decl.Inputs, values)
}

func baseName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}
