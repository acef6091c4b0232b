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

// Package treefile decodes a contract tree from its YAML serialisation. Lexing and parsing
// Huff source is out of scope for this project; the CLI and tests both consume a
// pre-flattened tree in this wire format instead, as if produced by an external parser
// front-end (see §6 and §9 of the design notes on cross-file import resolution).
package treefile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/huff-lang/huffc/contract"
)

type treeYAML struct {
	Macros    []macroYAML    `yaml:"macros"`
	Constants []constantYAML `yaml:"constants,omitempty"`
	Tables    []tableYAML    `yaml:"tables,omitempty"`
	Functions []declYAML     `yaml:"functions,omitempty"`
	Events    []declYAML     `yaml:"events,omitempty"`
}

type macroYAML struct {
	Name       string         `yaml:"name"`
	Params     []string       `yaml:"params,omitempty"`
	Body       []statementYAML `yaml:"body"`
	IsFunction bool           `yaml:"is_function,omitempty"`
}

type statementYAML struct {
	Bytes      string   `yaml:"bytes,omitempty"`
	Op         string   `yaml:"op,omitempty"`
	Const      string   `yaml:"const,omitempty"`
	Label      string   `yaml:"label,omitempty"`
	Jump       string   `yaml:"jump,omitempty"`
	Arg        string   `yaml:"arg,omitempty"`
	Table      string   `yaml:"table,omitempty"`
	Builtin    string   `yaml:"builtin,omitempty"`
	BuiltinArg string   `yaml:"builtin_arg,omitempty"`
	Invoke     string   `yaml:"invoke,omitempty"`
	Args       []argYAML `yaml:"args,omitempty"`
}

type argYAML struct {
	Literal string `yaml:"literal,omitempty"`
	Bubble  string `yaml:"bubble,omitempty"`
	Ident   string `yaml:"ident,omitempty"`
}

type constantYAML struct {
	Name               string `yaml:"name"`
	Value              string `yaml:"value,omitempty"`
	FreeStoragePointer bool   `yaml:"free_storage_pointer,omitempty"`

	// StorageSlot is a pointer so an explicit "storage_slot: 0" is distinguishable from an
	// absent field; a project assigning slot 0 is legitimate (the first pointer).
	StorageSlot *int `yaml:"storage_slot,omitempty"`
}

type tableYAML struct {
	Name    string   `yaml:"name"`
	Entries []string `yaml:"entries"`
	Packed  bool     `yaml:"packed,omitempty"`
}

type paramYAML struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Indexed bool   `yaml:"indexed,omitempty"`
}

type declYAML struct {
	Name    string      `yaml:"name"`
	Inputs  []paramYAML `yaml:"inputs,omitempty"`
	Outputs []paramYAML `yaml:"outputs,omitempty"`
}

// Load reads a contract tree from its YAML file representation at path.
func Load(path string) (*contract.Tree, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree file %s: %w", path, err)
	}
	return Decode(content, path)
}

// Decode parses content as a YAML-encoded contract tree. file is recorded as the tree's
// source file for diagnostics.
func Decode(content []byte, file string) (*contract.Tree, error) {
	var ty treeYAML
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&ty); err != nil {
		return nil, fmt.Errorf("parsing tree file %s: %w", file, err)
	}

	tree := &contract.Tree{File: file}
	for _, m := range ty.Macros {
		macro, err := toMacro(file, m)
		if err != nil {
			return nil, err
		}
		tree.Macros = append(tree.Macros, macro)
	}
	for _, c := range ty.Constants {
		tree.Constants = append(tree.Constants, toConstant(file, c))
	}
	for _, t := range ty.Tables {
		tree.Tables = append(tree.Tables, &contract.TableDefinition{
			Name: t.Name, Entries: t.Entries, Packed: t.Packed,
			Pos: contract.Position{File: file},
		})
	}
	for _, f := range ty.Functions {
		tree.Functions = append(tree.Functions, &contract.FunctionDecl{
			Name: f.Name, Inputs: toParams(f.Inputs), Outputs: toParams(f.Outputs),
			Pos: contract.Position{File: file},
		})
	}
	for _, e := range ty.Events {
		tree.Events = append(tree.Events, &contract.EventDecl{
			Name: e.Name, Inputs: toParams(e.Inputs),
			Pos: contract.Position{File: file},
		})
	}
	return tree, nil
}

func toParams(in []paramYAML) []contract.AbiParam {
	out := make([]contract.AbiParam, len(in))
	for i, p := range in {
		out[i] = contract.AbiParam{Name: p.Name, Type: contract.AbiType(p.Type), Indexed: p.Indexed}
	}
	return out
}

func toConstant(file string, c constantYAML) *contract.ConstantDefinition {
	pos := contract.Position{File: file}
	if c.FreeStoragePointer {
		slot := -1
		if c.StorageSlot != nil {
			slot = *c.StorageSlot
		}
		return &contract.ConstantDefinition{
			Name: c.Name, Kind: contract.ConstantFreeStoragePointer, Pos: pos, StorageSlot: slot,
		}
	}
	return &contract.ConstantDefinition{
		Name: c.Name, Kind: contract.ConstantLiteral, Pos: pos, Value: decodeHex(c.Value),
	}
}

func decodeHex(s string) []byte {
	if len(s)%2 != 0 {
		s = "0" + s
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi := hexVal(s[i*2])
		lo := hexVal(s[i*2+1])
		out[i] = hi<<4 | lo
	}
	return out
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	default:
		return 0
	}
}

func toMacro(file string, m macroYAML) (*contract.MacroDefinition, error) {
	params := make([]contract.Param, len(m.Params))
	for i, p := range m.Params {
		params[i] = contract.Param{Name: p}
	}
	pos := contract.Position{File: file}
	body := make([]contract.Statement, len(m.Body))
	for i, st := range m.Body {
		stmt, err := toStatement(pos, st)
		if err != nil {
			return nil, fmt.Errorf("macro %s, statement %d: %w", m.Name, i, err)
		}
		body[i] = stmt
	}
	return &contract.MacroDefinition{
		Name: m.Name, Params: params, Body: body, Pos: pos, IsFunction: m.IsFunction,
	}, nil
}

func toStatement(pos contract.Position, s statementYAML) (contract.Statement, error) {
	switch {
	case s.Bytes != "":
		return &contract.BytesLiteral{Hex: s.Bytes, Pos: pos}, nil
	case s.Op != "":
		return &contract.Opcode{Name: s.Op, Pos: pos}, nil
	case s.Const != "":
		return &contract.ConstantRef{Name: s.Const, Pos: pos}, nil
	case s.Label != "":
		return &contract.LabelDef{Name: s.Label, Pos: pos}, nil
	case s.Jump != "":
		return &contract.LabelRef{Name: s.Jump, Pos: pos}, nil
	case s.Arg != "":
		return &contract.ArgRef{Name: s.Arg, Pos: pos}, nil
	case s.Table != "":
		return &contract.TableRef{Name: s.Table, Pos: pos}, nil
	case s.Builtin != "":
		return &contract.BuiltinCall{Builtin: s.Builtin, Arg: s.BuiltinArg, Pos: pos}, nil
	case s.Invoke != "":
		args := make([]contract.Argument, len(s.Args))
		for i, a := range s.Args {
			switch {
			case a.Literal != "":
				args[i] = contract.Argument{Kind: contract.ArgLiteral, Literal: decodeHex(a.Literal)}
			case a.Bubble != "":
				args[i] = contract.Argument{Kind: contract.ArgBubble, Name: a.Bubble}
			case a.Ident != "":
				args[i] = contract.Argument{Kind: contract.ArgIdent, Name: a.Ident}
			default:
				return nil, fmt.Errorf("argument %d has no recognised form", i)
			}
		}
		return &contract.Invocation{Macro: s.Invoke, Args: args, Pos: pos}, nil
	default:
		return nil, fmt.Errorf("statement has no recognised form")
	}
}
