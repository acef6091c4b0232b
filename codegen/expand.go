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
	"strings"

	"github.com/huff-lang/huffc/contract"
)

// defaultMaxRecursionDepth bounds macro nesting depth. Self-invocation and mutual recursion
// diverge otherwise; this turns that into a reported error instead of a stack overflow.
const defaultMaxRecursionDepth = 1024

func (g *Generator) maxDepth() int {
	if g.MaxDepth > 0 {
		return g.MaxDepth
	}
	return defaultMaxRecursionDepth
}

// expand recursively lowers and assembles macro into hex bytes starting at absolute byte
// offset offsetBase. It returns the frame's own emitted bytes, every label it or its callees
// resolved (absolute byte offsets, merged so that ancestors can see descendant labels), and
// any jumps that remain unresolved once merged with everything visible to this frame.
func (g *Generator) expand(macro *contract.MacroDefinition, scope []*contract.MacroDefinition, invocations []invocationEntry, offsetBase int) (string, map[string]int, []unmatchedJump, error) {
	if len(scope) > g.maxDepth() {
		return "", nil, nil, newError(RecursionLimitExceeded, macro.Pos, macro.Name)
	}

	nodes, err := lower(g.InstructionSet, macro)
	if err != nil {
		return "", nil, nil, err
	}

	var buf strings.Builder
	offset := offsetBase
	jumpIndices := make(map[string]int)
	var pending []unmatchedJump

	for idx, node := range nodes {
		switch node.kind {
		case irBytes:
			buf.WriteString(node.hex)
			offset += len(node.hex) / 2

		case irConstant:
			hex, err := resolveConstant(g.Tree, node.name, node.pos)
			if err != nil {
				return "", nil, nil, err
			}
			buf.WriteString(hex)
			offset += len(hex) / 2

		case irArgCall:
			hex, jump, err := g.bubble(node.name, node.pos, scope, invocations, offset)
			if err != nil {
				return "", nil, nil, err
			}
			buf.WriteString(hex)
			offset += len(hex) / 2
			if jump != nil {
				pending = append(pending, *jump)
			}

		case irStatement:
			switch s := node.stmt.(type) {
			case *contract.LabelDef:
				if _, dup := jumpIndices[s.Name]; dup {
					g.warn(newWarning(InvalidMacroStatement, s.Pos, s.Name))
				}
				jumpIndices[s.Name] = offset
				buf.WriteString("5b")
				offset++

			case *contract.LabelRef:
				buf.WriteString("61xxxx")
				pending = append(pending, unmatchedJump{label: s.Name, byteOffset: offset + 1, width: 2})
				offset += 3

			case *contract.Invocation:
				target := g.Tree.MacroByName(s.Macro)
				if target == nil {
					return "", nil, nil, newError(MissingMacroDefinition, s.Pos, s.Macro)
				}
				childScope := pushScope(scope, target)
				childInvocations := pushInvocation(invocations, invocationEntry{callsiteIndex: idx, node: s})
				childHex, childJumpIdx, childUnmatched, err := g.expand(target, childScope, childInvocations, offset)
				if err != nil {
					return "", nil, nil, wrapError(FailedMacroRecursion, s.Pos, s.Macro, err)
				}
				for name, pos := range childJumpIdx {
					jumpIndices[name] = pos
				}
				pending = append(pending, childUnmatched...)
				buf.WriteString(childHex)
				offset += len(childHex) / 2

			case *contract.BuiltinCall:
				hex, err := g.resolveBuiltin(s)
				if err != nil {
					return "", nil, nil, err
				}
				buf.WriteString(hex)
				offset += len(hex) / 2

			case *contract.TableRef:
				table := g.Tree.TableByName(s.Name)
				if table == nil {
					return "", nil, nil, newError(MissingConstantDefinition, s.Pos, s.Name)
				}
				width := table.EntryWidth()
				for _, label := range table.Entries {
					buf.WriteString(strings.Repeat("x", width*2))
					pending = append(pending, unmatchedJump{label: label, byteOffset: offset, width: width})
					offset += width
				}

			default:
				return "", nil, nil, newError(InvalidMacroStatement, node.stmt.Position(), node.stmt.Description())
			}
		}
	}

	out := []byte(buf.String())
	var unresolved []unmatchedJump
	for _, p := range pending {
		dest, ok := jumpIndices[p.label]
		if !ok {
			unresolved = append(unresolved, p)
			continue
		}
		charIdx := (p.byteOffset - offsetBase) * 2
		widthChars := p.width * 2
		if charIdx < 0 || charIdx+widthChars > len(out) {
			return "", nil, nil, newError(InvalidMacroStatement, macro.Pos, p.label)
		}
		if string(out[charIdx:charIdx+widthChars]) != strings.Repeat("x", widthChars) {
			g.warn(newWarning(InvalidMacroStatement, macro.Pos, p.label))
		}
		copy(out[charIdx:charIdx+widthChars], []byte(fmt.Sprintf("%0*x", widthChars, dest)))
	}

	return string(out), jumpIndices, unresolved, nil
}
