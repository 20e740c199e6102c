package main

import (
	"reflect"

	"github.com/lucidbard/ink/ast"
)

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string             `json:"type"`
	Value    any                `json:"value,omitempty"`
	Path     string             `json:"path,omitempty"`
	Meta     *ast.DebugMetadata `json:"meta,omitempty"`
	Children []*ASTNode         `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}

	typeName := reflect.TypeOf(node).Elem().Name()
	result := &ASTNode{Type: typeName}
	if node.HasOwnDebugMetadata() {
		result.Meta = node.DebugMetadata()
	}

	switch n := node.(type) {
	case *ast.IncludedFile:
		result.Value = n.Filename
		result.Path = n.Path

	case *ast.Knot:
		result.Value = n.Name

	case *ast.Stitch:
		result.Value = n.Name

	case *ast.Text:
		result.Value = n.Text

	case *ast.Divert:
		result.Value = n.Target
	}

	if c, ok := node.(ast.Container); ok {
		for _, child := range c.Children() {
			if j := nodeToJSON(child); j != nil {
				result.Children = append(result.Children, j)
			}
		}
	}
	return result
}
