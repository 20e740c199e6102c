// Package ast defines the abstract syntax tree produced by the story parser.
//
// Every node carries optional debug metadata: the source lines it was parsed
// from and the name of the file. Metadata is attached by the parser after a
// rule succeeds, never by the code that constructs the node.
package ast

import "fmt"

// DebugMetadata records where a node came from. Line numbers are 1-based.
type DebugMetadata struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Filename  string `json:"filename,omitempty"`
}

func (md *DebugMetadata) String() string {
	if md == nil {
		return "<no metadata>"
	}
	lines := fmt.Sprintf("line %d", md.StartLine)
	if md.EndLine != md.StartLine {
		lines = fmt.Sprintf("lines %d-%d", md.StartLine, md.EndLine)
	}
	if md.Filename != "" {
		return fmt.Sprintf("%s of '%s'", lines, md.Filename)
	}
	return lines
}

// Node represents a portion of the syntax tree.
type Node interface {
	// DebugMetadata returns the node's own metadata, or the nearest
	// ancestor's if the node has none of its own.
	DebugMetadata() *DebugMetadata

	// SetDebugMetadata sets the node's own metadata.
	SetDebugMetadata(md *DebugMetadata)

	// HasOwnDebugMetadata reports whether metadata was set on this node
	// itself rather than inherited.
	HasOwnDebugMetadata() bool

	// Parent returns the node containing this one, or nil for a root.
	Parent() Node

	setParent(parent Node)

	// String returns a human friendly representation of the node.
	String() string
}

// Container is implemented by nodes that hold other nodes.
type Container interface {
	Node
	Children() []Node
}

// Base implements the metadata and parent bookkeeping shared by all nodes.
// Concrete node types embed it.
type Base struct {
	md     *DebugMetadata
	parent Node
}

func (b *Base) DebugMetadata() *DebugMetadata {
	if b.md != nil {
		return b.md
	}
	if b.parent != nil {
		return b.parent.DebugMetadata()
	}
	return nil
}

func (b *Base) SetDebugMetadata(md *DebugMetadata) { b.md = md }

func (b *Base) HasOwnDebugMetadata() bool { return b.md != nil }

func (b *Base) Parent() Node { return b.parent }

func (b *Base) setParent(parent Node) { b.parent = parent }

// adopt makes parent the parent of every node in children.
func adopt(parent Node, children []Node) []Node {
	for _, child := range children {
		if child != nil {
			child.setParent(parent)
		}
	}
	return children
}
