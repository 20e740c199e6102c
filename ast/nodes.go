package ast

import (
	"fmt"
	"strings"
)

// Story is the root of a parsed story: its top-level content in order.
type Story struct {
	Base
	Content []Node
}

// NewStory creates a Story holding content.
func NewStory(content []Node) *Story {
	s := &Story{}
	s.Content = adopt(s, content)
	return s
}

func (s *Story) Children() []Node { return s.Content }

func (s *Story) String() string { return joinNodes(s.Content, "\n") }

// IncludedFile is the content of a file pulled in by an INCLUDE statement.
type IncludedFile struct {
	Base
	// Filename is the name as written in the INCLUDE statement.
	Filename string
	// Path is the canonical path the name resolved to.
	Path    string
	Content []Node
}

// NewIncludedFile creates an IncludedFile node.
func NewIncludedFile(filename, path string, content []Node) *IncludedFile {
	f := &IncludedFile{Filename: filename, Path: path}
	f.Content = adopt(f, content)
	return f
}

func (f *IncludedFile) Children() []Node { return f.Content }

func (f *IncludedFile) String() string {
	return fmt.Sprintf("INCLUDE %s", f.Filename)
}

// Knot is a named top-level section: "== name ==".
type Knot struct {
	Base
	Name    string
	Content []Node
}

// NewKnot creates a Knot node.
func NewKnot(name string, content []Node) *Knot {
	k := &Knot{Name: name}
	k.Content = adopt(k, content)
	return k
}

func (k *Knot) Children() []Node { return k.Content }

func (k *Knot) String() string { return fmt.Sprintf("== %s ==", k.Name) }

// Stitch is a named section within a knot: "= name".
type Stitch struct {
	Base
	Name    string
	Content []Node
}

// NewStitch creates a Stitch node.
func NewStitch(name string, content []Node) *Stitch {
	s := &Stitch{Name: name}
	s.Content = adopt(s, content)
	return s
}

func (s *Stitch) Children() []Node { return s.Content }

func (s *Stitch) String() string { return fmt.Sprintf("= %s", s.Name) }

// Line is one line of mixed text, inline logic and diverts.
type Line struct {
	Base
	Content []Node
}

// NewLine creates a Line node.
func NewLine(content []Node) *Line {
	l := &Line{}
	l.Content = adopt(l, content)
	return l
}

func (l *Line) Children() []Node { return l.Content }

func (l *Line) String() string { return joinNodes(l.Content, "") }

// Text is literal story text.
type Text struct {
	Base
	Text string
}

// NewText creates a Text node.
func NewText(text string) *Text {
	return &Text{Text: text}
}

func (t *Text) String() string { return t.Text }

// Divert transfers the flow of the story: "-> target".
type Divert struct {
	Base
	Target string
}

// NewDivert creates a Divert node.
func NewDivert(target string) *Divert {
	return &Divert{Target: target}
}

func (d *Divert) String() string { return "-> " + d.Target }

// InlineLogic is content enclosed in braces on a single line.
type InlineLogic struct {
	Base
	Content []Node
}

// NewInlineLogic creates an InlineLogic node.
func NewInlineLogic(content []Node) *InlineLogic {
	l := &InlineLogic{}
	l.Content = adopt(l, content)
	return l
}

func (l *InlineLogic) Children() []Node { return l.Content }

func (l *InlineLogic) String() string { return "{" + joinNodes(l.Content, "") + "}" }

// Block is a brace-enclosed group of statements spanning several lines.
type Block struct {
	Base
	Content []Node
}

// NewBlock creates a Block node.
func NewBlock(content []Node) *Block {
	b := &Block{}
	b.Content = adopt(b, content)
	return b
}

func (b *Block) Children() []Node { return b.Content }

func (b *Block) String() string {
	return "{\n" + joinNodes(b.Content, "\n") + "\n}"
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, sep)
}
