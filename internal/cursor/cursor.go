// Package cursor provides a read-only stream of lexical atoms annotated
// with source positions, the component the rest of the pipeline reasons
// about template geometry through.
package cursor

import "github.com/oxhq/quasigen/internal/model"

// Cursor walks a fixed sequence of atoms produced by whatever front end
// tokenized the template source. It never mutates the underlying slice; it
// only tracks a read position.
type Cursor struct {
	atoms []model.Atom
	pos   int
}

// New builds a Cursor over atoms. atoms must already be in source order.
func New(atoms []model.Atom) *Cursor {
	return &Cursor{atoms: atoms}
}

// Eof reports whether the cursor has consumed every atom.
func (c *Cursor) Eof() bool {
	return c.pos >= len(c.atoms)
}

// Peek returns the next atom without consuming it. The second return value
// is false at EOF.
func (c *Cursor) Peek() (model.Atom, bool) {
	if c.Eof() {
		return model.Atom{}, false
	}
	return c.atoms[c.pos], true
}

// PeekAt returns the atom offset atoms ahead of the cursor without
// consuming anything. offset 0 is equivalent to Peek.
func (c *Cursor) PeekAt(offset int) (model.Atom, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.atoms) {
		return model.Atom{}, false
	}
	return c.atoms[i], true
}

// Next consumes and returns the next atom.
func (c *Cursor) Next() (model.Atom, bool) {
	a, ok := c.Peek()
	if ok {
		c.pos++
	}
	return a, ok
}

// Span returns the span of the atom the cursor is currently positioned at,
// or the zero span at EOF.
func (c *Cursor) Span() model.Span {
	if a, ok := c.Peek(); ok {
		return a.Span
	}
	return model.Span{}
}

// Mark returns an opaque position that Reset can later rewind to.
func (c *Cursor) Mark() int {
	return c.pos
}

// Reset rewinds the cursor to a position previously returned by Mark.
func (c *Cursor) Reset(mark int) {
	c.pos = mark
}

// JointWithNext reports whether the atom at the cursor abuts the following
// atom with no intervening whitespace: its End position equals the next
// atom's Start position exactly. This is how the parser distinguishes the
// `$$` escape (joint) from `$ $` separation (non-joint). Lexical atom
// streams typically collapse comments and inner whitespace, so this
// comparison uses positions rather than counting characters.
func (c *Cursor) JointWithNext() bool {
	cur, ok := c.Peek()
	if !ok {
		return false
	}
	next, ok := c.PeekAt(1)
	if !ok {
		return false
	}
	return cur.Span.End == next.Span.Start
}
