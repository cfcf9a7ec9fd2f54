// Package whitespace infers spacing, line breaks, and indentation from the
// geometry of template source — the line/column positions the parser
// stamped on each atom — and writes the result into a token.Stream. It
// holds no language knowledge; it only compares positions.
package whitespace

import (
	"github.com/oxhq/quasigen/internal/model"
	"github.com/oxhq/quasigen/internal/token"
)

// State is the inferencer's running state while walking one render: the
// end position of the last emitted atom, and the stack of columns at
// which each currently open logical line began.
type State struct {
	prevEnd model.Position
	hasPrev bool
	columns []uint32
}

func NewState() *State {
	return &State{}
}

// Saved is an opaque snapshot of a State, returned by Save and consumed by
// Restore, used to scope indentation bookkeeping to a nested construct.
type Saved struct {
	prevEnd model.Position
	hasPrev bool
	columns []uint32
}

func (s *State) Save() Saved {
	return Saved{prevEnd: s.prevEnd, hasPrev: s.hasPrev, columns: append([]uint32(nil), s.columns...)}
}

func (s *State) Restore(saved Saved) {
	s.prevEnd = saved.prevEnd
	s.hasPrev = saved.hasPrev
	s.columns = saved.columns
}

// EnterNested scopes indentation state to a construct about to be
// evaluated in place (the body of a Repeat/If/Match/nested Interp): it
// saves the current state and resets so the nested content's first atom
// lands without inferring spacing from whatever preceded the construct —
// "each nested evaluation enters at the column of its first produced
// atom". ExitNested restores the saved outer state after emitting the
// synthetic Unindent that closes the nested scope.
func (s *State) EnterNested() Saved {
	saved := s.Save()
	s.hasPrev = false
	s.columns = nil
	return saved
}

func (s *State) ExitNested(stream *token.Stream, saved Saved) {
	stream.AppendUnindent()
	s.Restore(saved)
}

func (s *State) top() (uint32, bool) {
	if len(s.columns) == 0 {
		return 0, false
	}
	return s.columns[len(s.columns)-1], true
}

// Atom infers whitespace for one literal atom and appends it (Space/Push/
// Indent/Unindent as needed, then the atom's Text) to stream. soft selects
// the join-separator mode: a line change emits a suppressible Line instead
// of a structural Push/Indent/Unindent, used while evaluating a $for's
// join body, whose embedded newlines are a formatting hint rather than a
// source indentation signal.
func (s *State) Atom(stream *token.Stream, a model.Atom, soft bool) {
	s.Transition(stream, a.Span, soft)
	stream.AppendText(a.Text)
}

// Item infers whitespace the same way Atom does, from span's source
// position, but appends item as an opaque token.Kind Item instead of
// literal text — used for $(expr) interpolations and $[expr] registered
// items, whose rendered form isn't known until the formatter resolves it
// against the completed import set.
func (s *State) Item(stream *token.Stream, span model.Span, item any, soft bool) {
	s.Transition(stream, span, soft)
	stream.AppendItem(item)
}

// Transition runs the spacing/indent/unindent decision for a span about to
// be emitted, without emitting the span's content itself; callers append
// the Text or Item token right after calling it.
func (s *State) Transition(stream *token.Stream, span model.Span, soft bool) {
	start := span.Start

	if s.hasPrev {
		switch {
		case start.Line == s.prevEnd.Line && start.Column > s.prevEnd.Column:
			stream.AppendSpace()

		case start.Line > s.prevEnd.Line:
			if soft {
				stream.AppendLine()
				break
			}
			d := start.Line - s.prevEnd.Line
			stream.AppendPush()
			if d >= 2 {
				stream.AppendPush()
			}

			top, hasTop := s.top()
			switch {
			case !hasTop:
				// no baseline yet on this logical line stack: establish one
				// silently, there is nothing to indent relative to.
				s.columns = append(s.columns, start.Column)
			case start.Column > top:
				stream.AppendIndent()
				s.columns = append(s.columns, start.Column)
			case start.Column == top:
				// same depth, no structural change
			default:
				for hasTop && top > start.Column {
					stream.AppendUnindent()
					s.columns = s.columns[:len(s.columns)-1]
					top, hasTop = s.top()
				}
			}
		}
	}

	if len(s.columns) == 0 {
		s.columns = append(s.columns, start.Column)
	}

	s.prevEnd = span.End
	s.hasPrev = true
}
