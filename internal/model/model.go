// Package model holds the data types shared by the cursor, parser,
// whitespace inferencer, evaluator, and formatter: source positions and
// the template AST.
package model

// Position is a line/column pair from the upstream atom stream. Both are
// 1-based, matching the lexer convention the parser reads them in.
type Position struct {
	Line   uint32
	Column uint32
}

// Span is the start/end position pair of a lexical atom or a template node.
type Span struct {
	Start Position
	End   Position
}

// Atom is a single lexical unit from the template token stream: a balanced
// group, identifier, punctuation mark, literal, or string, annotated with
// its source span and the literal text it covers. Start/End are byte
// offsets into the owning Template.Source, used to slice out the verbatim
// text of a captured host expression.
type Atom struct {
	Text       string
	Span       Span
	Start, End int
}

// NodeKind discriminates template AST nodes.
type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindInterp
	KindRegister
	KindRef
	KindEscape
	KindRepeat
	KindIf
	KindMatch
	KindLet
	KindQuotedString
)

func (k NodeKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindInterp:
		return "Interp"
	case KindRegister:
		return "Register"
	case KindRef:
		return "Ref"
	case KindEscape:
		return "Escape"
	case KindRepeat:
		return "Repeat"
	case KindIf:
		return "If"
	case KindMatch:
		return "Match"
	case KindLet:
		return "Let"
	case KindQuotedString:
		return "QuotedString"
	}
	return "Unknown"
}

// Expr captures a host expression verbatim: a borrowed slice of the
// template source plus the span it came from. The host evaluates it lazily
// at expansion time, via the Env passed to the evaluator.
type Expr struct {
	Source string
	Span   Span
}

// MatchArm is one `pattern => body` arm of a $match construct. Patterns
// joined by `|` at the top level share a body; MatchArm stores them as a
// single arm with multiple Patterns rather than duplicating the body.
type MatchArm struct {
	Patterns []string
	Body     []Node
}

// Node is one piece of a parsed template. Exactly the fields relevant to
// Kind are populated; the rest are zero.
type Node struct {
	Kind NodeKind
	Span Span

	// KindLiteral
	Atoms []Atom

	// KindInterp / KindRegister / KindRef
	Value Expr

	// KindEscape
	Char rune

	// KindRepeat
	Binding   string
	Iterable  Expr
	Separator []Node
	Join      []Node
	HasJoin   bool
	Body      []Node

	// KindIf
	Cond    Expr
	Then    []Node
	Else    []Node
	HasElse bool

	// KindMatch
	Scrutinee Expr
	Arms      []MatchArm

	// KindLet
	LetName  string
	LetValue Expr

	// KindQuotedString: Parts holds only KindLiteral and KindInterp nodes.
	Parts []Node
}

// Template is the immutable, parsed form of a single quasiquote site. It is
// built once and rendered any number of times against different Envs.
type Template struct {
	Nodes  []Node
	Source string
}
