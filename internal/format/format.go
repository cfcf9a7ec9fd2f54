// Package format is the formatter (spec component F): it reads a
// completed token.Stream and lang.ImportSet and writes characters to a
// sink, turning Push/Line/Space/Indent/Unindent bookkeeping into actual
// line endings and indentation, writing Text tokens verbatim, and asking
// the adapter to render each Item token and the import block up front.
package format

import (
	"io"

	"github.com/oxhq/quasigen/internal/token"
	"github.com/oxhq/quasigen/lang"
)

// Render writes stream to sink as adapter's target language, having
// registered items in set. cfg may be nil, in which case adapter's
// DefaultConfig is used.
func Render(stream *token.Stream, set *lang.ImportSet, adapter lang.Adapter, cfg *lang.Config, sink io.Writer) error {
	if cfg == nil {
		d := adapter.DefaultConfig()
		cfg = &d
	}

	if err := adapter.EmitImports(set, sink); err != nil {
		return err
	}

	resolver := &setResolver{adapter: adapter}

	toks := stream.Tokens()

	// firstContent/lastContent bound the run of tokens that has actual
	// rendered output on either side; a Line falling outside that run sits
	// at a stream boundary and is suppressed rather than emitted as a
	// stray blank break.
	firstContent, lastContent := -1, -1
	for i, tok := range toks {
		if tok.Kind == token.KindText || tok.Kind == token.KindItem {
			if firstContent == -1 {
				firstContent = i
			}
			lastContent = i
		}
	}

	k := 0
	pendingIndent := false

	flushIndent := func() error {
		if !pendingIndent {
			return nil
		}
		pendingIndent = false
		return writeIndent(sink, cfg.Indent, k)
	}

	for i, tok := range toks {
		switch tok.Kind {
		case token.KindText:
			if err := flushIndent(); err != nil {
				return err
			}
			if _, err := io.WriteString(sink, tok.Text); err != nil {
				return err
			}

		case token.KindItem:
			if err := flushIndent(); err != nil {
				return err
			}
			rendered, err := adapter.RenderItem(tok.Item, resolver)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(sink, rendered); err != nil {
				return err
			}

		case token.KindSpace:
			if err := flushIndent(); err != nil {
				return err
			}
			if _, err := io.WriteString(sink, " "); err != nil {
				return err
			}

		case token.KindLine:
			if firstContent == -1 || i < firstContent || i > lastContent {
				continue
			}
			if _, err := io.WriteString(sink, cfg.LineEnding); err != nil {
				return err
			}
			pendingIndent = true

		case token.KindPush:
			if _, err := io.WriteString(sink, cfg.LineEnding); err != nil {
				return err
			}
			if tok.Blank {
				if _, err := io.WriteString(sink, cfg.LineEnding); err != nil {
					return err
				}
			}
			pendingIndent = true

		case token.KindIndent:
			k++

		case token.KindUnindent:
			if k > 0 {
				k--
			}
		}
	}
	return nil
}

func writeIndent(sink io.Writer, unit string, k int) error {
	for i := 0; i < k; i++ {
		if _, err := io.WriteString(sink, unit); err != nil {
			return err
		}
	}
	return nil
}

// setResolver is the lang.Resolver handed to RenderItem calls during
// formatting. Its Resolve renders item with a nil resolver rather than
// itself, so an adapter that looks up a second item while rendering a
// first can't recurse into resolving that item's own nested references —
// a one-level-deep limitation none of this tree's adapters currently need
// more than.
type setResolver struct {
	adapter lang.Adapter
}

func (r *setResolver) Resolve(item any) (string, error) {
	return r.adapter.RenderItem(item, nil)
}
