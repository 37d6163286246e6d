// Package syntax drives tree-sitter parsing and caches highlight spans.
// Grammars and query sources come from a Loader supplied by the shell; a
// document whose language cannot be loaded falls back to no-highlight
// mode.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

var (
	// ErrNoGrammar means the loader has no grammar for the language.
	ErrNoGrammar = errors.New("syntax: no grammar for language")
	// ErrNoQuery means the loader has no highlight query for the language.
	ErrNoQuery = errors.New("syntax: no highlight query for language")
)

// QueryKind selects which query source to load for a language.
type QueryKind int

const (
	QueryHighlights QueryKind = iota
	QueryInjections
	QueryLocals
	QueryIndents
	QueryTextObjects
)

// Loader supplies grammars and query sources. Implementations live in the
// shell; the core loads lazily per language.
type Loader interface {
	Grammar(name string) (*sitter.Language, error)
	Query(languageID string, kind QueryKind) (string, bool)
}

// warnedLanguages dedupes load-failure logging to once per language.
var warnedLanguages sync.Map

func warnOnce(languageID string, err error) {
	if _, loaded := warnedLanguages.LoadOrStore(languageID, true); !loaded {
		log.Warn().Str("source", "syntax").Str("language", languageID).Err(err).
			Msg("syntax disabled for language")
	}
}

// Syntax is the handle to a parsed tree for one document.
type Syntax struct {
	languageID string
	lang       *sitter.Language
	parser     *sitter.Parser
	tree       *sitter.Tree
	query      *sitter.Query
	version    uint64
}

// New parses text for languageID. Missing grammars or queries are logged
// once per language and reported to the caller.
func New(languageID string, loader Loader, text rope.Rope) (*Syntax, error) {
	lang, err := loader.Grammar(languageID)
	if err != nil || lang == nil {
		if err == nil {
			err = ErrNoGrammar
		}
		warnOnce(languageID, err)
		return nil, fmt.Errorf("%w: %s", ErrNoGrammar, languageID)
	}
	source, ok := loader.Query(languageID, QueryHighlights)
	if !ok {
		warnOnce(languageID, ErrNoQuery)
		return nil, fmt.Errorf("%w: %s", ErrNoQuery, languageID)
	}
	query, err := sitter.NewQuery([]byte(source), lang)
	if err != nil {
		warnOnce(languageID, err)
		return nil, fmt.Errorf("syntax: compile highlight query for %s: %w", languageID, err)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(text.String()))
	if err != nil {
		return nil, fmt.Errorf("syntax: parse %s: %w", languageID, err)
	}
	return &Syntax{
		languageID: languageID,
		lang:       lang,
		parser:     parser,
		tree:       tree,
		query:      query,
	}, nil
}

// Version counts reparses; the highlight cache pairs it with the doc
// version to detect staleness.
func (s *Syntax) Version() uint64 { return s.version }

// LanguageID returns the language this syntax was built for.
func (s *Syntax) LanguageID() string { return s.languageID }

// Tree returns the current parse tree.
func (s *Syntax) Tree() *sitter.Tree { return s.tree }

// NamedDescendantForByteRange returns the smallest named node spanning the
// byte range, resolved against text for point computation.
func (s *Syntax) NamedDescendantForByteRange(text rope.Rope, start, end uint32) *sitter.Node {
	return s.tree.RootNode().NamedDescendantForPointRange(
		pointAtByte(text, int(start)), pointAtByte(text, int(end)))
}

// Update applies the transaction's edits to the tree and reparses against
// the new text. Edits are fed to tree-sitter in reverse so earlier offsets
// stay valid.
func (s *Syntax) Update(oldText, newText rope.Rope, cs *edit.ChangeSet) error {
	edits := treeEdits(oldText, cs)
	for i := len(edits) - 1; i >= 0; i-- {
		s.tree.Edit(edits[i])
	}
	tree, err := s.parser.ParseCtx(context.Background(), s.tree, []byte(newText.String()))
	if err != nil {
		return fmt.Errorf("syntax: reparse %s: %w", s.languageID, err)
	}
	s.tree = tree
	s.version++
	return nil
}

func treeEdits(oldText rope.Rope, cs *edit.ChangeSet) []sitter.EditInput {
	changes := cs.Changes()
	edits := make([]sitter.EditInput, 0, len(changes))
	for _, ch := range changes {
		startByte := oldText.CharToByte(ch.From)
		oldEndByte := oldText.CharToByte(ch.To)
		startPoint := pointAtByte(oldText, startByte)
		edits = append(edits, sitter.EditInput{
			StartIndex:  uint32(startByte),
			OldEndIndex: uint32(oldEndByte),
			NewEndIndex: uint32(startByte + len(ch.Insert)),
			StartPoint:  startPoint,
			OldEndPoint: pointAtByte(oldText, oldEndByte),
			NewEndPoint: advancePoint(startPoint, ch.Insert),
		})
	}
	return edits
}

// pointAtByte converts a byte offset into a tree-sitter (row, byte col)
// point.
func pointAtByte(text rope.Rope, byteIdx int) sitter.Point {
	char := text.ByteToChar(byteIdx)
	row := text.CharToLine(char)
	lineStart := text.CharToByte(text.LineToChar(row))
	return sitter.Point{Row: uint32(row), Column: uint32(byteIdx - lineStart)}
}

// advancePoint moves p across inserted text.
func advancePoint(p sitter.Point, s string) sitter.Point {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return sitter.Point{
			Row:    p.Row + uint32(strings.Count(s, "\n")),
			Column: uint32(len(s) - i - 1),
		}
	}
	return sitter.Point{Row: p.Row, Column: p.Column + uint32(len(s))}
}

// CaptureName resolves a Highlight back to its capture name, for theme
// lookup.
func (s *Syntax) CaptureName(h Highlight) string {
	return s.query.CaptureNameForId(uint32(h))
}

// highlightSpans runs the highlight query over the byte range [start, end).
func (s *Syntax) highlightSpans(start, end uint32) []Span {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(s.query, s.tree.RootNode())

	var spans []Span
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			a, b := capture.Node.StartByte(), capture.Node.EndByte()
			if b <= start || a >= end {
				continue
			}
			spans = append(spans, Span{Start: a, End: b, Highlight: Highlight(capture.Index)})
		}
	}
	return spans
}
