package lsp

import (
	"github.com/vellumtext/vellum/edit"
	"github.com/vellumtext/vellum/rope"
)

// TextDocumentItem identifies and carries a freshly opened document.
type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int32  `json:"version"`
	Text       string `json:"text"`
}

// TextDocumentIdentifier names a document.
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedTextDocumentIdentifier names a document at a version. The
// version is the document's own monotonic version counter, so server
// diagnostics can be gated against stale text.
type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int32  `json:"version"`
}

// ContentChange is one incremental edit; a nil Range means full text.
type ContentChange struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// DidOpenParams is the didOpen notification payload.
type DidOpenParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DidChangeParams is the didChange notification payload.
type DidChangeParams struct {
	TextDocument   VersionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []ContentChange                 `json:"contentChanges"`
}

// DidSaveParams is the didSave notification payload.
type DidSaveParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

// DidCloseParams is the didClose notification payload.
type DidCloseParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// DidOpen builds the didOpen payload for a document.
func DidOpen(uri, languageID string, version int32, text string) DidOpenParams {
	return DidOpenParams{TextDocument: TextDocumentItem{
		URI:        uri,
		LanguageID: languageID,
		Version:    version,
		Text:       text,
	}}
}

// DidChange builds an incremental didChange payload from a changeset
// against the pre-image text.
func DidChange(uri string, version int32, oldText rope.Rope, cs *edit.ChangeSet) DidChangeParams {
	return DidChangeParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: uri, Version: version},
		ContentChanges: ContentChanges(oldText, cs),
	}
}

// DidSave builds the didSave payload, optionally including the saved text.
func DidSave(uri string, text *string) DidSaveParams {
	return DidSaveParams{TextDocument: TextDocumentIdentifier{URI: uri}, Text: text}
}

// DidClose builds the didClose payload.
func DidClose(uri string) DidCloseParams {
	return DidCloseParams{TextDocument: TextDocumentIdentifier{URI: uri}}
}

// DiagnosticSeverity grades a published diagnostic.
type DiagnosticSeverity int

const (
	SeverityError       DiagnosticSeverity = 1
	SeverityWarning     DiagnosticSeverity = 2
	SeverityInformation DiagnosticSeverity = 3
	SeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is one problem reported by a server.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// Runtime events surfaced to the shell by the LSP actor.
type (
	// Started reports a server session coming up for a workspace root.
	Started struct {
		Root string
	}
	// Stopped reports the session going away.
	Stopped struct{}
	// PublishDiagnostics carries diagnostics for a document version.
	PublishDiagnostics struct {
		URI         string       `json:"uri"`
		Version     int32        `json:"version"`
		Diagnostics []Diagnostic `json:"diagnostics"`
	}
	// Progress reports work-done progress from the server.
	Progress struct {
		Token      string  `json:"token"`
		Kind       string  `json:"kind"`
		Title      string  `json:"title,omitempty"`
		Message    string  `json:"message,omitempty"`
		Percentage *uint32 `json:"percentage,omitempty"`
	}
)
