// Package rpchost carries the host bridge over JSON-RPC 2.0 with LSP style
// framing. A Server runs commands with an fshost.Host and answers with
// notifications; a Client implements host.Bridge on the other end.
//
// Methods:
//
//	tomledit/command    client to server call, params host.Command
//	tomledit/loaded     server to client, params DocumentParams
//	tomledit/saved      server to client, params DocumentParams
//	window/showMessage  server to client, params protocol.ShowMessageParams
//
// All notifications produced by a command are sent before its reply.
package rpchost

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/signadot/tomledit/document"
	"github.com/signadot/tomledit/host"
)

const (
	MethodCommand = "tomledit/command"
	MethodLoaded  = "tomledit/loaded"
	MethodSaved   = "tomledit/saved"

	LanguageID protocol.LanguageIdentifier = "toml"
)

type DocumentParams struct {
	TextDocument protocol.TextDocumentItem `json:"textDocument"`
	Name         string                    `json:"name,omitempty"`
	Status       string                    `json:"status,omitempty"`
}

func toParams(ev host.Event, version int32) DocumentParams {
	item := protocol.TextDocumentItem{
		LanguageID: LanguageID,
		Version:    version,
		Text:       ev.Text,
	}
	if ev.Path != "" {
		item.URI = uri.File(ev.Path)
	}
	return DocumentParams{TextDocument: item, Name: ev.Name, Status: ev.Status}
}

func fromParams(kind host.EventKind, p DocumentParams) host.Event {
	ev := host.Event{
		Kind:   kind,
		Name:   p.Name,
		Text:   p.TextDocument.Text,
		Status: p.Status,
	}
	if p.TextDocument.URI != "" {
		ev.Path = p.TextDocument.URI.Filename()
	}
	return ev
}

func messageType(status string) protocol.MessageType {
	if document.ClassifyStatus(status) == document.StatusErr {
		return protocol.MessageTypeError
	}
	return protocol.MessageTypeInfo
}
