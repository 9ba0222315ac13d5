// Package lsp serves the Language Server Protocol slice this module
// implements over the parser facade: document sync, diagnostics, and
// semantic tokens. It does not implement hover, rename, code actions, or
// any feature that would require semantic analysis beyond parsing.
package lsp

import (
	"net/url"
	"strings"

	"go.lsp.dev/protocol"
)

// URIToPath converts a document URI to a file system path, grounded on this
// module's teacher's own fileloader.go helper of the same name.
func URIToPath(uri protocol.DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil {
		return strings.TrimPrefix(string(uri), "file://")
	}

	if u.Scheme == "file" {
		return u.Path
	}

	return string(uri)
}

// PathToURI converts a file system path to a document URI.
func PathToURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI("file://" + path)
}
