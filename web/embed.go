// Package web provides the embedded static assets served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree so the binary ships
// with its stylesheet and needs no files on disk.
//
//go:embed all:static
var StaticFS embed.FS
