// Package web embeds the browser chat client.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var files embed.FS

// Site returns the client files rooted at index.html.
func Site() fs.FS {
	return files
}
