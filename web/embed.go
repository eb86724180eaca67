// Package web embeds the single-page UI served next to the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// Static returns the UI file tree rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The static directory is embedded at compile time; Sub only fails
		// if the path is wrong, which a build would catch.
		panic(err)
	}
	return sub
}
