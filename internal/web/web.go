// Package web serves the bundled single-page chat client.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/index.html static/app.js static/style.css
var assetsFS embed.FS

// Handler returns an http.Handler that serves the embedded chat page.
// Panics if the embedded filesystem is corrupted, which should never happen
// at runtime since assets are embedded at compile time.
func Handler() http.Handler {
	sub, err := fs.Sub(assetsFS, "static")
	if err != nil {
		panic(fmt.Sprintf("web: failed to create sub-filesystem: %v", err))
	}
	return http.FileServer(http.FS(sub))
}
