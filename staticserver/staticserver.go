// Package staticserver serves the chat client's static assets (HTML/JS/CSS)
// over plain HTTP, separately from the websocket broker. Grounded on
// original_source/static_app.py's MyHTTPRequestHandler, which existed
// because Python's mimetypes module on some platforms guesses ".js" as
// text/plain, breaking module script loading in browsers; net/http's
// mime package has the same historical gap on some platform configurations,
// so the override is carried forward.
package staticserver

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Handler serves dir as static files, forcing application/javascript for
// .js paths regardless of what the host's mime database reports.
func Handler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ext := strings.ToLower(filepath.Ext(r.URL.Path)); ext == ".js" {
			w.Header().Set("Content-Type", "application/javascript")
		}
		fs.ServeHTTP(w, r)
	})
}

func init() {
	// Belt-and-suspenders: also correct the global mime database so any
	// other code path in this process (e.g. http.ServeFile called
	// directly) gets the same answer.
	_ = mime.AddExtensionType(".js", "application/javascript")
}
