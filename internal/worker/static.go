package worker

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// spaHandler serves files from root and falls back to index.html for any
// other non-API path so client-side routes resolve.
func spaHandler(root string) http.HandlerFunc {
	files := http.FileServer(http.Dir(root))
	index := filepath.Join(root, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// The built bundle may reference a stylesheet it never emits.
		if r.URL.Path == "/index.css" {
			if _, err := os.Stat(filepath.Join(root, "index.css")); err != nil {
				w.Header().Set("Content-Type", "text/css")
				return
			}
		}

		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			info, err := os.Stat(filepath.Join(root, filepath.FromSlash(clean)))
			if err == nil && !info.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}

		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		http.ServeFile(w, r, index)
	}
}
