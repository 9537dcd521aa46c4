package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/face-kiosk/internal/web/handlers"
	"github.com/kozaktomas/face-kiosk/internal/web/static"
)

func (s *Server) setupRoutes() {
	// Create handlers
	peopleHandler := handlers.NewPeopleHandler(s.store)
	proxyHandler := handlers.NewProxyHandler(s.upstream)
	configHandler := handlers.NewConfigHandler(s.config)

	// Local registry API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthCheck)
		r.Get("/config", configHandler.Get)

		r.Get("/people", peopleHandler.List)
		r.Post("/register", peopleHandler.Register)
		r.Delete("/people/{name}", peopleHandler.Delete)
	})

	// Vision service relay
	s.router.Route("/cv", func(r chi.Router) {
		r.Post("/register", proxyHandler.Register)
		r.Post("/recognize", proxyHandler.Recognize)
		r.Get("/people", proxyHandler.People)
		r.Post("/train", proxyHandler.Train)
	})

	// Serve static files for the kiosk frontend
	s.router.Get("/*", s.serveFrontend)
}

// serveFrontend serves the embedded single-page frontend
func (s *Server) serveFrontend(w http.ResponseWriter, r *http.Request) {
	fs := static.GetFileSystem()
	path := r.URL.Path
	if path == "/" {
		path = "/index.html"
	}

	f, err := fs.Open(path)
	if err == nil {
		defer f.Close()

		stat, err := f.Stat()
		if err == nil && !stat.IsDir() {
			// Set content type based on extension
			contentType := "application/octet-stream"
			switch {
			case strings.HasSuffix(path, ".html"):
				contentType = "text/html; charset=utf-8"
			case strings.HasSuffix(path, ".css"):
				contentType = "text/css; charset=utf-8"
			case strings.HasSuffix(path, ".js"):
				contentType = "application/javascript; charset=utf-8"
			case strings.HasSuffix(path, ".json"):
				contentType = "application/json"
			case strings.HasSuffix(path, ".svg"):
				contentType = "image/svg+xml"
			case strings.HasSuffix(path, ".png"):
				contentType = "image/png"
			case strings.HasSuffix(path, ".ico"):
				contentType = "image/x-icon"
			}

			w.Header().Set("Content-Type", contentType)
			if strings.HasPrefix(path, "/assets/") {
				w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			}

			w.WriteHeader(http.StatusOK)
			io.Copy(w, f)
			return
		}
	}

	// Unknown non-asset paths fall back to the kiosk page.
	if !strings.HasPrefix(path, "/assets/") {
		indexFile, err := fs.Open("/index.html")
		if err == nil {
			defer indexFile.Close()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			io.Copy(w, indexFile)
			return
		}
	}

	http.NotFound(w, r)
}
