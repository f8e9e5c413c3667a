package views

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 January 2006")
}

//go:embed *.html
var viewFS embed.FS

// Renderer executes the embedded page templates. Views are parsed once at
// construction; a parse error is a programming error surfaced at startup.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// NewRenderer parses all embedded views and returns a Renderer.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	t, err := template.New("views").Funcs(template.FuncMap{
		"fmtDate": fmtDate,
	}).ParseFS(viewFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}
	return &Renderer{templates: t, logger: logger}, nil
}

// Render writes the named view with the given status code and data. Render
// errors after the header is written can only be logged.
func (r *Renderer) Render(w http.ResponseWriter, statusCode int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("render failed", "view", name, "err", err)
	}
}
