// Package templates renders the portal's HTML pages from embedded templates.
package templates

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed *.html
var files embed.FS

// LoginData is the data for the login page
type LoginData struct {
	SSID  string
	Error string
}

// SuccessData is the data for the confirmation page
type SuccessData struct {
	DisplayName   string
	ControllerURL string
	DelayMillis   int
}

// ErrorData is the data for the generic error page
type ErrorData struct {
	Message string
}

// Renderer executes the portal page templates
type Renderer struct {
	tpls *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tpls, err := template.ParseFS(files, "*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tpls: tpls}, nil
}

func (r *Renderer) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tpls.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login renders the login page
func (r *Renderer) Login(w http.ResponseWriter, data LoginData) {
	r.render(w, "login.html", data)
}

// Success renders the confirmation page with the deferred controller redirect
func (r *Renderer) Success(w http.ResponseWriter, data SuccessData) {
	r.render(w, "success.html", data)
}

// Start renders the start page shown when a guest arrives without a flow
func (r *Renderer) Start(w http.ResponseWriter) {
	r.render(w, "start.html", nil)
}

// Error renders the generic error page with the given status code
func (r *Renderer) Error(w http.ResponseWriter, status int, data ErrorData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.tpls.ExecuteTemplate(w, "error.html", data); err != nil {
		// Headers already sent; nothing more to do
		return
	}
}
