// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// ComponentResponse describes a rendered HTML response.
type ComponentResponse struct {
	Code        int
	ContentType string
	Component   templ.Component
}

// ComponentHandler adapts a function returning a component into an
// http.Handler. The component is rendered into a buffer first so a render
// failure still produces a clean 500.
type ComponentHandler func(w http.ResponseWriter, r *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	var buf bytes.Buffer
	if err := resp.Component.Render(r.Context(), &buf); err != nil {
		slog.ErrorContext(r.Context(), "rendering component", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	code := resp.Code
	if code == 0 {
		code = http.StatusOK
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
