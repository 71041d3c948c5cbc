package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderIndex(t *testing.T) {
	var sb strings.Builder
	if err := RenderIndex(&sb, PageData{Title: "Image Pairing Game"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<title>Image Pairing Game</title>", "/static/app.js", `id="code-form"`} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	Static().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "needs_confirmation") {
		t.Errorf("unexpected app.js body")
	}
}
