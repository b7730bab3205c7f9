package handlers_test

import (
	"net/http"
	"testing"
)

func TestServeCoreRequiresSession(t *testing.T) {
	g := newTestGateway(t)
	g.assets.objects["v2/core.js"] = []byte("// core")

	w := g.do(t, http.MethodGet, "/v2/core.js", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", w.Code)
	}

	w = g.do(t, http.MethodGet, "/v2/core.js", "", bearer("garbage"))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}
}

func TestServeCoreStreamsAsset(t *testing.T) {
	g := newTestGateway(t)
	g.assets.objects["v2/core.js"] = []byte("// core v2")
	token := g.sessionToken(t, "a@x.com")

	w := g.do(t, http.MethodGet, "/v2/core.js", "", bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "// core v2" {
		t.Errorf("body = %q", w.Body.String())
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Errorf("Cache-Control = %q, want no-store, max-age=0", got)
	}
	if got := w.Header().Get("ETag"); got == "" {
		t.Error("ETag missing")
	}
}

func TestServeCoreFallbackKey(t *testing.T) {
	g := newTestGateway(t)
	g.assets.objects["core.js"] = []byte("// legacy core")
	token := g.sessionToken(t, "a@x.com")

	w := g.do(t, http.MethodGet, "/v2/core.js", "", bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != "// legacy core" {
		t.Errorf("body = %q, want fallback object", w.Body.String())
	}
}

func TestServeCoreNotFound(t *testing.T) {
	g := newTestGateway(t)
	token := g.sessionToken(t, "a@x.com")

	w := g.do(t, http.MethodGet, "/v2/core.js", "", bearer(token))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
