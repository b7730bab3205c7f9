package license

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newWhopServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/memberships" {
			t.Errorf("path = %s, want /v1/memberships", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer whop-key" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("company_id"); got != "biz_test" {
			t.Errorf("company_id = %q", got)
		}
		if got := r.URL.Query().Get("email"); got == "" {
			t.Error("email query parameter missing")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestHasEntitlementActiveStatus(t *testing.T) {
	srv := newWhopServer(t, http.StatusOK, `{"data":[{"id":"mem_1","status":"active","product_id":"prod_a"}]}`)
	defer srv.Close()

	c := NewWhopClient(srv.URL, "whop-key", "biz_test", "")
	ok, err := c.HasEntitlement(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("HasEntitlement: %v", err)
	}
	if !ok {
		t.Error("active membership not recognized")
	}
}

func TestHasEntitlementStatusFilter(t *testing.T) {
	cases := map[string]bool{
		"active":          true,
		"trialing":        true,
		"paid_subscriber": true,
		"completed":       true,
		"canceled":        false,
		"past_due":        false,
		"expired":         false,
	}
	for status, want := range cases {
		srv := newWhopServer(t, http.StatusOK, `{"data":[{"id":"mem_1","status":"`+status+`"}]}`)
		c := NewWhopClient(srv.URL, "whop-key", "biz_test", "")
		ok, err := c.HasEntitlement(context.Background(), "a@x.com")
		srv.Close()
		if err != nil {
			t.Fatalf("status %s: %v", status, err)
		}
		if ok != want {
			t.Errorf("status %s: entitled = %v, want %v", status, ok, want)
		}
	}
}

func TestHasEntitlementProductFilter(t *testing.T) {
	body := `{"data":[{"id":"mem_1","status":"active","product_id":"prod_other","experience_id":"exp_other"}]}`
	srv := newWhopServer(t, http.StatusOK, body)
	defer srv.Close()

	c := NewWhopClient(srv.URL, "whop-key", "biz_test", "prod_wanted")
	ok, err := c.HasEntitlement(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("HasEntitlement: %v", err)
	}
	if ok {
		t.Error("membership for a different product granted access")
	}
}

func TestHasEntitlementExperienceIDMatches(t *testing.T) {
	body := `{"data":[{"id":"mem_1","status":"completed","product_id":"prod_other","experience_id":"exp_wanted"}]}`
	srv := newWhopServer(t, http.StatusOK, body)
	defer srv.Close()

	c := NewWhopClient(srv.URL, "whop-key", "biz_test", "exp_wanted")
	ok, err := c.HasEntitlement(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("HasEntitlement: %v", err)
	}
	if !ok {
		t.Error("experience id match not recognized")
	}
}

func TestHasEntitlementNoMemberships(t *testing.T) {
	srv := newWhopServer(t, http.StatusOK, `{"data":[]}`)
	defer srv.Close()

	c := NewWhopClient(srv.URL, "whop-key", "biz_test", "")
	ok, err := c.HasEntitlement(context.Background(), "no-sub@x.com")
	if err != nil {
		t.Fatalf("HasEntitlement: %v", err)
	}
	if ok {
		t.Error("empty membership list granted access")
	}
}

func TestHasEntitlementProviderFailure(t *testing.T) {
	srv := newWhopServer(t, http.StatusInternalServerError, `{"error":"boom"}`)
	defer srv.Close()

	c := NewWhopClient(srv.URL, "whop-key", "biz_test", "")
	if _, err := c.HasEntitlement(context.Background(), "a@x.com"); err == nil {
		t.Error("non-2xx response did not surface as an error")
	}
}
