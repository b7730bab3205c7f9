package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"metastar/config"
	"metastar/handlers"
	"metastar/routes"
	"metastar/services/asset"
	"metastar/services/auth"
	"metastar/services/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

var errProviderDown = errors.New("upstream 500")

type fakeLicense struct {
	entitled bool
	err      error
}

func (f *fakeLicense) HasEntitlement(ctx context.Context, email string) (bool, error) {
	return f.entitled, f.err
}

type fakeMailer struct {
	codes []string
	fail  bool
}

func (f *fakeMailer) SendCode(ctx context.Context, email, code string) error {
	if f.fail {
		return errors.New("delivery refused")
	}
	f.codes = append(f.codes, code)
	return nil
}

type fakeAssetStore struct {
	objects map[string][]byte
}

func (f *fakeAssetStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, string, error) {
	b, ok := f.objects[key]
	if !ok {
		return nil, 0, "", asset.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), int64(len(b)), `"v1"`, nil
}

type gateway struct {
	router  *gin.Engine
	redis   *miniredis.Miniredis
	license *fakeLicense
	mailer  *fakeMailer
	assets  *fakeAssetStore
}

func newTestGateway(t *testing.T) *gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret-do-not-use"
	config.AppConfig.CoreAssetKey = "v2/core.js"
	config.AppConfig.CoreAssetFallback = "core.js"

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	lic := &fakeLicense{entitled: true}
	ml := &fakeMailer{}
	assets := &fakeAssetStore{objects: map[string][]byte{}}

	authService := &auth.DefaultAuthService{
		Cache:   cache,
		License: lic,
		Mailer:  ml,
	}
	authHandler := handlers.NewAuthHandler(authService)
	assetHandler := handlers.NewAssetHandler(assets)
	storageHandler := handlers.NewStorageHandler(&storage.RedisConfigStore{Client: cache})
	healthHandler := handlers.NewHealthHandler(cache)

	hb := &handlers.HandlerBundle{
		InitLoginHandler:       authHandler.InitLoginHandler,
		VerifyCodeHandler:      authHandler.VerifyCodeHandler,
		ValidateSessionHandler: authHandler.ValidateSessionHandler,
		ServeCoreHandler:       assetHandler.ServeCoreHandler,
		SaveConfigHandler:      storageHandler.SaveConfigHandler,
		LoadConfigHandler:      storageHandler.LoadConfigHandler,
		HealthHandler:          healthHandler.HealthHandler,
	}

	router := gin.New()
	routes.RegisterRoutes(router, hb)

	return &gateway{router: router, redis: mr, license: lic, mailer: ml, assets: assets}
}

func (g *gateway) do(t *testing.T, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response %q is not JSON: %v", w.Body.String(), err)
	}
	return out
}

// sessionToken runs the full init+verify flow and returns the minted token.
func (g *gateway) sessionToken(t *testing.T, email string) string {
	t.Helper()
	w := g.do(t, http.MethodPost, "/auth/init", `{"email":"`+email+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("init: status %d body %s", w.Code, w.Body.String())
	}
	code := g.mailer.codes[len(g.mailer.codes)-1]
	w = g.do(t, http.MethodPost, "/auth/verify", `{"email":"`+email+`","code":"`+code+`"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify: status %d body %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatal("verify response carries no token")
	}
	return token
}

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}
