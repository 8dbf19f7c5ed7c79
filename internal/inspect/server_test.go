package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iburimskiy/proximity-nav/internal/prefs"
	"github.com/iburimskiy/proximity-nav/internal/proximity"
)

func init() { gin.SetMode(gin.TestMode) }

func newRouter(t *testing.T) (*gin.Engine, *proximity.Animator, *prefs.Store) {
	t.Helper()
	a, err := proximity.New(proximity.DefaultConfig(), proximity.NewFrameScheduler())
	if err != nil {
		t.Fatal(err)
	}
	a.Register("bar", func() proximity.Bounds { return proximity.Bounds{RadiusX: 10, RadiusY: 10} })
	a.PointerMove(0, 0)

	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewRouter(map[string]Snapshotter{"nav": a}, store), a, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _, _ := newRouter(t)
	if w := do(r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestAnimators(t *testing.T) {
	r, _, _ := newRouter(t)
	w := do(r, http.MethodGet, "/debug/animators", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var views []animatorView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].Name != "nav" || !views[0].Animating {
		t.Fatalf("views = %+v", views)
	}
	if tg := views[0].Targets; len(tg) != 1 || tg[0].ID != "bar" || tg[0].Target <= 1 {
		t.Errorf("targets = %+v", tg)
	}

	w = do(r, http.MethodGet, "/debug/animators/nav", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"id":"bar"`) {
		t.Errorf("single animator = %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/debug/animators/nope", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown animator status = %d", w.Code)
	}
}

func TestPrefsRoutes(t *testing.T) {
	r, _, store := newRouter(t)

	if w := do(r, http.MethodPut, "/prefs/theme", `{"value":"dark"}`); w.Code != http.StatusOK {
		t.Fatalf("put theme = %d %s", w.Code, w.Body.String())
	}
	if v := store.GetOr(context.Background(), prefs.KeyTheme, ""); v != "dark" {
		t.Errorf("stored theme = %q", v)
	}

	w := do(r, http.MethodGet, "/prefs", "")
	var all map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil || all["theme"] != "dark" {
		t.Errorf("prefs = %v, %v", all, err)
	}

	bad := []struct{ path, body string }{
		{"/prefs/theme", `{"value":"sepia"}`},
		{"/prefs/language", `{"value":"fr"}`},
		{"/prefs/volume", `{"value":"11"}`},
		{"/prefs/theme", `{}`},
		{"/prefs/theme", `not json`},
	}
	for _, b := range bad {
		if w := do(r, http.MethodPut, b.path, b.body); w.Code != http.StatusBadRequest {
			t.Errorf("PUT %s %s = %d", b.path, b.body, w.Code)
		}
	}
}

func TestPrefsDisabled(t *testing.T) {
	r := NewRouter(map[string]Snapshotter{}, nil)
	if w := do(r, http.MethodGet, "/prefs", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /prefs = %d", w.Code)
	}
	if w := do(r, http.MethodPut, "/prefs/theme", `{"value":"dark"}`); w.Code != http.StatusServiceUnavailable {
		t.Errorf("PUT /prefs = %d", w.Code)
	}
}
