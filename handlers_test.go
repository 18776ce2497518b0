package main

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/playground"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/theme"
)

func newTestServer(t *testing.T) (*server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scene, err := config.LoadScene("")
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	srv := newServer(config.Config{AdminUsername: "admin", AdminPassword: "secret"}, scene, st)
	srv.agent = &playground.Agent{Sleep: func(ctx context.Context, _ time.Duration) error { return ctx.Err() }}
	r, err := srv.router()
	if err != nil {
		t.Fatalf("router err = %v", err)
	}
	return srv, r
}

func get(r http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIndexTracksVisitor(t *testing.T) {
	srv, r := newTestServer(t)

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Agent Playground", "About me", "backdrop"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}

	get(r, "/", "DNT", "1")
	get(r, "/api/themes")
	srv.tracking.Wait()

	stats, err := srv.store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVisitors != 1 {
		t.Errorf("TotalVisitors = %d, want 1 (DNT and API requests are not tracked)", stats.TotalVisitors)
	}
	if v := stats.RecentVisitors[0]; v.Path != "/" || len(v.HashedIP) != 16 {
		t.Errorf("visitor = %+v", v)
	}
}

func TestBackdropPNG(t *testing.T) {
	_, r := newTestServer(t)
	for _, target := range []string{
		"/backdrop/neural.png?w=64&h=48&frames=4",
		"/backdrop/hero.png?w=64&h=48&frames=4&px=10&py=10",
		"/backdrop/playground.png?w=64&h=48&frames=4&theme=neo-brutal/light",
		"/backdrop/particles.png?w=64&h=48&frames=4&transparent=1",
	} {
		w := get(r, target)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d: %s", target, w.Code, w.Body.String())
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("GET %s Content-Type = %q", target, ct)
		}
		img, err := png.Decode(w.Body)
		if err != nil {
			t.Errorf("GET %s: %v", target, err)
			continue
		}
		if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
			t.Errorf("GET %s size = %v, want 64x48", target, b)
		}
	}
}

func TestBackdropReducedMotionIsBare(t *testing.T) {
	_, r := newTestServer(t)
	w := get(r, "/backdrop/particles.png?w=32&h=32&reduced=1&theme=glass/dark")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	bg := theme.Builtin()["glass/dark"].Background
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != bg.R || uint8(g>>8) != bg.G || uint8(b>>8) != bg.B {
				t.Fatalf("pixel (%d,%d) is not the background", x, y)
			}
		}
	}
}

func TestBackdropErrors(t *testing.T) {
	_, r := newTestServer(t)
	tests := []struct {
		target string
		want   int
	}{
		{"/backdrop/stars.png", http.StatusNotFound},
		{"/backdrop/neural.jpg", http.StatusNotFound},
		{"/backdrop/neural.png?w=abc", http.StatusBadRequest},
		{"/backdrop/neural.png?w=99999", http.StatusBadRequest},
		{"/backdrop/neural.png?frames=-1", http.StatusBadRequest},
		{"/backdrop/neural.png?theme=nope", http.StatusBadRequest},
		{"/backdrop/neural.png?px=NaN", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w := get(r, tt.target); w.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.target, w.Code, tt.want)
		}
	}
}

func TestScrollStyle(t *testing.T) {
	_, r := newTestServer(t)

	var resp struct {
		Progress float64      `json:"progress"`
		Style    scroll.Style `json:"style"`
	}
	tests := []struct {
		target   string
		progress float64
		style    scroll.Style
	}{
		{"/api/scroll?progress=0", 0, scroll.Style{Y: 50, Opacity: 0, Scale: 0.95}},
		{"/api/scroll?progress=0.5", 0.5, scroll.Style{Y: 25, Opacity: 0.5, Scale: 0.975}},
		{"/api/scroll?progress=0.5&start=0&end=0.5", 0.5, scroll.Style{Y: 0, Opacity: 1, Scale: 1}},
		{"/api/scroll?y=1100&viewport=800&document=3000", 0.5, scroll.Style{Y: 25, Opacity: 0.5, Scale: 0.975}},
	}
	for _, tt := range tests {
		w := get(r, tt.target)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", tt.target, w.Code)
			continue
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if !near(resp.Progress, tt.progress) || !near(resp.Style.Y, tt.style.Y) ||
			!near(resp.Style.Opacity, tt.style.Opacity) || !near(resp.Style.Scale, tt.style.Scale) {
			t.Errorf("GET %s = %+v, want progress %v style %+v", tt.target, resp, tt.progress, tt.style)
		}
	}

	for _, target := range []string{"/api/scroll?ease=wobble", "/api/scroll?progress=abc", "/api/scroll?y=1&viewport=x"} {
		if w := get(r, target); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", target, w.Code)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestPlaygroundStream(t *testing.T) {
	srv, r := newTestServer(t)

	w := get(r, "/api/playground?q="+url.QueryEscape("what projects have you built?"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"event:status", "Parsing query", "event:reply", `"topic":"projects"`, "event:notice", "Sample data", "event:done"} {
		if !strings.Contains(body, want) {
			t.Errorf("stream missing %q:\n%s", want, body)
		}
	}
	if strings.Index(body, "event:reply") > strings.Index(body, "event:done") {
		t.Error("done event sent before the reply")
	}

	stats, err := srv.store.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalQueries != 1 || len(stats.TopTopics) != 1 || stats.TopTopics[0].Topic != "projects" {
		t.Errorf("stats after query = %+v", stats)
	}
}

func TestPlaygroundRejectsBadQueries(t *testing.T) {
	_, r := newTestServer(t)
	for _, target := range []string{"/api/playground", "/api/playground?q=%20%20", "/api/playground?q=" + strings.Repeat("a", playground.MaxQueryLen+1)} {
		if w := get(r, target); w.Code != http.StatusBadRequest {
			t.Errorf("GET %s = %d, want 400", target[:min(len(target), 40)], w.Code)
		}
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	_, r := newTestServer(t)
	for _, target := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/visitors", "/admin/export/stats"} {
		w := get(r, target)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Errorf("GET %s = %d %q, want redirect to login", target, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestAdminLogin(t *testing.T) {
	srv, r := newTestServer(t)

	login := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := login("admin", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", w.Code)
	}

	w := login("admin", "secret")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
		t.Fatalf("login = %d %q, want redirect to dashboard", w.Code, w.Header().Get("Location"))
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			token = c.Value
		}
	}
	if token != srv.adminToken {
		t.Fatalf("admin cookie = %q, want session token", token)
	}

	authed := func(method, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		req.AddCookie(&http.Cookie{Name: adminCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := authed(http.MethodGet, "/admin/dashboard"); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Playground topics") {
		t.Errorf("dashboard = %d", w.Code)
	}
	if w := authed(http.MethodGet, "/admin/visitors"); w.Code != http.StatusOK {
		t.Errorf("visitors = %d", w.Code)
	}

	w = authed(http.MethodGet, "/admin/api/stats")
	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil || w.Code != http.StatusOK {
		t.Errorf("api/stats = %d, err %v", w.Code, err)
	}

	if w := authed(http.MethodGet, "/admin/export/stats"); !strings.Contains(w.Header().Get("Content-Disposition"), "admin-stats.json") {
		t.Errorf("export Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if w := authed(http.MethodDelete, "/admin/visitors/unknown"); w.Code != http.StatusNotFound {
		t.Errorf("delete unknown visitor = %d, want 404", w.Code)
	}
	if w := authed(http.MethodPost, "/admin/privacy/delete-visitor-data"); w.Code != http.StatusOK {
		t.Errorf("privacy cleanup = %d", w.Code)
	}

	if w := get(r, "/admin/logout"); w.Code != http.StatusFound {
		t.Errorf("logout = %d, want redirect", w.Code)
	}
}

func TestForgetVisitor(t *testing.T) {
	srv, r := newTestServer(t)
	hash := srv.hashIP("192.0.2.1")
	if err := srv.store.RecordVisit(context.Background(), hash, "ua", "/"); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/admin/visitors/"+hash, nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: srv.adminToken})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete = %d: %s", w.Code, w.Body.String())
	}
	stats, _ := srv.store.Stats(context.Background())
	if stats.TotalVisitors != 0 {
		t.Errorf("TotalVisitors = %d after forget, want 0", stats.TotalVisitors)
	}
}

func TestHashIP(t *testing.T) {
	srv, _ := newTestServer(t)
	a := srv.hashIP("192.0.2.1")
	if a != srv.hashIP("192.0.2.1") {
		t.Error("hashIP is not stable")
	}
	if a == srv.hashIP("192.0.2.2") {
		t.Error("different IPs share a hash")
	}
	if len(a) != 16 || strings.Contains(a, "192") {
		t.Errorf("hashIP = %q", a)
	}
}
