package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lending_backend/internal/config"
	"lending_backend/internal/domain"
	httpserver "lending_backend/internal/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	pool, _ := seededPool(t)

	cfg := config.FromEnv()
	cfg.DashboardPushInterval = time.Hour
	cfg.APIRateLimit = 1000
	cfg.AuthRateLimit = 1000

	gin.SetMode(gin.TestMode)
	r := gin.New()
	hub := httpserver.RegisterRoutes(r, pool, cfg)
	t.Cleanup(hub.Shutdown)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	res, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", res.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out.Token
}

func getJSON(t *testing.T, srv *httptest.Server, path, token string, v any) int {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if v != nil && res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(v); err != nil {
			t.Fatal(err)
		}
	}
	return res.StatusCode
}

func TestDashboardEndToEnd(t *testing.T) {
	srv := newServer(t)

	if code := getJSON(t, srv, "/api/reports/dashboard", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous dashboard = %d", code)
	}

	token := login(t, srv, "admin@example.com", "AdminPass123!")

	var snap domain.DashboardSnapshot
	if code := getJSON(t, srv, "/api/reports/dashboard", token, &snap); code != http.StatusOK {
		t.Fatalf("dashboard = %d", code)
	}
	if len(snap.Metrics) != 3 || len(snap.Performance) != 5 || len(snap.RecentActivity) > 5 {
		t.Fatalf("snapshot shape: %d metrics, %d points, %d activity", len(snap.Metrics), len(snap.Performance), len(snap.RecentActivity))
	}
	if snap.Metrics[1].Unit == nil || *snap.Metrics[1].Unit != "IRR" {
		t.Fatalf("balance metric = %+v", snap.Metrics[1])
	}

	var v1 domain.DashboardSnapshot
	if code := getJSON(t, srv, "/api/v1/reports/dashboard", token, &v1); code != http.StatusOK {
		t.Fatalf("v1 dashboard = %d", code)
	}

	var overview domain.WalletOverview
	if code := getJSON(t, srv, "/api/wallet/overview", token, &overview); code != http.StatusOK {
		t.Fatalf("wallet overview = %d", code)
	}
	if overview.Wallet.Currency != "IRR" || len(overview.Transactions) == 0 {
		t.Fatalf("overview = %+v", overview)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newServer(t)
	body := strings.NewReader(`{"email":"admin@example.com","password":"nope"}`)
	res, err := http.Post(srv.URL+"/api/auth/login", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", res.StatusCode)
	}
}

func TestLiveDashboardEndToEnd(t *testing.T) {
	srv := newServer(t)
	token := login(t, srv, "user@example.com", "UserPass123!")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dashboard?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame struct {
		Type string                   `json:"type"`
		Data domain.DashboardSnapshot `json:"data"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Type != "snapshot" || len(frame.Data.Metrics) != 3 {
		t.Fatalf("frame = %+v", frame)
	}

	if _, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/dashboard", nil); err == nil {
		t.Fatal("dial without token succeeded")
	} else if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("dial without token: %v", err)
	}
}
