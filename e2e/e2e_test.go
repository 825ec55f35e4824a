//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fonds-social-go/internal/config"
	"fonds-social-go/internal/db"
	authdomain "fonds-social-go/internal/domain/auth"
	caissedomain "fonds-social-go/internal/domain/caisse"
	cotisationsdomain "fonds-social-go/internal/domain/cotisations"
	membresdomain "fonds-social-go/internal/domain/membres"
	missionsdomain "fonds-social-go/internal/domain/missions"
	rapportdomain "fonds-social-go/internal/domain/rapport"
	"fonds-social-go/internal/repository/inmemory"
	authrepo "fonds-social-go/internal/repository/postgres/auth"
	caisserepo "fonds-social-go/internal/repository/postgres/caisse"
	cotisationsrepo "fonds-social-go/internal/repository/postgres/cotisations"
	membresrepo "fonds-social-go/internal/repository/postgres/membres"
	missionsrepo "fonds-social-go/internal/repository/postgres/missions"
	rapportrepo "fonds-social-go/internal/repository/postgres/rapport"
	"fonds-social-go/internal/transport/httpserver"
	"fonds-social-go/internal/transport/httpserver/handler"
	"fonds-social-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "text")
	cfg := config.Config{
		HTTPPort: "0",
		JWT: config.JWTConfig{
			Secret: "e2e-secret",
			TTL:    time.Hour,
		},
		Trends: config.TrendsConfig{CacheTTL: time.Minute},
		DB:     config.DBConfig{DSN: dsn},
	}

	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	trendsCache := inmemory.NewTrendsCache()

	authService := authdomain.NewService(authrepo.NewPostgres(dbConn), cfg.JWT.Secret, cfg.JWT.TTL)
	membresService := membresdomain.NewService(membresrepo.NewPostgres(dbConn))
	cotisationsService := cotisationsdomain.NewService(cotisationsrepo.NewPostgres(dbConn)).WithTrendsInvalidator(trendsCache)
	missionsService := missionsdomain.NewService(missionsrepo.NewPostgres(dbConn)).WithTrendsInvalidator(trendsCache)
	caisseService := caissedomain.NewService(caisserepo.NewPostgres(dbConn), trendsCache, cfg.Trends.CacheTTL)
	rapportService := rapportdomain.NewService(rapportrepo.NewPostgres(dbConn))

	handlers := handler.New(authService, membresService, cotisationsService, missionsService, caisseService, rapportService, log)
	router := httpserver.NewRouter(cfg, handlers, authService, log)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	t.Cleanup(func() {
		sqlDB, err := dbConn.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{server: server, db: dbConn}
	env.token = env.register(t)
	return env
}

func (e *testEnv) register(t *testing.T) string {
	t.Helper()
	body := map[string]string{
		"username": "admin",
		"email":    fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano()),
		"password": "secret123",
	}
	status, payload := e.do(t, http.MethodPost, "/api/auth/register", "", body)
	if status != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", status, payload)
	}
	var response struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(payload, &response); err != nil {
		t.Fatalf("register decode: %v", err)
	}
	if response.Token == "" {
		t.Fatal("register returned empty token")
	}
	return response.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, payload
}

func TestHealth(t *testing.T) {
	env := setupE2E(t)

	status, _ := env.do(t, http.MethodGet, "/api/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health status = %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	env := setupE2E(t)

	status, _ := env.do(t, http.MethodGet, "/api/membres", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated membres status = %d, want 401", status)
	}
}

func TestMembreCotisationFlow(t *testing.T) {
	env := setupE2E(t)

	email := fmt.Sprintf("jean-%d@example.com", time.Now().UnixNano())
	status, payload := env.do(t, http.MethodPost, "/api/membres", env.token, map[string]string{
		"nom":   "Jean Dupont",
		"email": email,
		"poste": "Trésorier",
	})
	if status != http.StatusCreated {
		t.Fatalf("create membre status = %d, body %s", status, payload)
	}
	var membre struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(payload, &membre); err != nil {
		t.Fatalf("decode membre: %v", err)
	}

	status, payload = env.do(t, http.MethodPost, "/api/cotisations", env.token, map[string]interface{}{
		"membre_id":     membre.ID,
		"montant":       3000,
		"mois":          "2026-01",
		"date_paiement": "2026-01-05",
	})
	if status != http.StatusCreated {
		t.Fatalf("create cotisation status = %d, body %s", status, payload)
	}
	var cotisation struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &cotisation); err != nil {
		t.Fatalf("decode cotisation: %v", err)
	}
	if cotisation.Status != "Paye" {
		t.Fatalf("cotisation status = %q, want Paye", cotisation.Status)
	}

	// Same month twice is rejected as a bad request.
	status, _ = env.do(t, http.MethodPost, "/api/cotisations", env.token, map[string]interface{}{
		"membre_id":     membre.ID,
		"montant":       1000,
		"mois":          "2026-01",
		"date_paiement": "2026-01-20",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate cotisation status = %d, want 400", status)
	}
}

func TestCaisseSortieInsuffisante(t *testing.T) {
	env := setupE2E(t)

	status, payload := env.do(t, http.MethodPost, "/api/caisse", env.token, map[string]interface{}{
		"solde_actuel": 0,
	})
	if status != http.StatusCreated {
		t.Fatalf("create caisse status = %d, body %s", status, payload)
	}
	var caisse struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(payload, &caisse); err != nil {
		t.Fatalf("decode caisse: %v", err)
	}

	status, payload = env.do(t, http.MethodPost, "/api/sortie", env.token, map[string]interface{}{
		"motif":     "achat fournitures",
		"montant":   1000000,
		"date":      "2026-02-01",
		"caisse_id": caisse.ID,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("oversized sortie status = %d, body %s", status, payload)
	}
}

func TestRapportDownload(t *testing.T) {
	env := setupE2E(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/rapport", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+env.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("rapport status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got == "" {
		t.Fatal("rapport missing Content-Disposition header")
	}
}
