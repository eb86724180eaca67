package sessions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"career-advisor/internal/advisor"
	"career-advisor/internal/sessions"
	"career-advisor/internal/shared/config"
	"career-advisor/internal/shared/server"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &sessions.Service{
		Repo:    sessions.NewMemoryRepo(),
		Advisor: advisor.NewService(emptyClient{}),
	}
	return server.NewRouter(server.RouterDeps{
		Config:         config.Config{CORSAllowOrigin: []string{"http://localhost:5173"}},
		SessionHandler: sessions.NewHandler(svc),
	})
}

type emptyClient struct{}

func (emptyClient) Generate(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func TestProfileUpdateAndFetch(t *testing.T) {
	router := newRouter(t)

	body := `{
		"name": "Asha",
		"age": 25,
		"domain": "Data Science",
		"psychometric": {
			"analytical": 8, "creativity": 6, "communication": 7,
			"problem_solving": 8, "adaptability": 7, "leadership": 5
		}
	}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "test-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var updated struct {
		Stage string `json:"stage"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Name != "Asha" {
		t.Fatalf("expected name Asha, got %s", updated.Name)
	}
	if updated.Stage != "idle" {
		t.Fatalf("expected stage idle before any resume, got %s", updated.Stage)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	reqGet.Header.Set("X-Session-Id", "test-session")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}
	var fetched struct {
		Name   string `json:"name"`
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.Domain != "Data Science" {
		t.Fatalf("expected stored domain, got %s", fetched.Domain)
	}
}

func TestProfileValidation(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"age too low", `{"name":"A","age":5,"domain":"X","psychometric":{"analytical":5,"creativity":5,"communication":5,"problem_solving":5,"adaptability":5,"leadership":5}}`},
		{"age too high", `{"name":"A","age":81,"domain":"X","psychometric":{"analytical":5,"creativity":5,"communication":5,"problem_solving":5,"adaptability":5,"leadership":5}}`},
		{"trait out of range", `{"name":"A","age":25,"domain":"X","psychometric":{"analytical":11,"creativity":5,"communication":5,"problem_solving":5,"adaptability":5,"leadership":5}}`},
		{"trait missing", `{"name":"A","age":25,"domain":"X","psychometric":{"creativity":5,"communication":5,"problem_solving":5,"adaptability":5,"leadership":5}}`},
		{"invalid json", `{not json`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/session/profile", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Session-Id", "test-session")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestManualSkills(t *testing.T) {
	router := newRouter(t)

	body := `{"skills": " Go , Kubernetes ,, "}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/session/skills", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "test-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var session struct {
		Skills      []string `json:"skills"`
		SkillSource string   `json:"skillSource"`
		Stage       string   `json:"stage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(session.Skills) != 2 || session.Skills[0] != "Go" {
		t.Fatalf("unexpected skills: %v", session.Skills)
	}
	if session.SkillSource != "manual" {
		t.Fatalf("expected manual skill source, got %s", session.SkillSource)
	}
	if session.Stage != "skills_resolved" {
		t.Fatalf("expected stage skills_resolved, got %s", session.Stage)
	}
}

func TestManualSkillsRejectsEmpty(t *testing.T) {
	router := newRouter(t)

	for _, body := range []string{`{"skills":"  "}`, `{"skills":" , , "}`} {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/session/skills", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Session-Id", "test-session")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected status 400, got %d", body, resp.Code)
		}
	}
}

func TestManualSkillsRejectionKeepsStoredSkills(t *testing.T) {
	router := newRouter(t)

	seed := httptest.NewRequest(http.MethodPut, "/api/v1/session/skills", strings.NewReader(`{"skills":"Python, SQL"}`))
	seed.Header.Set("Content-Type", "application/json")
	seed.Header.Set("X-Session-Id", "test-session")
	seedResp := httptest.NewRecorder()
	router.ServeHTTP(seedResp, seed)
	if seedResp.Code != http.StatusOK {
		t.Fatalf("seed skills: expected 200, got %d", seedResp.Code)
	}

	bad := httptest.NewRequest(http.MethodPut, "/api/v1/session/skills", strings.NewReader(`{"skills":" , , "}`))
	bad.Header.Set("Content-Type", "application/json")
	bad.Header.Set("X-Session-Id", "test-session")
	badResp := httptest.NewRecorder()
	router.ServeHTTP(badResp, bad)
	if badResp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank skill list, got %d", badResp.Code)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	reqGet.Header.Set("X-Session-Id", "test-session")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)

	var session struct {
		Skills []string `json:"skills"`
		Stage  string   `json:"stage"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(session.Skills) != 2 || session.Skills[0] != "Python" || session.Skills[1] != "SQL" {
		t.Fatalf("rejected request must not mutate stored skills, got %v", session.Skills)
	}
	if session.Stage != "skills_resolved" {
		t.Fatalf("expected stage skills_resolved to survive, got %s", session.Stage)
	}
}

func TestResumeUploadRequiresFile(t *testing.T) {
	router := newRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session/resume", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Session-Id", "test-session")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSessionIDMintedForNewVisitors(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("X-Session-Id") == "" {
		t.Fatalf("expected minted X-Session-Id header")
	}
}
