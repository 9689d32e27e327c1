package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erdmkk/football-gossip-bot/app/database"
)

type stubChangeRepo struct {
	changes []database.Change
}

func (s *stubChangeRepo) SaveChange(change database.Change) (int64, error) { return 1, nil }
func (s *stubChangeRepo) MarkPosted(changeID int64) error                  { return nil }
func (s *stubChangeRepo) RecentChanges(limit int) ([]database.Change, error) {
	if limit > len(s.changes) {
		limit = len(s.changes)
	}
	return s.changes[:limit], nil
}
func (s *stubChangeRepo) HasRecentChange(kind, athleteHandle, targetHandle string, window time.Duration) (bool, error) {
	return false, nil
}
func (s *stubChangeRepo) SaveSnapshot(athleteHandle string, followingCount int, takenAt time.Time) error {
	return nil
}
func (s *stubChangeRepo) Stats() (*database.Stats, error) {
	return &database.Stats{
		TotalChanges: len(s.changes),
		Unfollows:    1,
		TotalPosts:   2,
		TopAthletes:  []database.AthleteActivity{{Athlete: "Cristiano Ronaldo", Changes: 3}},
	}, nil
}

type stubPostRepo struct{}

func (s *stubPostRepo) SavePost(post database.Post) error { return nil }
func (s *stubPostRepo) HasIdentity(identity string, window time.Duration) (bool, error) {
	return false, nil
}
func (s *stubPostRepo) LoadIdentities(since time.Time) ([]database.IdentityRecord, error) {
	return nil, nil
}
func (s *stubPostRepo) PostCount() (int, error) { return 2, nil }

func newTestServer(apiKey string) *httptest.Server {
	changes := &stubChangeRepo{changes: []database.Change{
		{Kind: "unfollow", Athlete: "Cristiano Ronaldo", AthleteHandle: "@cristiano", TargetHandle: "@piersmorgan", DramaScore: 80, OccurredAt: time.Now()},
		{Kind: "follow", Athlete: "Lionel Messi", AthleteHandle: "@leomessi", TargetHandle: "@fcbarcelona", DramaScore: 60, OccurredAt: time.Now()},
	}}
	handler := NewHandler(changes, &stubPostRepo{}, nil, "test")
	return httptest.NewServer(NewServer(handler, apiKey))
}

func TestGetHealth(t *testing.T) {
	server := newTestServer("")
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["version"] != "test" {
		t.Errorf("Expected version in health response, got %v", body["version"])
	}
	if body["posts"] != float64(2) {
		t.Errorf("Expected post count 2, got %v", body["posts"])
	}
}

func TestGetStats(t *testing.T) {
	server := newTestServer("")
	defer server.Close()

	resp, err := http.Get(server.URL + "/stats")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["total_changes"] != float64(2) {
		t.Errorf("Expected 2 total changes, got %v", body["total_changes"])
	}
}

func TestAPIChangesRequiresKey(t *testing.T) {
	server := newTestServer("secret")
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/changes")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without key, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/changes?limit=1", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 with key, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["total"] != float64(1) {
		t.Errorf("Expected limit applied, got total %v", body["total"])
	}
}

func TestAPIChangesInvalidLimit(t *testing.T) {
	server := newTestServer("secret")
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/changes?limit=zero", nil)
	req.Header.Set("X-API-Key", "secret")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid limit, got %d", resp.StatusCode)
	}
}
