package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aaronzipp/serpents-and-stairways/internal/auth"
	"github.com/aaronzipp/serpents-and-stairways/internal/challenge"
	"github.com/aaronzipp/serpents-and-stairways/internal/leaderboard"
	"github.com/aaronzipp/serpents-and-stairways/internal/store"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, gc challenge.Context) (challenge.Result, error) {
	return challenge.Result{}, errors.New("not configured")
}

type stubWins struct {
	entries []leaderboard.Entry
}

func (s *stubWins) RecordWin(ctx context.Context, name, avatar, roomCode string) error {
	return nil
}

func (s *stubWins) TopN(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	if n < len(s.entries) {
		return s.entries[:n], nil
	}
	return s.entries, nil
}

func newTestServer(t *testing.T, wins Leaderboard) *httptest.Server {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	ctx := NewContext(store.NewRoomStore(), tokens, stubGenerator{}, wins, "http://localhost:8080", 0, 0)
	ctx.IdleGrace = 50 * time.Millisecond
	srv := httptest.NewServer(NewRouter(ctx))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	return resp
}

func decodeJoin(t *testing.T, resp *http.Response) joinResponse {
	t.Helper()
	defer resp.Body.Close()
	var out joinResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestCreateAndJoinRoom(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/rooms", "", `{"name":"Ada","avatar":"🐍"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", resp.StatusCode)
	}
	host := decodeJoin(t, resp)
	if host.RoomCode == "" || host.PlayerID == "" || host.Token == "" {
		t.Fatalf("host = %+v", host)
	}

	resp = postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/join", "", `{"name":"Grace","avatar":"🪜"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join status %d", resp.StatusCode)
	}
	guest := decodeJoin(t, resp)
	if guest.RoomCode != host.RoomCode || guest.PlayerID == host.PlayerID {
		t.Fatalf("guest = %+v", guest)
	}
}

func TestCreateRoomRequiresName(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/rooms", "", `{"name":"   "}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := postJSON(t, srv.URL+"/rooms/NOPE42/join", "", `{"name":"Ada"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestManagementRequiresToken(t *testing.T) {
	srv := newTestServer(t, nil)

	host := decodeJoin(t, postJSON(t, srv.URL+"/rooms", "", `{"name":"Ada"}`))

	resp := postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/stakes", "", `{"stakes":"pizza"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d without token", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/stakes", host.Token, `{"stakes":"pizza"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status %d with token", resp.StatusCode)
	}
}

func TestNonHostCannotAddBot(t *testing.T) {
	srv := newTestServer(t, nil)

	host := decodeJoin(t, postJSON(t, srv.URL+"/rooms", "", `{"name":"Ada"}`))
	guest := decodeJoin(t, postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/join", "", `{"name":"Grace"}`))

	resp := postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/bots", guest.Token, `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/bots", host.Token, `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("host add bot status %d", resp.StatusCode)
	}
}

func TestLeaveReapsEmptyRoom(t *testing.T) {
	srv := newTestServer(t, nil)

	host := decodeJoin(t, postJSON(t, srv.URL+"/rooms", "", `{"name":"Ada"}`))

	resp := postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/leave", host.Token, `{}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("leave status %d", resp.StatusCode)
	}

	resp = postJSON(t, srv.URL+"/rooms/"+host.RoomCode+"/join", "", `{"name":"Grace"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("join after reap status %d", resp.StatusCode)
	}
}

func TestRoomQR(t *testing.T) {
	srv := newTestServer(t, nil)

	host := decodeJoin(t, postJSON(t, srv.URL+"/rooms", "", `{"name":"Ada"}`))

	resp, err := http.Get(srv.URL + "/rooms/" + host.RoomCode + "/qr")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	wins := &stubWins{entries: []leaderboard.Entry{
		{Name: "ada", Wins: 3},
		{Name: "grace", Wins: 1},
	}}
	srv := newTestServer(t, wins)

	resp, err := http.Get(srv.URL + "/leaderboard?n=1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var entries []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "ada" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestLeaderboardUnavailable(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/leaderboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
