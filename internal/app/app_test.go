package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fate-inyeon/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Config{
		App:   config.AppConfig{AppName: "fate-inyeon-test", Environment: "test", HTTPPort: "0", ClientURL: "http://localhost:5173"},
		JWT:   config.JWTConfig{Secret: "test-secret", SignupExpiresIn: time.Hour, LoginExpiresIn: 12 * time.Hour},
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Redis: config.RedisConfig{PairLockTTL: time.Second},
	}
	a, cleanup, err := Bootstrap(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	return &testServer{t: t, app: a}
}

func (s *testServer) do(method, path, token string, body any) (int, []byte) {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.app.Fiber.Test(req)
	require.NoError(s.t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(s.t, err)
	return res.StatusCode, raw
}

func (s *testServer) decode(raw []byte, out any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(raw, out), string(raw))
}

func (s *testServer) signup(email string) string {
	s.t.Helper()
	status, raw := s.do(http.MethodPost, "/api/users/signup", "", map[string]string{"email": email, "password": "correct-horse"})
	require.Equal(s.t, http.StatusOK, status, string(raw))

	var out struct {
		Token string `json:"token"`
	}
	s.decode(raw, &out)
	require.NotEmpty(s.t, out.Token)
	return out.Token
}

type profileBody struct {
	ID          string   `json:"_id"`
	AccountID   string   `json:"accountId"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Likes       []string `json:"likes"`
	Dislikes    []string `json:"dislikes"`
	Preferences struct {
		Gender string `json:"gender"`
		Age    [2]int `json:"age"`
	} `json:"preferences"`
}

func (s *testServer) newProfile(token, name, gender, prefGender string) profileBody {
	s.t.Helper()
	status, raw := s.do(http.MethodPost, "/api/users/new-profile", token, map[string]any{
		"name":        name,
		"gender":      gender,
		"birthday":    "1995-06-01",
		"location":    "Seoul",
		"preferences": map[string]any{"gender": prefGender, "age": []int{20, 40}},
	})
	require.Equal(s.t, http.StatusOK, status, string(raw))

	var p profileBody
	s.decode(raw, &p)
	return p
}

func (s *testServer) candidateIDs(token string) []string {
	s.t.Helper()
	status, raw := s.do(http.MethodGet, "/api/candidates", token, nil)
	require.Equal(s.t, http.StatusOK, status, string(raw))

	var list []profileBody
	s.decode(raw, &list)
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.AccountID)
	}
	return ids
}

type likeBody struct {
	Message string `json:"message"`
	Match   *struct {
		Profile1 string `json:"profile1"`
		Profile2 string `json:"profile2"`
	} `json:"match"`
}

func (s *testServer) like(token, candidateID string) likeBody {
	s.t.Helper()
	status, raw := s.do(http.MethodPost, "/api/candidates/like/"+candidateID, token, nil)
	require.Equal(s.t, http.StatusOK, status, string(raw))

	var out likeBody
	s.decode(raw, &out)
	return out
}

type matchBody struct {
	ID       string    `json:"_id"`
	Profiles [2]string `json:"profiles"`
}

func (s *testServer) matches(token string) []matchBody {
	s.t.Helper()
	status, raw := s.do(http.MethodGet, "/api/matches", token, nil)
	require.Equal(s.t, http.StatusOK, status, string(raw))

	var out []matchBody
	s.decode(raw, &out)
	return out
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out.Error
}

func TestMatchLifecycle(t *testing.T) {
	s := newTestServer(t)

	tokA := s.signup("a@example.com")
	tokB := s.signup("b@example.com")
	tokC := s.signup("c@example.com")
	a := s.newProfile(tokA, "Alice", "Female", "Male")
	b := s.newProfile(tokB, "Bob", "Male", "Female")
	c := s.newProfile(tokC, "Carol", "Female", "Female")

	assert.Contains(t, s.candidateIDs(tokA), b.AccountID)
	assert.NotContains(t, s.candidateIDs(tokA), c.AccountID)
	assert.NotContains(t, s.candidateIDs(tokA), a.AccountID)

	first := s.like(tokA, b.AccountID)
	assert.Equal(t, "Liked candidate successfully", first.Message)
	assert.Nil(t, first.Match)
	assert.NotContains(t, s.candidateIDs(tokA), b.AccountID)
	assert.Empty(t, s.matches(tokA))

	again := s.like(tokA, b.AccountID)
	assert.Equal(t, "Candidate already liked", again.Message)

	found := s.like(tokB, a.AccountID)
	assert.Equal(t, "Match found", found.Message)
	require.NotNil(t, found.Match)
	assert.Equal(t, "Bob", found.Match.Profile1)
	assert.Equal(t, "Alice", found.Match.Profile2)

	for _, tok := range []string{tokA, tokB} {
		ms := s.matches(tok)
		require.Len(t, ms, 1)
		assert.Equal(t, []string{b.AccountID, a.AccountID}, ms[0].Profiles[:])
	}
	assert.Empty(t, s.matches(tokC))
	matchID := s.matches(tokA)[0].ID

	status, raw := s.do(http.MethodDelete, "/api/matches/unmatch/"+matchID, tokC, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not part of this match", errorMessage(t, raw))

	status, raw = s.do(http.MethodDelete, "/api/matches/unmatch/"+matchID, tokA, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, `{"message":"Match unmatched successfully"}`, string(raw))
	assert.Empty(t, s.matches(tokB))

	status, raw = s.do(http.MethodDelete, "/api/matches/unmatch/"+matchID, tokA, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Match not found", errorMessage(t, raw))

	status, raw = s.do(http.MethodGet, "/api/users/my-profile", tokA, nil)
	require.Equal(t, http.StatusOK, status)
	var me profileBody
	s.decode(raw, &me)
	assert.NotContains(t, me.Likes, b.AccountID)
	assert.Contains(t, s.candidateIDs(tokA), b.AccountID)
}

func TestDislike(t *testing.T) {
	s := newTestServer(t)

	tokA := s.signup("a@example.com")
	tokB := s.signup("b@example.com")
	s.newProfile(tokA, "Alice", "Female", "Male")
	b := s.newProfile(tokB, "Bob", "Male", "Female")

	s.like(tokA, b.AccountID)

	status, raw := s.do(http.MethodPost, "/api/candidates/dislike/"+b.AccountID, tokA, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, `{"message":"Disliked candidate successfully"}`, string(raw))

	status, raw = s.do(http.MethodPost, "/api/candidates/dislike/"+b.AccountID, tokA, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.JSONEq(t, `{"message":"Candidate already disliked"}`, string(raw))

	status, raw = s.do(http.MethodGet, "/api/users/my-profile", tokA, nil)
	require.Equal(t, http.StatusOK, status)
	var me profileBody
	s.decode(raw, &me)
	assert.Empty(t, me.Likes)
	assert.Equal(t, []string{b.AccountID}, me.Dislikes)
	assert.NotContains(t, s.candidateIDs(tokA), b.AccountID)
}

func TestLikeErrors(t *testing.T) {
	s := newTestServer(t)

	tokA := s.signup("a@example.com")
	a := s.newProfile(tokA, "Alice", "Female", "Male")

	status, raw := s.do(http.MethodPost, "/api/candidates/like/ghost", tokA, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Candidate not found", errorMessage(t, raw))

	status, _ = s.do(http.MethodPost, "/api/candidates/like/"+a.AccountID, tokA, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	tokB := s.signup("b@example.com")
	status, raw = s.do(http.MethodGet, "/api/candidates", tokB, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Profile not found", errorMessage(t, raw))
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	s.signup("dup@example.com")

	status, raw := s.do(http.MethodPost, "/api/users/signup", "", map[string]string{"email": "DUP@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "User already exists", errorMessage(t, raw))

	status, raw = s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": "dup@example.com", "password": "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", errorMessage(t, raw))

	status, raw = s.do(http.MethodPost, "/api/users/login", "", map[string]string{"email": "dup@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"token"`)

	status, raw = s.do(http.MethodPost, "/api/users/signup", "", map[string]string{"email": "not-an-email", "password": "correct-horse"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "email must be a valid email", errorMessage(t, raw))

	status, raw = s.do(http.MethodGet, "/api/candidates", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", errorMessage(t, raw))

	status, raw = s.do(http.MethodGet, "/api/matches", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", errorMessage(t, raw))
}

func TestProfileEndpoints(t *testing.T) {
	s := newTestServer(t)
	tok := s.signup("p@example.com")

	status, raw := s.do(http.MethodGet, "/api/users/my-profile", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Profile not found", errorMessage(t, raw))

	status, raw = s.do(http.MethodPut, "/api/users/edit-profile", tok, map[string]any{"name": "Nobody"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Profile not found", errorMessage(t, raw))

	status, raw = s.do(http.MethodPost, "/api/users/new-profile", tok, map[string]any{
		"gender":      "Male",
		"preferences": map[string]any{"gender": "Female"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name is required", errorMessage(t, raw))

	status, raw = s.do(http.MethodPost, "/api/users/new-profile", tok, map[string]any{
		"name":        "Pat",
		"gender":      "Male",
		"preferences": map[string]any{"gender": "Female", "age": []int{40, 20}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "preferences.age must be [min, max] with min <= max", errorMessage(t, raw))

	created := s.newProfile(tok, "Pat", "Male", "Female")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, [2]int{20, 40}, created.Preferences.Age)
	assert.Positive(t, created.Age)

	status, raw = s.do(http.MethodPost, "/api/users/new-profile", tok, map[string]any{
		"name": "Pat", "gender": "Male", "preferences": map[string]any{"gender": "Female"},
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Profile already exists", errorMessage(t, raw))

	status, raw = s.do(http.MethodPut, "/api/users/edit-profile", tok, map[string]any{
		"name":  "Patrick",
		"likes": []string{"someone"},
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	var edited profileBody
	s.decode(raw, &edited)
	assert.Equal(t, "Patrick", edited.Name)
	assert.Equal(t, "Male", edited.Gender)
	assert.Equal(t, "Female", edited.Preferences.Gender)
	assert.Empty(t, edited.Likes)
	assert.Equal(t, created.ID, edited.ID)
}

func TestOpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"status":"ok"`)

	status, raw = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "go_goroutines")

	status, raw = s.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", errorMessage(t, raw))

	status, _ = s.do(http.MethodGet, "/ws", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(":9090")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	_, err = ListenAddr(" ")
	assert.Error(t, err)
}
