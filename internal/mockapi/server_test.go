package mockapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ptjobs/internal/mockapi"
)

const (
	clientID     = "test-client"
	clientSecret = "test-secret"
)

func newServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv, err := mockapi.New(mockapi.Options{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		SigningKey:   []byte("test-signing-key"),
		BcryptCost:   bcrypt.MinCost,
		PageSize:     2,
		Registry:     reg,
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, reg
}

func call(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	} else if len(raw) > 0 && raw[0] == '[' {
		var items []any
		if err := json.Unmarshal(raw, &items); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
		out["items"] = items
	}
	return resp.StatusCode, out
}

func login(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	code, body := call(t, ts, http.MethodPost, "/o/token/", "", map[string]string{
		"username": username, "password": "password123",
		"client_id": clientID, "client_secret": clientSecret, "grant_type": "password",
	})
	if code != http.StatusOK {
		t.Fatalf("token for %s: %d %v", username, code, body)
	}
	tok, _ := body["access_token"].(string)
	if tok == "" {
		t.Fatalf("no access_token in %v", body)
	}
	return tok
}

func TestToken(t *testing.T) {
	ts, _ := newServer(t)

	tests := map[string]struct {
		body map[string]string
		code int
		err  string
	}{
		"bad client": {
			body: map[string]string{"username": "alice", "password": "password123", "client_id": clientID, "client_secret": "nope", "grant_type": "password"},
			code: http.StatusUnauthorized,
			err:  "invalid_client",
		},
		"bad password": {
			body: map[string]string{"username": "alice", "password": "nope", "client_id": clientID, "client_secret": clientSecret, "grant_type": "password"},
			code: http.StatusBadRequest,
			err:  "invalid_grant",
		},
		"unknown user": {
			body: map[string]string{"username": "zed", "password": "password123", "client_id": clientID, "client_secret": clientSecret, "grant_type": "password"},
			code: http.StatusBadRequest,
			err:  "invalid_grant",
		},
		"wrong grant": {
			body: map[string]string{"username": "alice", "password": "password123", "client_id": clientID, "client_secret": clientSecret, "grant_type": "client_credentials"},
			code: http.StatusBadRequest,
			err:  "unsupported_grant_type",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			code, body := call(t, ts, http.MethodPost, "/o/token/", "", tc.body)
			if code != tc.code || body["error"] != tc.err {
				t.Fatalf("got %d %v, want %d %s", code, body, tc.code, tc.err)
			}
		})
	}
}

func TestToken_FormEncoded(t *testing.T) {
	ts, _ := newServer(t)
	form := url.Values{
		"username":      {"jollibee"},
		"password":      {"password123"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"grant_type":    {"password"},
	}
	resp, err := ts.Client().Post(ts.URL+"/o/token/", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestCurrentUser(t *testing.T) {
	ts, _ := newServer(t)

	if code, _ := call(t, ts, http.MethodGet, "/users/current-user/", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("anonymous current-user = %d", code)
	}
	if code, _ := call(t, ts, http.MethodGet, "/users/current-user/", "garbage", nil); code != http.StatusUnauthorized {
		t.Fatalf("garbage token = %d", code)
	}

	tok := login(t, ts, "jollibee")
	code, body := call(t, ts, http.MethodGet, "/users/current-user/", tok, nil)
	if code != http.StatusOK || body["username"] != "jollibee" || body["role"] != "COMPANY" || body["name"] != "Jollibee VN" {
		t.Fatalf("current-user = %d %v", code, body)
	}
	if _, leaked := body["password"]; leaked {
		t.Fatal("password leaked in profile")
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ts, _ := newServer(t)

	code, body := call(t, ts, http.MethodPost, "/users/", "", map[string]string{
		"username": "chi", "password": "password123", "role": "CANDIDATE", "first_name": "Chi",
	})
	if code != http.StatusCreated || body["username"] != "chi" {
		t.Fatalf("register = %d %v", code, body)
	}
	if _, ok := body["token"]; ok {
		t.Fatal("register must not hand out a token")
	}

	code, body = call(t, ts, http.MethodPost, "/users/", "", map[string]string{
		"username": "chi", "password": "x", "role": "CANDIDATE",
	})
	if code != http.StatusBadRequest || body["username"] == nil {
		t.Fatalf("duplicate register = %d %v", code, body)
	}

	code, body = call(t, ts, http.MethodPost, "/users/", "", map[string]string{
		"username": "dan", "password": "x", "role": "ADMIN",
	})
	if code != http.StatusBadRequest || body["role"] == nil {
		t.Fatalf("bad role register = %d %v", code, body)
	}

	login(t, ts, "chi")
}

func TestRolePermissions(t *testing.T) {
	ts, _ := newServer(t)
	candidate := login(t, ts, "alice")
	company := login(t, ts, "jollibee")

	post := map[string]any{"name": "Dishwasher", "description": "Evenings", "salary": "30000", "vacancy": 1, "category": 1}
	if code, _ := call(t, ts, http.MethodPost, "/jobposts/", candidate, post); code != http.StatusForbidden {
		t.Fatalf("candidate posting job = %d", code)
	}
	code, body := call(t, ts, http.MethodPost, "/jobposts/", company, post)
	if code != http.StatusCreated || body["company"] != float64(1) {
		t.Fatalf("company posting job = %d %v", code, body)
	}
	newJob := body["id"]

	if code, _ := call(t, ts, http.MethodPost, "/applications/", company, map[string]any{"job_post": newJob, "resume": 1}); code != http.StatusForbidden {
		t.Fatalf("company applying = %d", code)
	}
	code, body = call(t, ts, http.MethodPost, "/applications/", candidate, map[string]any{"job_post": newJob, "resume": 1})
	if code != http.StatusCreated || body["status"] != "REVIEWING" {
		t.Fatalf("candidate applying = %d %v", code, body)
	}
	if code, _ := call(t, ts, http.MethodPost, "/applications/", candidate, map[string]any{"job_post": newJob, "resume": 1}); code != http.StatusBadRequest {
		t.Fatalf("duplicate application = %d", code)
	}
	if code, _ := call(t, ts, http.MethodPost, "/applications/", candidate, map[string]any{"job_post": newJob, "resume": 2}); code != http.StatusBadRequest {
		t.Fatalf("someone else's resume = %d", code)
	}

	if code, _ := call(t, ts, http.MethodPost, "/following/", company, map[string]any{"company": 2}); code != http.StatusForbidden {
		t.Fatalf("company following = %d", code)
	}
}

func TestFollowLifecycle(t *testing.T) {
	ts, _ := newServer(t)
	tok := login(t, ts, "alice")

	code, body := call(t, ts, http.MethodPost, "/following/", tok, map[string]any{"company": 2})
	if code != http.StatusCreated {
		t.Fatalf("follow = %d %v", code, body)
	}
	id := int(body["id"].(float64))
	path := "/following/" + strconv.Itoa(id) + "/"

	if code, _ := call(t, ts, http.MethodGet, path, tok, nil); code != http.StatusOK {
		t.Fatalf("get follow = %d", code)
	}
	other := login(t, ts, "binh")
	if code, _ := call(t, ts, http.MethodDelete, path, other, nil); code != http.StatusNotFound {
		t.Fatalf("unfollow by stranger = %d", code)
	}
	if code, _ := call(t, ts, http.MethodDelete, path, tok, nil); code != http.StatusNoContent {
		t.Fatalf("unfollow = %d", code)
	}
	if code, _ := call(t, ts, http.MethodDelete, path, tok, nil); code != http.StatusNotFound {
		t.Fatalf("second unfollow = %d", code)
	}
}

func TestPagination(t *testing.T) {
	ts, _ := newServer(t)
	tok := login(t, ts, "alice")

	code, body := call(t, ts, http.MethodGet, "/jobposts/", tok, nil)
	if code != http.StatusOK || body["count"] != float64(3) || body["next"] == nil || body["previous"] != nil {
		t.Fatalf("page 1 = %d %v", code, body)
	}
	if n := len(body["results"].([]any)); n != 2 {
		t.Fatalf("page 1 has %d results", n)
	}
	code, body = call(t, ts, http.MethodGet, "/jobposts/?page=2", tok, nil)
	if code != http.StatusOK || body["next"] != nil || body["previous"] == nil {
		t.Fatalf("page 2 = %d %v", code, body)
	}
	if code, _ := call(t, ts, http.MethodGet, "/jobposts/?page=9", tok, nil); code != http.StatusNotFound {
		t.Fatalf("page 9 = %d", code)
	}

	code, body = call(t, ts, http.MethodGet, "/jobposts/?q=barista", tok, nil)
	if code != http.StatusOK || body["count"] != float64(1) {
		t.Fatalf("search = %d %v", code, body)
	}
	code, body = call(t, ts, http.MethodGet, "/jobposts/?company_id=1", tok, nil)
	if code != http.StatusOK || body["count"] != float64(2) {
		t.Fatalf("company filter = %d %v", code, body)
	}
}

func TestApplicationVisibility(t *testing.T) {
	ts, _ := newServer(t)

	_, body := call(t, ts, http.MethodGet, "/applications/", login(t, ts, "alice"), nil)
	if body["count"] != float64(2) {
		t.Fatalf("alice sees %v applications", body["count"])
	}
	_, body = call(t, ts, http.MethodGet, "/applications/", login(t, ts, "highlands"), nil)
	if body["count"] != float64(2) {
		t.Fatalf("highlands sees %v applications", body["count"])
	}
	if code, _ := call(t, ts, http.MethodGet, "/applications/1/", login(t, ts, "binh"), nil); code != http.StatusNotFound {
		t.Fatalf("binh reading alice's application = %d", code)
	}
}

func TestMetricsAndNotFound(t *testing.T) {
	ts, reg := newServer(t)
	tok := login(t, ts, "alice")

	if code, body := call(t, ts, http.MethodGet, "/jobposts/999/", tok, nil); code != http.StatusNotFound || body["detail"] != "Not found." {
		t.Fatalf("missing post = %d %v", code, body)
	}
	if code, _ := call(t, ts, http.MethodGet, "/nowhere/", tok, nil); code != http.StatusNotFound {
		t.Fatalf("unknown route = %d", code)
	}

	n, err := testutil.GatherAndCount(reg, "ptjobs_mockapi_requests_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if n < 2 {
		t.Fatalf("request series = %d, want at least 2", n)
	}

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), `ptjobs_mockapi_requests_total{code="200",method="POST",route="/o/token/"} 1`) {
		t.Fatalf("metrics output missing token counter:\n%s", raw)
	}
}

func TestParseSeed_RejectsDanglingReferences(t *testing.T) {
	_, err := mockapi.ParseSeed([]byte(`
users:
  - {id: 1, username: x, password: y, role: COMPANY, company: 9}
`))
	if err == nil {
		t.Fatal("want error for unknown company")
	}
	if _, err := mockapi.DefaultSeed(); err != nil {
		t.Fatalf("embedded seed: %v", err)
	}
}
