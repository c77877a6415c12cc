package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/styledecor/styledecor-web/backend"
	"github.com/styledecor/styledecor-web/internal/config"
	"github.com/styledecor/styledecor-web/server"
)

// fakeBackend is an in-memory styleDecor REST API for driving the gateway
// end to end through httptest.
type fakeBackend struct {
	mu sync.Mutex

	// email -> password -> role
	accounts map[string]fakeAccount
	// token -> email
	tokens map[string]string
	// when set, every authenticated endpoint answers 401
	revokeAll bool
	// when set, /auth/jwt answers 503
	authDown bool

	created []map[string]string // bodies posted to /users
	// booking id -> price, served on GET /bookings/{id}
	bookingAmounts map[string]float64
	// amounts posted to /create-payment-intent, in cents
	intentAmounts []int64
}

type fakeAccount struct {
	password string
	role     string
	name     string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		accounts: map[string]fakeAccount{
			"admin@example.com": {password: "Admin1234", role: "admin", name: "Ada Admin"},
			"user@example.com":  {password: "User12345", role: "user", name: "Uma User"},
		},
		tokens:         map[string]string{},
		bookingAmounts: map[string]float64{},
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/jwt", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.authDown {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "service unavailable"})
			return
		}
		acct, ok := f.accounts[req.Email]
		if !ok || acct.password != req.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		token := "tok-" + req.Email
		f.tokens[token] = req.Email
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	})

	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		email, ok := f.identify(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		f.mu.Lock()
		acct := f.accounts[email]
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]string{"_id": "id-" + email, "email": email, "name": acct.name, "role": acct.role},
		})
	})

	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, req)
		if req["email"] != "" && req["password"] != "" {
			f.accounts[req["email"]] = fakeAccount{password: req["password"], role: "user", name: req["name"]}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]string{"_id": "id-" + req["email"], "email": req["email"], "name": req["name"], "role": "user"},
		})
	})

	mux.HandleFunc("GET /rooms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"_id": "room-1", "name": "Living Room Refresh", "category": "Home", "price": 249.0},
		})
	})

	mux.HandleFunc("GET /bookings", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.identify(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	mux.HandleFunc("GET /bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		email, ok := f.identify(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		id := r.PathValue("id")
		f.mu.Lock()
		amount, found := f.bookingAmounts[id]
		f.mu.Unlock()
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "booking not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": id, "roomName": "Living Room Refresh", "userEmail": email,
			"date": "2026-09-15", "status": "pending", "amount": amount, "paymentStatus": "unpaid",
		})
	})

	mux.HandleFunc("POST /create-payment-intent", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.identify(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		var req struct {
			Amount int64 `json:"amount"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.intentAmounts = append(f.intentAmounts, req.Amount)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"clientSecret": "cs_test"})
	})

	mux.HandleFunc("GET /admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.identify(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	mux.HandleFunc("GET /admin/decorators/pending", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := f.identify(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{})
	})

	return mux
}

func (f *fakeBackend) identify(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return "", false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.revokeAll {
		return "", false
	}
	email, ok := f.tokens[token]
	return email, ok
}

func (f *fakeBackend) revokeTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revokeAll = true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestGateway(t *testing.T) (*httptest.Server, *fakeBackend) {
	t.Helper()

	fake := newFakeBackend()
	backendSrv := httptest.NewServer(fake.handler())
	t.Cleanup(backendSrv.Close)

	gateway, err := server.New(config.New(), server.WithBackendClient(backend.New(backendSrv.URL)))
	require.NoError(t, err)

	gatewaySrv := httptest.NewServer(gateway)
	t.Cleanup(gatewaySrv.Close)
	return gatewaySrv, fake
}

// noRedirects stops the client so redirect targets can be asserted.
func noRedirects() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func login(t *testing.T, srv *httptest.Server, email, password, from string) *http.Response {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	if from != "" {
		form.Set("from", from)
	}
	resp, err := noRedirects().Post(srv.URL+"/auth/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "styledecor_token" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestDashboardGuards(t *testing.T) {
	srv, _ := newTestGateway(t)

	t.Run("unauthenticated visit redirects to login with destination", func(t *testing.T) {
		resp, err := noRedirects().Get(srv.URL + "/dashboard/admin")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/login", loc.Path)
		require.Equal(t, "/dashboard/admin", loc.Query().Get("from"))
	})

	t.Run("wrong role is sent to unauthorized, not the destination", func(t *testing.T) {
		resp := login(t, srv, "user@example.com", "User12345", "/dashboard/admin")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/unauthorized", loc.Path)
		require.Equal(t, "admin", loc.Query().Get("required"))
		require.Equal(t, "user", loc.Query().Get("actual"))
		require.Equal(t, "/dashboard/admin", loc.Query().Get("from"))
	})

	t.Run("right role lands on the preserved destination", func(t *testing.T) {
		resp := login(t, srv, "admin@example.com", "Admin1234", "/dashboard/admin/bookings")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/dashboard/admin/bookings", loc.Path)
	})

	t.Run("no destination falls back to the role dashboard", func(t *testing.T) {
		resp := login(t, srv, "admin@example.com", "Admin1234", "")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/dashboard/admin", loc.Path)
	})

	t.Run("cookie session reaches the protected page", func(t *testing.T) {
		loginResp := login(t, srv, "user@example.com", "User12345", "")
		cookie := sessionCookie(t, loginResp)

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard/user", nil)
		require.NoError(t, err)
		req.AddCookie(cookie)

		resp, err := noRedirects().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("off-site destinations are dropped", func(t *testing.T) {
		resp := login(t, srv, "user@example.com", "User12345", "https://evil.example.com/")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/dashboard/user", loc.Path)
	})
}

func TestLoginValidationAndRejection(t *testing.T) {
	srv, _ := newTestGateway(t)

	t.Run("missing fields never reach the backend", func(t *testing.T) {
		resp := login(t, srv, "user@example.com", "", "/dashboard/user")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/login", loc.Path)
		require.NotEmpty(t, loc.Query().Get("error"))
		require.Equal(t, "/dashboard/user", loc.Query().Get("from"), "destination survives the retry")
		require.Empty(t, resp.Cookies(), "no cookie on failure")
	})

	t.Run("rejected credentials return to login preserving email", func(t *testing.T) {
		resp := login(t, srv, "user@example.com", "wrong-password", "")

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/login", loc.Path)
		require.NotEmpty(t, loc.Query().Get("error"))
		require.Equal(t, "user@example.com", loc.Query().Get("email"))
	})
}

func TestLoginWhenBackendIsDown(t *testing.T) {
	srv, fake := newTestGateway(t)

	fake.mu.Lock()
	fake.authDown = true
	fake.mu.Unlock()

	// Credentials are correct; only the backend is failing.
	resp := login(t, srv, "user@example.com", "User12345", "")

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "/login", loc.Path)
	require.Equal(t, "The service is unavailable right now. Please try again.", loc.Query().Get("error"),
		"a backend failure must not be reported as wrong credentials")
	require.Empty(t, resp.Cookies())
}

func TestPaymentAmountRoundsToCents(t *testing.T) {
	srv, fake := newTestGateway(t)

	// 4.35 has no exact binary representation; 4.35 * 100 truncates to 434.
	fake.mu.Lock()
	fake.bookingAmounts["bk-1"] = 4.35
	fake.bookingAmounts["bk-2"] = 249.99
	fake.mu.Unlock()

	loginResp := login(t, srv, "user@example.com", "User12345", "")
	cookie := sessionCookie(t, loginResp)

	for _, id := range []string{"bk-1", "bk-2"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard/user/payment/"+id, nil)
		require.NoError(t, err)
		req.AddCookie(cookie)

		resp, err := noRedirects().Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	fake.mu.Lock()
	amounts := append([]int64(nil), fake.intentAmounts...)
	fake.mu.Unlock()
	require.Equal(t, []int64{435, 24999}, amounts)
}

func TestSessionExpiryMidUse(t *testing.T) {
	srv, fake := newTestGateway(t)

	loginResp := login(t, srv, "user@example.com", "User12345", "")
	cookie := sessionCookie(t, loginResp)

	// The backend starts rejecting the token between requests.
	fake.revokeTokens()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard/user", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := noRedirects().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "/login", loc.Path)

	cleared := sessionCookie(t, resp)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge, "cookie must be expired")
}

func TestLogout(t *testing.T) {
	srv, _ := newTestGateway(t)

	loginResp := login(t, srv, "user@example.com", "User12345", "")
	cookie := sessionCookie(t, loginResp)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/logout", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := noRedirects().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	cleared := sessionCookie(t, resp)
	require.Empty(t, cleared.Value)

	// The old cookie no longer opens protected pages.
	req2, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard/user", nil)
	require.NoError(t, err)
	req2.AddCookie(cookie)

	resp2, err := noRedirects().Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp2.StatusCode)
	loc, err := resp2.Location()
	require.NoError(t, err)
	require.Equal(t, "/login", loc.Path)
}

func TestSignupFlow(t *testing.T) {
	srv, fake := newTestGateway(t)

	form := url.Values{}
	form.Set("name", "New Customer")
	form.Set("email", "new@example.com")
	form.Set("password", "Str0ngPass")

	resp, err := noRedirects().Post(srv.URL+"/auth/signup", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	loc, err := resp.Location()
	require.NoError(t, err)
	require.Equal(t, "/dashboard/user", loc.Path, "fresh accounts land on the user dashboard")
	sessionCookie(t, resp)

	fake.mu.Lock()
	created := append([]map[string]string(nil), fake.created...)
	fake.mu.Unlock()
	require.Len(t, created, 1)
	require.Equal(t, "new@example.com", created[0]["email"])

	t.Run("weak password is rejected locally", func(t *testing.T) {
		weak := url.Values{}
		weak.Set("name", "Weak")
		weak.Set("email", "weak@example.com")
		weak.Set("password", "short")

		resp, err := noRedirects().Post(srv.URL+"/auth/signup", "application/x-www-form-urlencoded", strings.NewReader(weak.Encode()))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		loc, err := resp.Location()
		require.NoError(t, err)
		require.Equal(t, "/signup", loc.Path)
		require.NotEmpty(t, loc.Query().Get("error"))
	})
}

func TestPublicPages(t *testing.T) {
	srv, _ := newTestGateway(t)

	for _, path := range []string{"/", "/services", "/login", "/signup", "/healthz"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}
