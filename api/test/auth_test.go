package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	"github.com/ridgeline-motors/dealership/api"
	"github.com/ridgeline-motors/dealership/core/account"
	"github.com/ridgeline-motors/dealership/rate"
	"github.com/sirupsen/logrus"
)

type authTest struct {
	*TestEnv
}

func TestAuth(t *testing.T) {
	env, err := NewTestEnv(t, "auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	at := &authTest{env}

	// No session, no account.
	w, err := env.Client().Get(env.URL + "/accounts/current")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %s", w.Status)
	}

	// Passwords below twelve characters are rejected.
	at.signup(t, account.AccountNew{
		FirstName: "Pat", LastName: "Shopper",
		Email: "pat@test.com", Password: "short",
	}, http.StatusUnprocessableEntity)

	a := at.signupOK(t, account.AccountNew{
		FirstName: "Pat", LastName: "Shopper",
		Email: "pat@test.com", Password: "a-long-enough-password",
	})
	if a.Role != "Client" {
		t.Fatalf("expected new signups to be Clients, got %q", a.Role)
	}

	// Signup logs the account in.
	var current account.Account
	at.currentOK(t, &current)
	if current.Email != "pat@test.com" {
		t.Fatalf("expected current account pat@test.com, got %q", current.Email)
	}

	if err := Logout(env.Server); err != nil {
		t.Fatal(err)
	}

	// The email is now taken.
	at.signup(t, account.AccountNew{
		FirstName: "Copy", LastName: "Cat",
		Email: "pat@test.com", Password: "another-long-password",
	}, http.StatusUnprocessableEntity)

	// Wrong credentials map to 401 either way.
	if err := Login(env.Server, "pat@test.com", "wrong-password-here"); err == nil {
		t.Fatal("login with wrong password should fail")
	}
	if err := Login(env.Server, "nobody@test.com", "whatever-password"); err == nil {
		t.Fatal("login with unknown email should fail")
	}

	if err := Login(env.Server, "pat@test.com", "a-long-enough-password"); err != nil {
		t.Fatal(err)
	}
	at.currentOK(t, &current)

	if err := Logout(env.Server); err != nil {
		t.Fatal(err)
	}
	w, err = env.Client().Get(env.URL + "/accounts/current")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %s", w.Status)
	}
}

func TestLoginRateLimit(t *testing.T) {
	env, err := NewTestEnv(t, "ratelimit_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	// A dedicated server with a two-request budget so the third login
	// attempt from the same address trips the limiter.
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour
	session.Store = postgresstore.New(env.DB.DB)

	mux := api.APIMux(api.APIConfig{
		Log:     logger,
		DB:      env.DB,
		Session: session,
		Limiter: rate.NewLimiter(2, time.Hour, rate.Every(time.Minute)),
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	srv.Client().Jar = jar

	for i := 0; i < 2; i++ {
		if err := Login(srv, env.UserEmail, env.UserPass); err != nil {
			t.Fatalf("attempt %d should pass the limiter: %v", i, err)
		}
	}

	creds, err := json.Marshal(map[string]string{"email": env.UserEmail, "password": env.UserPass})
	if err != nil {
		t.Fatal(err)
	}
	w, err := srv.Client().Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(creds))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on the third attempt, got %s", w.Status)
	}
}

func (at *authTest) signupOK(t *testing.T, na account.AccountNew) account.Account {
	t.Helper()

	var a account.Account
	at.signupInto(t, na, http.StatusCreated, &a)
	return a
}

func (at *authTest) signup(t *testing.T, na account.AccountNew, wantStatus int) {
	t.Helper()
	at.signupInto(t, na, wantStatus, nil)
}

func (at *authTest) signupInto(t *testing.T, na account.AccountNew, wantStatus int, into *account.Account) {
	t.Helper()

	b, err := json.Marshal(na)
	if err != nil {
		t.Fatal(err)
	}

	w, err := at.Client().Post(at.URL+"/auth/signup", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != wantStatus {
		t.Fatalf("signup: expected status %d, got %s", wantStatus, w.Status)
	}

	if into != nil {
		if err := json.NewDecoder(w.Body).Decode(into); err != nil {
			t.Fatalf("decoding signup response: %v", err)
		}
	}
}

func (at *authTest) currentOK(t *testing.T, into *account.Account) {
	t.Helper()

	w, err := at.Client().Get(at.URL + "/accounts/current")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("fetching current account: status code %s", w.Status)
	}

	if err := json.NewDecoder(w.Body).Decode(into); err != nil {
		t.Fatalf("decoding current account: %v", err)
	}
}
