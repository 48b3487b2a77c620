package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ridgeline-motors/dealership/core/account"
)

type accountTest struct {
	*TestEnv
}

func TestAccount(t *testing.T) {
	env, err := NewTestEnv(t, "account_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	at := &accountTest{env}

	if err := Login(env.Server, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}

	// Partial updates touch only the provided fields.
	first := "Cleopatra"
	updated := at.updateOK(t, account.AccountUp{FirstName: &first})
	if updated.FirstName != "Cleopatra" {
		t.Fatalf("expected updated first name, got %q", updated.FirstName)
	}
	if updated.Email != env.UserEmail {
		t.Fatalf("email should be untouched, got %q", updated.Email)
	}

	// Moving to another account's email is rejected.
	at.update(t, account.AccountUp{Email: &env.StaffEmail}, http.StatusUnprocessableEntity)

	// Keeping your own email is not a conflict.
	at.update(t, account.AccountUp{Email: &env.UserEmail}, http.StatusOK)

	// Password change takes effect on the next login.
	newPass := "a-brand-new-password"
	b, err := json.Marshal(account.PasswordUp{Password: newPass})
	if err != nil {
		t.Fatal(err)
	}
	r, err := http.NewRequest(http.MethodPut, env.URL+"/accounts/current/password", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")
	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("updating password: status code %s", w.Status)
	}

	if err := Logout(env.Server); err != nil {
		t.Fatal(err)
	}
	if err := Login(env.Server, env.UserEmail, env.UserPass); err == nil {
		t.Fatal("old password should no longer work")
	}
	if err := Login(env.Server, env.UserEmail, newPass); err != nil {
		t.Fatal(err)
	}
}

func (at *accountTest) updateOK(t *testing.T, up account.AccountUp) account.Account {
	t.Helper()

	var a account.Account
	at.updateInto(t, up, http.StatusOK, &a)
	return a
}

func (at *accountTest) update(t *testing.T, up account.AccountUp, wantStatus int) {
	t.Helper()
	at.updateInto(t, up, wantStatus, nil)
}

func (at *accountTest) updateInto(t *testing.T, up account.AccountUp, wantStatus int, into *account.Account) {
	t.Helper()

	b, err := json.Marshal(up)
	if err != nil {
		t.Fatal(err)
	}

	r, err := http.NewRequest(http.MethodPut, at.URL+"/accounts/current", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")

	w, err := at.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != wantStatus {
		t.Fatalf("updating account: expected status %d, got %s", wantStatus, w.Status)
	}

	if into != nil {
		if err := json.NewDecoder(w.Body).Decode(into); err != nil {
			t.Fatalf("decoding account: %v", err)
		}
	}
}
