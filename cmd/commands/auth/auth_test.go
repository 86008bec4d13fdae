package auth

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/donorlens/internal/config"
	"nathanbeddoewebdev/donorlens/internal/services/auth"
)

func setup(t *testing.T) *auth.MockStore {
	t.Helper()
	store := auth.NewMockStore()
	newStore = func() auth.Store { return store }
	t.Cleanup(func() { newStore = auth.DefaultStore })

	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	return store
}

func execAuth(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin_WithFlags(t *testing.T) {
	store := setup(t)

	out, err := execAuth(t, "login", "--token", " secret ", "--organization", "42")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Saved API token") || !strings.Contains(out, `"42"`) {
		t.Errorf("unexpected output: %s", out)
	}

	token, err := store.GetToken(auth.APIAccount)
	if err != nil || token != "secret" {
		t.Errorf("stored token = %q, %v", token, err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.OrganizationID != "42" {
		t.Errorf("OrganizationID = %q", cfg.OrganizationID)
	}
}

func TestStatus(t *testing.T) {
	store := setup(t)

	out, err := execAuth(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "token: not logged in") || !strings.Contains(out, "organization: not set") {
		t.Errorf("unexpected output: %s", out)
	}

	store.SetToken(auth.APIAccount, "tok")
	out, _ = execAuth(t, "status")
	if !strings.Contains(out, "token: logged in") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestLogout(t *testing.T) {
	store := setup(t)
	store.SetToken(auth.APIAccount, "tok")

	out, err := execAuth(t, "logout")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if !strings.Contains(out, "Removed API token") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := store.GetToken(auth.APIAccount); err == nil {
		t.Error("token still stored")
	}

	out, err = execAuth(t, "logout")
	if err != nil || !strings.Contains(out, "No API token stored") {
		t.Errorf("second logout = %q, %v", out, err)
	}
}
