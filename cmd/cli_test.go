package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRendersPool(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 2")
	assert.Contains(t, stdout, "(acct-1)")
	assert.Contains(t, stdout, "session: none yet")
	assert.NotContains(t, stdout, "+573001234567", "handles are masked")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Account\"")
	assert.Contains(t, stdout, "\"ID\": \"acct-1\"")
}

func TestClaimRejectsMalformedCode(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")

	_, _, err := executeCLI(t, home, "claim", "too-long-to-be-a-code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a claim code")
}

func TestClaimHappyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/userlogin/":
			_, _ = fmt.Fprint(w, `{"code":"0","memInfo":{"memberID":"m-1","skey":"k-1"}}`)
		case "/getRedBag/":
			_, _ = fmt.Fprint(w, `{"code":"0","msg":"Congrats, bag is yours"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", server.URL)

	stdout, _, err := executeCLI(t, home, "claim", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "claimed by account acct-1")
	assert.Contains(t, stdout, "Congrats, bag is yours")
}

func TestClaimFailsWhenEveryAccountIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/userlogin/":
			_, _ = fmt.Fprint(w, `{"code":"0","memInfo":{"memberID":"m-1","skey":"k-1"}}`)
		case "/getRedBag/":
			_, _ = fmt.Fprint(w, `{"code":"9","msg":"bag already claimed"}`)
		}
	}))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", server.URL)

	_, _, err := executeCLI(t, home, "claim", "ABC123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bag already claimed")
}

func TestMissingBaseURLFailsEveryCommand(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "")

	_, _, err := executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url is required")
}

func TestMissingAccountsFileFailsWiring(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")

	_, _, err := executeCLI(t, home, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts configured")
}

func TestCredentialsJSONOverridesAccountsFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")
	t.Setenv("CREDENTIALS_JSON", `[{"username":"3009998877","password":"pw"}]`)

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 1")
	assert.NotContains(t, stdout, "acct-1")
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeAccountsFixture(home))
	t.Setenv("RBCLAIM_API_BASE_URL", "https://example.com/api")

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeAccountsFixture(home string) error {
	configDir := filepath.Join(home, ".rbclaim")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	accounts := `[[accounts]]
id = "acct-1"
handle = "+573001234567"
secret = "secret-one"

[[accounts]]
id = "acct-2"
handle = "+573007654321"
secret = "secret-two"
`

	return os.WriteFile(filepath.Join(configDir, "accounts.toml"), []byte(accounts), 0o644)
}
