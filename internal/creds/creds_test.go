package creds

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KAGGLE_USERNAME", "KAGGLE_KEY", "KAGGLE_API_TOKEN", "KAGGLE_MCP_TOKEN", "KAGGLE_TOKEN"} {
		t.Setenv(key, "")
	}
}

func writeKaggleJSON(t *testing.T, home, username, key string) {
	t.Helper()
	dir := filepath.Join(home, ".kaggle")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	payload := fmt.Sprintf(`{"username":%q,"key":%q}`, username, key)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kaggle.json"), []byte(payload), 0o600))
}

const legacyKey = "0123456789abcdef0123456789abcdef"

func TestResolvePriorityOrder(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	r := Resolver{HomeDir: home}

	t.Setenv("KAGGLE_API_TOKEN", "KGAT_envtoken1234")
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", legacyKey)
	writeKaggleJSON(t, home, "alice", legacyKey)

	set, src, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, SourceEnvToken, src)
	assert.Equal(t, KindScoped, set.Kind())
	assert.Equal(t, "KGAT_envtoken1234", set.ScopedToken)
}

func TestResolveSkipsIncompleteHigherPriority(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	r := Resolver{HomeDir: home}

	// Username alone is not a usable set; the complete kaggle.json below
	// must win even though the env pair source ranks higher.
	t.Setenv("KAGGLE_USERNAME", "alice")
	writeKaggleJSON(t, home, "bob", legacyKey)

	set, src, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, SourceJSONFile, src)
	assert.Equal(t, "bob", set.Username)
	assert.Equal(t, legacyKey, set.LegacyKey)
}

func TestResolveTokenFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	dir := filepath.Join(home, ".kaggle")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api_token"), []byte("KGAT_filetoken99\n"), 0o600))

	set, src, err := Resolver{HomeDir: home}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, SourceTokenFile, src)
	assert.Equal(t, "KGAT_filetoken99", set.ScopedToken)
}

func TestResolveMCPTokenOverridesAPIToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", "KGAT_regular")
	t.Setenv("KAGGLE_MCP_TOKEN", "KGAT_override")

	set, _, err := Resolver{HomeDir: t.TempDir()}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "KGAT_override", set.ScopedToken)
}

func TestResolveNotFound(t *testing.T) {
	clearEnv(t)
	_, _, err := Resolver{HomeDir: t.TempDir()}.Resolve()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveRejectsNonScopedEnvToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAGGLE_API_TOKEN", "not-a-scoped-token")
	_, _, err := Resolver{HomeDir: t.TempDir()}.Resolve()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAliasWarningIsDiagnosticOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAGGLE_TOKEN", legacyKey)

	var warned []string
	r := Resolver{
		HomeDir: t.TempDir(),
		Warnf:   func(format string, args ...any) { warned = append(warned, fmt.Sprintf(format, args...)) },
	}
	_, _, err := r.Resolve()
	assert.ErrorIs(t, err, ErrNotFound, "alias must not be auto-repaired into a credential slot")
	require.Len(t, warned, 1)
	assert.Contains(t, warned[0], "KAGGLE_TOKEN")
}

func TestAlternate(t *testing.T) {
	both := Set{Username: "alice", LegacyKey: legacyKey, ScopedToken: "KGAT_tok"}
	alt, ok := both.Alternate()
	require.True(t, ok)
	assert.Equal(t, KindLegacy, alt.Kind())

	onlyLegacy := Set{Username: "alice", LegacyKey: legacyKey}
	_, ok = onlyLegacy.Alternate()
	assert.False(t, ok)

	identical := Set{LegacyKey: "same", ScopedToken: "same"}
	_, ok = identical.Alternate()
	assert.False(t, ok, "two identical alternates mean no real alternate")
}

func TestUsable(t *testing.T) {
	assert.False(t, Set{Username: "alice"}.Usable())
	assert.True(t, Set{LegacyKey: legacyKey}.Usable())
	assert.True(t, Set{ScopedToken: "KGAT_x12345"}.Usable())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", Mask("", 0))
	assert.Equal(t, "****", Mask("abcd", 0))
	masked := Mask(legacyKey, 0)
	assert.Equal(t, len(legacyKey), len(masked))
	assert.Equal(t, "cdef", masked[len(masked)-4:])
	assert.NotContains(t, masked[:len(masked)-4], "a")

	token := "KGAT_secretsecretsecret"
	masked = Mask(token, 5)
	assert.Equal(t, "KGAT_", masked[:5])
	assert.Equal(t, token[len(token)-4:], masked[len(masked)-4:])
}

func TestEnsureKaggleJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".kaggle")

	created, err := EnsureKaggleJSON(dir, "alice", legacyKey)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(filepath.Join(dir, "kaggle.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	doc, err := ReadKaggleJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Username)

	created, err = EnsureKaggleJSON(dir, "other", "otherkey")
	require.NoError(t, err)
	assert.False(t, created, "existing file must never be overwritten")
	doc, err = ReadKaggleJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Username)
}

func TestCheckKaggleJSONMode(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".kaggle")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kaggle.json"), []byte(`{}`), 0o644))

	loose, mode := CheckKaggleJSONMode(dir)
	assert.True(t, loose)
	assert.Equal(t, os.FileMode(0o644), mode)
}

func TestBuildReport(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	writeKaggleJSON(t, home, "alice", legacyKey)
	t.Setenv("KAGGLE_API_TOKEN", "KGAT_secretsecretsecret")

	rep := Resolver{HomeDir: home}.BuildReport()
	assert.True(t, rep.AllOK())
	assert.Equal(t, 3, rep.Found())
	assert.Equal(t, "kaggle.json", rep.Username.Source)
	assert.Equal(t, "kaggle.json", rep.Legacy.Source)
	assert.Equal(t, "env", rep.Scoped.Source)
	assert.NotContains(t, rep.Legacy.Value, legacyKey[:8], "report must never carry raw secrets")
}

func TestIsLegacyKey(t *testing.T) {
	assert.True(t, IsLegacyKey(legacyKey))
	assert.False(t, IsLegacyKey("KGAT_0123456789abcdef0123456789"))
	assert.False(t, IsLegacyKey("zzzz6789abcdef0123456789abcdef00"[:31]))
	assert.False(t, IsLegacyKey("0123456789abcdef0123456789abcdeg"))
}
