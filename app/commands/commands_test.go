package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpboard/app/models"
	"helpboard/app/repositories"
	"helpboard/app/services"
)

var testNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func init() {
	color.NoColor = true
}

// run executes one CLI invocation against a badger store in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	clock := testNow
	root, a := newRootCommand(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})
	defer a.close()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--backend", "badger", "--data-dir", dir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	require.NoError(t, err, out)
	return out
}

var idPattern = regexp.MustCompile(`#(\d+)`)

func TestVersion(t *testing.T) {
	out := mustRun(t, t.TempDir(), "version")
	assert.Equal(t, "helpboard version "+cliVersion+"\n", out)
}

func TestAuthCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "register", "--name", "Bob", "--email", "bob@example.com", "--password", "abc")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.EqualError(t, err, "Password must be at least 6 characters")

	out := mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Not logged in")

	out = mustRun(t, dir, "register", "--name", "Alice", "--email", "Alice@Example.com", "--password", "secret1")
	assert.Contains(t, out, "Welcome, Alice!")

	out = mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Alice <alice@example.com>")

	mustRun(t, dir, "logout")
	_, err = run(t, dir, "login", "--email", "alice@example.com", "--password", "wrong1")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	out = mustRun(t, dir, "login", "--email", "alice@example.com", "--password", "secret1")
	assert.Contains(t, out, "Logged in as Alice")
}

func TestPostCommandsRequireLogin(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "post", "new", "--name", "A", "--category", "home", "--description", "d", "--contact", "c")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	_, err = run(t, dir, "posts")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	_, err = run(t, dir, "stats")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	out := mustRun(t, dir, "categories")
	assert.Contains(t, out, "washing    Washing and Settings")
}

func TestPostLifecycleCommands(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "register", "--name", "Alice", "--email", "alice@example.com", "--password", "secret1")

	out := mustRun(t, dir, "post", "new", "--name", "Alice", "--category", "home", "--description", "need groceries", "--contact", "555-1111")
	assert.Contains(t, out, services.MsgCreated)
	match := idPattern.FindStringSubmatch(out)
	require.Len(t, match, 2)
	id := match[1]

	_, err := run(t, dir, "post", "new", "--name", "Alice")
	assert.ErrorIs(t, err, models.ErrValidation)

	out = mustRun(t, dir, "post", "edit", id, "--description", "need milk")
	assert.Contains(t, out, services.MsgUpdated)

	out = mustRun(t, dir, "posts", "--search", "MILK")
	assert.Contains(t, out, "need milk")
	assert.Contains(t, out, "555-1111")
	assert.Contains(t, out, "Active: 1  Closed: 0  Helped: 0  Community: 11")

	out = mustRun(t, dir, "posts", "--category", "care")
	assert.Contains(t, out, "No posts yet.")

	out = mustRun(t, dir, "post", "close", id)
	assert.Contains(t, out, services.MsgClosed)
	out = mustRun(t, dir, "post", "close", id)
	assert.Contains(t, out, "already closed")

	_, err = run(t, dir, "post", "edit", id, "--name", "Bob")
	assert.ErrorIs(t, err, repositories.ErrPostClosed)

	_, err = run(t, dir, "post", "delete", id)
	assert.EqualError(t, err, "Are you sure you want to delete this closed request? Re-run with --yes")
	out = mustRun(t, dir, "posts")
	assert.Contains(t, out, "need milk")

	out = mustRun(t, dir, "post", "delete", id, "--yes")
	assert.Contains(t, out, services.MsgDeleted)
	_, err = run(t, dir, "post", "delete", id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = run(t, dir, "post", "delete", id, "--yes")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	out = mustRun(t, dir, "stats")
	assert.Contains(t, out, "Active: 0  Closed: 1  Helped: 1  Community: 11")

	_, err = run(t, dir, "post", "close", "abc")
	assert.EqualError(t, err, `invalid post id "abc"`)
}

func TestBackupRestoreClean(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(t.TempDir(), "board.bak")
	mustRun(t, dir, "register", "--name", "Alice", "--email", "alice@example.com", "--password", "secret1")
	mustRun(t, dir, "post", "new", "--name", "Alice", "--category", "care", "--description", "ride", "--contact", "555")

	out := mustRun(t, dir, "backup", backup)
	assert.Contains(t, out, "Backup written to "+backup)
	assert.FileExists(t, backup+checksumSuffix)

	_, err := run(t, dir, "clean")
	assert.Error(t, err)
	mustRun(t, dir, "clean", "--yes")
	out = mustRun(t, dir, "whoami")
	assert.Contains(t, out, "Not logged in")

	out = mustRun(t, dir, "restore", backup)
	assert.Contains(t, out, "Restored 1 posts")
	out = mustRun(t, dir, "posts")
	assert.Contains(t, out, "ride")

	require.NoError(t, os.WriteFile(backup+checksumSuffix, []byte("00  board.bak\n"), 0o644))
	_, err = run(t, dir, "restore", backup)
	assert.ErrorIs(t, err, errChecksumMismatch)
	mustRun(t, dir, "restore", "--skip-verify", backup)
}

func TestBackupFromMemoryBackend(t *testing.T) {
	root, a := newRootCommand(nil)
	defer a.close()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--backend", "memory", "backup", filepath.Join(t.TempDir(), "x.bak")})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Backup written")
}
