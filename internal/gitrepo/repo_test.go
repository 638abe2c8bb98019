package gitrepo

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// setupTestRepo creates a temporary directory with an initialized Git
// repository containing a single tracked file.
//
// It configures a local user.name and user.email so that `git commit`
// works in CI environments where global git config may not be set.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "config", "user.name", "Test User")
	runTestGit(t, dir, "config", "commit.gpgsign", "false")

	tracked := filepath.Join(dir, "tracked.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("contents\n"), 0644))

	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

// runTestGit runs a git command in the specified directory and fails the
// test immediately if the command exits with a non-zero status.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
	return string(output)
}

func TestDiscover(t *testing.T) {
	dir := setupTestRepo(t)

	// Discovery from a subdirectory resolves to the top level.
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0755))

	repo, err := Discover(sub)
	require.NoError(t, err)

	// macOS tempdirs involve /private symlinks; compare resolved paths.
	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(repo.Root())
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
}

func TestDiscover_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Discover(dir)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

func TestExists(t *testing.T) {
	dir := setupTestRepo(t)
	repo := Open(dir)

	assert.True(t, repo.Exists("tracked.txt"))
	assert.False(t, repo.Exists("missing.txt"))
}

func TestWasDeleted(t *testing.T) {
	dir := setupTestRepo(t)
	repo := Open(dir)

	// A tracked file that is still present is not deleted.
	assert.False(t, repo.WasDeleted("tracked.txt"))

	// Remove the file from the working tree without staging the removal:
	// git now reports it under `ls-files --deleted`.
	require.NoError(t, os.Remove(filepath.Join(dir, "tracked.txt")))
	assert.True(t, repo.WasDeleted("tracked.txt"))

	// A file git never tracked is not "deleted" either.
	assert.False(t, repo.WasDeleted("never-existed.txt"))
}

func TestWasDeleted_QueryErrorMeansFalse(t *testing.T) {
	// Pointing the repo at a directory that is not a repository makes the
	// git query fail; the oracle must answer false, not propagate.
	repo := Open(t.TempDir())
	assert.False(t, repo.WasDeleted("anything.txt"))
}

func TestCommit(t *testing.T) {
	dir := setupTestRepo(t)
	repo := Open(dir)

	// Stage a change so there is something to commit.
	changed := filepath.Join(dir, "tracked.txt")
	require.NoError(t, os.WriteFile(changed, []byte("updated\n"), 0644))
	runTestGit(t, dir, "add", ".")

	message := "Subject line\n\nContext:\nbody\n"
	require.NoError(t, repo.Commit(message, nil))

	// The recorded message matches what we passed, including the body.
	logged := runTestGit(t, dir, "log", "-1", "--pretty=%B")
	assert.Equal(t, strings.TrimSpace(message), strings.TrimSpace(logged))
}

func TestCommit_ForwardsExitCode(t *testing.T) {
	dir := setupTestRepo(t)
	repo := Open(dir)

	// Nothing staged: `git commit` refuses and exits non-zero.
	err := repo.Commit("Subject\n", nil)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.NotEqual(t, model.ExitSuccess, cliErr.Code)
	assert.Contains(t, cliErr.Message, "`git commit` failed with exit code")
}

func TestCommit_ExtraArgs(t *testing.T) {
	dir := setupTestRepo(t)
	repo := Open(dir)

	// --allow-empty is forwarded, letting the commit succeed with no
	// staged changes.
	require.NoError(t, repo.Commit("Empty commit subject\n", []string{"--allow-empty"}))

	logged := runTestGit(t, dir, "log", "-1", "--pretty=%s")
	assert.Equal(t, "Empty commit subject", strings.TrimSpace(logged))
}
