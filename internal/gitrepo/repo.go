package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// Repo represents one Git repository, rooted at its top-level directory.
// It implements the message.PathOracle interface and runs the commit
// invocation for the format command.
type Repo struct {
	root string
}

// Discover locates the Git repository containing path and returns a Repo
// rooted at its top-level directory.
//
// Uses `git rev-parse --show-toplevel`, which works from any subdirectory
// of the working tree (including worktrees).
func Discover(path string) (*Repo, error) {
	output, err := runGit(path, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	return &Repo{root: strings.TrimSpace(output)}, nil
}

// Open returns a Repo rooted at the given directory without consulting git.
// Used by tests and by callers that already know the root.
func Open(root string) *Repo {
	return &Repo{root: root}
}

// Root returns the absolute path to the repository's top-level directory.
func (r *Repo) Root() string {
	return r.root
}

// Exists reports whether the path (relative to the repository root) exists
// in the working tree.
func (r *Repo) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(r.root, path))
	return err == nil
}

// WasDeleted reports whether git records the path as deleted from the
// working tree (tracked, but removed without being staged).
//
// Runs `git ls-files --deleted -- <path>` and checks the path appears in
// the output. Any error — git missing, not a repository, whatever — is
// reported as false rather than propagated.
func (r *Repo) WasDeleted(path string) bool {
	output, err := runGit(r.root, "ls-files", "--deleted", "--", path)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(output, "\n") {
		if line == path {
			return true
		}
	}
	return false
}

// Commit invokes `git commit -F <tmpfile>` with the given message, forwarding
// extraArgs (for example "--amend") to git unchanged. The child process
// inherits stdin/stdout/stderr so interactive behavior (hooks, GPG prompts)
// works as it would for a direct git invocation.
//
// On failure the child's exit code is forwarded unchanged in the returned
// model.CLIError so scripts observe the same status git reported.
func (r *Repo) Commit(message string, extraArgs []string) error {
	tmp, err := os.CreateTemp("", "commitmsg-*")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to create temporary message file", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(message); err != nil {
		_ = tmp.Close()
		return model.WrapCLIError(model.ExitGeneralError, "failed to write temporary message file", err)
	}
	if err := tmp.Close(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write temporary message file", err)
	}

	args := append([]string{"-C", r.root, "commit", "-F", tmpPath}, extraArgs...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		code := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return model.WrapCLIError(model.ExitCode(code),
			fmt.Sprintf("`git commit` failed with exit code %d", code), err)
	}
	return nil
}

// runGit executes a git command with the given arguments against the
// specified directory and returns its stdout.
//
// The dir parameter is passed to git via the -C flag, which causes git to
// change to that directory before doing anything else. This avoids changing
// the process's working directory. On failure, stderr output is folded into
// the returned model.CLIError message for diagnostics.
func runGit(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGeneralError, message, err)
	}

	return stdout.String(), nil
}
