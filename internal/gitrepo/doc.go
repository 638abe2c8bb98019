// Package gitrepo provides the Git integration layer for the commitmsg CLI.
//
// This package wraps Git CLI commands (via os/exec) to discover the
// repository root, answer the path queries the formatter needs (working
// tree existence, deleted-in-history), and invoke `git commit` with a
// formatted message.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library because the
//     behavior we depend on (`ls-files --deleted`, `commit -F`) must match
//     the git CLI exactly, including hook execution on commit.
//   - Path queries never return errors: if git is unavailable or a query
//     fails, the answer is simply false. A broken oracle must not block
//     formatting.
//   - The commit invocation is a single synchronous subprocess call with
//     no timeout or retry; its exit status is forwarded to the caller
//     unchanged via model.CLIError.
package gitrepo
