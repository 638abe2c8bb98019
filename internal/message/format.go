package message

import (
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// PathOracle answers path queries for change-label validation. Both methods
// take a path relative to the repository root and are read-only.
//
// Implementations must never fail: a query error (for example the git
// binary being unavailable) is reported as false, not propagated.
type PathOracle interface {
	// Exists reports whether the path exists in the working tree.
	Exists(path string) bool

	// WasDeleted reports whether version-control history records the path
	// as deleted from the working tree.
	WasDeleted(path string) bool
}

// Formatter assembles structured input into canonical message text.
// It validates each field against the grammar rules before serializing,
// so its output always passes the Validator built from the same Rules.
type Formatter struct {
	rules Rules

	// root is the absolute repository root; change-label paths resolve
	// relative to it.
	root string

	oracle PathOracle
}

// NewFormatter creates a Formatter for the given grammar rules, repository
// root, and path oracle.
func NewFormatter(rules Rules, root string, oracle PathOracle) *Formatter {
	return &Formatter{rules: rules, root: root, oracle: oracle}
}

// Format validates the structured message and serializes it into canonical
// text. The returned text always ends with a newline. On the first invalid
// field, Format returns a *model.Violation and an empty string.
func (f *Formatter) Format(msg model.Message) (string, error) {
	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		return "", model.NewViolation(model.KindEmptySubject, "subject must not be empty")
	}

	contextLines, err := f.contextLines(msg.Context)
	if err != nil {
		return "", err
	}

	enableLines, err := f.bulletLines(msg.Enables, "--enable entry")
	if err != nil {
		return "", err
	}

	changeLines, err := f.changeLines(msg.Changes)
	if err != nil {
		return "", err
	}

	deferredLines, err := f.bulletLines(msg.Deferred, "--deferred entry")
	if err != nil {
		return "", err
	}

	lines := []string{subject, "", HeaderContext}
	lines = append(lines, contextLines...)
	lines = append(lines, "", HeaderEnables)
	lines = append(lines, enableLines...)
	lines = append(lines, "", HeaderChanges)
	lines = append(lines, changeLines...)
	lines = append(lines, "", HeaderDeferred)
	lines = append(lines, deferredLines...)
	return strings.Join(lines, "\n") + "\n", nil
}

// contextLines flattens the context entries into one line sequence and
// normalizes it: trailing whitespace is trimmed per line, leading/trailing
// blank lines are stripped, interior blank lines are kept but must never
// be consecutive, and the non-blank line count must stay within the limit.
func (f *Formatter) contextLines(entries []string) ([]string, error) {
	var lines []string
	for _, entry := range entries {
		for _, raw := range strings.Split(entry, "\n") {
			lines = append(lines, strings.TrimRight(raw, " \t\r"))
		}
	}
	lines = stripEdgeBlanks(lines)
	if len(lines) == 0 {
		return nil, model.NewViolation(model.KindEmptyContext, "--context entries must be non-empty")
	}

	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	nonBlank := 0
	for _, line := range lines {
		if isBlank(line) {
			blankRun++
			if blankRun > 1 {
				return nil, model.NewViolation(model.KindConsecutiveBlankLines,
					"context must not contain consecutive blank lines")
			}
			cleaned = append(cleaned, "")
			continue
		}
		blankRun = 0
		nonBlank++
		cleaned = append(cleaned, strings.TrimSpace(line))
	}
	if nonBlank > f.rules.MaxContextLines {
		return nil, model.NewViolation(model.KindContextTooLong,
			"context must be 1-%d lines", f.rules.MaxContextLines)
	}
	return cleaned, nil
}

// bulletLines converts each entry into a rendered bullet block and
// concatenates the blocks. what names the offending flag in diagnostics.
func (f *Formatter) bulletLines(entries []string, what string) ([]string, error) {
	var rendered []string
	for _, entry := range entries {
		lines, err := itemLines(entry, what)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, renderBullet(lines)...)
	}
	return rendered, nil
}

// changeLines renders change entries, enforcing the "label: description"
// form on each entry's first line and validating path-like labels against
// the oracle.
func (f *Formatter) changeLines(entries []string) ([]string, error) {
	var rendered []string
	for _, entry := range entries {
		lines, err := itemLines(entry, "--change entry")
		if err != nil {
			return nil, err
		}

		label, description, found := strings.Cut(lines[0], ":")
		if !found {
			return nil, model.NewViolation(model.KindMissingColon,
				"--change entry must include 'path: description' (got %q)", entry)
		}
		label = strings.TrimSpace(label)
		description = strings.TrimSpace(description)
		if label == "" {
			return nil, model.NewViolation(model.KindMissingLabel,
				"--change entry missing label before colon (got %q)", entry)
		}
		if description == "" {
			return nil, model.NewViolation(model.KindMissingDescription,
				"--change entry missing description after colon (got %q)", entry)
		}

		candidate := pathCandidate(label)
		if f.looksLikePath(candidate) {
			if err := f.checkPath(candidate); err != nil {
				return nil, err
			}
		}

		lines[0] = label + ": " + description
		rendered = append(rendered, renderBullet(lines)...)
	}
	return rendered, nil
}

// pathCandidate returns the part of a change label subject to path
// validation: the text before a trailing " (...)" parenthetical if one is
// present, otherwise the whole label.
func pathCandidate(label string) string {
	if strings.Contains(label, " (") && strings.HasSuffix(label, ")") {
		before, _, _ := strings.Cut(label, " (")
		return strings.TrimSpace(before)
	}
	return label
}

// looksLikePath decides whether a change-label candidate should be
// subjected to path existence validation.
//
// This is an intentionally permissive heuristic, not a strict path
// grammar: anything containing whitespace is treated as prose; anything
// with a slash, a leading dot, or any dot is treated as a path; and a bare
// word counts as a path only if it actually exists under the repository
// root. Tightening it would reject previously valid change entries, so it
// stays exactly this loose.
func (f *Formatter) looksLikePath(candidate string) bool {
	if strings.ContainsAny(candidate, " \t") {
		return false
	}
	if strings.Contains(candidate, "/") || strings.HasPrefix(candidate, ".") || strings.Contains(candidate, ".") {
		return true
	}
	return f.oracle.Exists(candidate)
}

// checkPath validates a path-like change label against the repository:
// it must resolve inside the root, must not be the root itself, and must
// either exist in the working tree or be recorded as deleted.
func (f *Formatter) checkPath(candidate string) error {
	root := filepath.Clean(f.root)
	resolved := filepath.Clean(filepath.Join(root, candidate))

	if resolved == root {
		return model.NewViolation(model.KindPathIsRoot,
			"change label must not be the repo root; point at a file or directory")
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return model.NewViolation(model.KindPathOutsideRepo,
			"change label path must be within repo: %s", candidate)
	}

	if !f.oracle.Exists(candidate) && !f.oracle.WasDeleted(candidate) {
		return model.NewViolation(model.KindPathNotFound,
			"change label path does not exist: %s", candidate)
	}
	return nil
}

// itemLines normalizes one bullet entry into its logical lines: leading and
// trailing blank lines are stripped, a leading "- " marker on the first line
// is removed, every line is trimmed, and interior blank lines are rejected.
func itemLines(entry, what string) ([]string, error) {
	lines := stripEdgeBlanks(strings.Split(entry, "\n"))
	if len(lines) == 0 {
		return nil, model.NewViolation(model.KindEmptyBulletEntry, "%s must be non-empty", what)
	}

	first := strings.TrimSpace(lines[0])
	if strings.HasPrefix(first, bulletPrefix) {
		first = strings.TrimSpace(first[len(bulletPrefix):])
	}
	if first == "" {
		return nil, model.NewViolation(model.KindEmptyBulletEntry, "%s must be non-empty", what)
	}

	cleaned := []string{first}
	for _, line := range lines[1:] {
		if isBlank(line) {
			return nil, model.NewViolation(model.KindBlankLineInBullet,
				"%s must not contain blank lines", what)
		}
		cleaned = append(cleaned, strings.TrimSpace(line))
	}
	return cleaned, nil
}

// renderBullet serializes normalized item lines into their canonical form:
// "- " on the first line, two-space indentation on continuations.
func renderBullet(lines []string) []string {
	rendered := []string{bulletPrefix + lines[0]}
	for _, line := range lines[1:] {
		rendered = append(rendered, continuationIndent+line)
	}
	return rendered
}

// stripEdgeBlanks removes leading and trailing blank lines. Repeated
// application is a no-op, so entries differing only in surrounding blank
// lines normalize to identical output.
func stripEdgeBlanks(lines []string) []string {
	start := 0
	end := len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return lines[start:end]
}
