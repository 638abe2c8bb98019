package message

import (
	"strings"

	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// Validator checks raw message text against the grammar. It performs a
// single left-to-right pass and reports the first structural or content
// violation it encounters as a *model.Violation.
//
// The Validator never consults the filesystem or version control: change
// labels are checked for shape only, not for path existence.
type Validator struct {
	rules Rules
}

// NewValidator creates a Validator for the given grammar rules. Pass the
// same Rules value used by the Formatter so the two sides agree on limits.
func NewValidator(rules Rules) *Validator {
	return &Validator{rules: rules}
}

// sectionCheck validates one section body (with its trailing separator
// blank already removed).
type sectionCheck func(lines []string) error

// Validate parses text and returns nil if it is a well-formed message, or
// the first violation found.
func (v *Validator) Validate(text string) error {
	lines := strings.Split(text, "\n")
	// Fully-blank trailing lines (including the one produced by a final
	// newline) do not count against the grammar.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return model.NewViolation(model.KindEmptyMessage, "commit message is empty")
	}

	if strings.TrimSpace(lines[0]) == "" {
		return model.NewViolation(model.KindEmptySubject, "subject line must not be empty")
	}

	if len(lines) < 3 || lines[1] != "" {
		return model.NewViolation(model.KindMissingBlankAfterSubject,
			"expected blank line after subject")
	}

	sections := []struct {
		header string
		check  sectionCheck
	}{
		{HeaderContext, v.checkContext},
		{HeaderEnables, func(lines []string) error {
			return v.checkBullets(lines, "What this enables", false)
		}},
		{HeaderChanges, func(lines []string) error {
			return v.checkBullets(lines, "Changes", true)
		}},
		{HeaderDeferred, func(lines []string) error {
			return v.checkBullets(lines, "Deferred", false)
		}},
	}

	idx := 2
	for i, section := range sections {
		if idx >= len(lines) || lines[idx] != section.header {
			return model.NewViolation(model.KindMissingHeader,
				"expected %q section header", section.header)
		}
		idx++

		var body []string
		if i+1 < len(sections) {
			next := sections[i+1].header
			nextIdx := indexOfLine(lines, next, idx)
			if nextIdx < 0 {
				return model.NewViolation(model.KindMissingHeader,
					"expected %q section header", next)
			}
			body = lines[idx:nextIdx]
			var separatorBlanks int
			body, separatorBlanks = stripTrailingBlanks(body)
			if separatorBlanks != 1 {
				return model.NewViolation(model.KindBadSeparator,
					"expected single blank line between sections")
			}
			idx = nextIdx
		} else {
			body = lines[idx:]
			idx = len(lines)
		}

		if len(body) == 0 {
			return model.NewViolation(model.KindEmptySection,
				"%s section must not be empty", section.header)
		}
		if err := section.check(body); err != nil {
			return err
		}
	}

	return nil
}

// checkContext applies the context rules: no blank first or last line, no
// consecutive blanks, and at most MaxContextLines non-blank lines. These
// are the same rules the Formatter enforces when assembling the section.
func (v *Validator) checkContext(lines []string) error {
	if lines[0] == "" || lines[len(lines)-1] == "" {
		return model.NewViolation(model.KindContextEdgeBlank,
			"Context section must not start or end with blank lines")
	}
	blankRun := 0
	nonBlank := 0
	for _, line := range lines {
		if isBlank(line) {
			blankRun++
			if blankRun > 1 {
				return model.NewViolation(model.KindConsecutiveBlankLines,
					"Context section must not contain consecutive blank lines")
			}
			continue
		}
		blankRun = 0
		nonBlank++
	}
	if nonBlank > v.rules.MaxContextLines {
		return model.NewViolation(model.KindContextTooLong,
			"Context section must be 1-%d lines", v.rules.MaxContextLines)
	}
	return nil
}

// checkBullets applies the bullet-section rules: every line is either a
// "- " bullet with text or an indented continuation following a bullet.
// When requireColon is set (the Changes section), each bullet must take the
// "label: description" form with non-empty halves.
func (v *Validator) checkBullets(lines []string, sectionName string, requireColon bool) error {
	bulletCount := 0
	inBullet := false
	for _, line := range lines {
		switch {
		case line == "":
			return model.NewViolation(model.KindBlankLineInSection,
				"%s section must not contain blank lines", sectionName)

		case strings.HasPrefix(line, bulletPrefix):
			content := line[len(bulletPrefix):]
			if strings.TrimSpace(content) == "" {
				return model.NewViolation(model.KindEmptyBullet,
					"%s bullet must include text", sectionName)
			}
			if requireColon {
				label, description, found := strings.Cut(content, ":")
				if !found || strings.TrimSpace(label) == "" || strings.TrimSpace(description) == "" {
					return model.NewViolation(model.KindBadChangeFormat,
						"%s bullets must use 'label: description' format", sectionName)
				}
			}
			bulletCount++
			inBullet = true

		case strings.HasPrefix(line, continuationIndent) || strings.HasPrefix(line, "\t"):
			if !inBullet {
				return model.NewViolation(model.KindOrphanContinuation,
					"%s continuation line must follow a bullet", sectionName)
			}
			if strings.TrimSpace(line) == "" {
				return model.NewViolation(model.KindBlankLineInSection,
					"%s continuation line must include text", sectionName)
			}

		default:
			return model.NewViolation(model.KindBadLineFormat,
				"%s lines must start with '- ' or be indented continuations", sectionName)
		}
	}
	if bulletCount == 0 {
		return model.NewViolation(model.KindEmptySection,
			"%s section must contain at least one bullet", sectionName)
	}
	return nil
}

// indexOfLine returns the index of the first line equal to target at or
// after start, or -1 if there is none.
func indexOfLine(lines []string, target string, start int) int {
	for i := start; i < len(lines); i++ {
		if lines[i] == target {
			return i
		}
	}
	return -1
}

// stripTrailingBlanks removes trailing empty lines from a section body and
// returns the trimmed body along with how many lines were removed. The
// count distinguishes a correct single separator blank from missing or
// duplicated separators.
func stripTrailingBlanks(lines []string) ([]string, int) {
	count := 0
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
		count++
	}
	return lines[:end], count
}
