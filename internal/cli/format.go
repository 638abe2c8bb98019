// Package cli — format.go implements the "commitmsg format" command.
//
// The format command assembles structured input (flags and/or a JSONC
// definition file) into a canonical commit message. Orchestration steps:
//
//  1. Discover the Git repository root (path validation is relative to it)
//  2. Load grammar overrides from .commitmsg.yml, if present
//  3. Merge --from-file entries with repeated flag entries
//  4. Format and validate the message
//  5. Write it to stdout or --write PATH
//  6. Optionally run `git commit` with the message (--commit)
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/commitmsg/internal/config"
	"github.com/mmr-tortoise/commitmsg/internal/gitrepo"
	"github.com/mmr-tortoise/commitmsg/internal/input"
	"github.com/mmr-tortoise/commitmsg/internal/message"
	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// formatFlags holds the flag values for the format command.
// These are bound to cobra flags in NewFormatCommand.
type formatFlags struct {
	contexts   []string // --context: rationale entries (repeatable)
	enables    []string // --enable: capability entries (repeatable)
	changes    []string // --change: "path: description" entries (repeatable)
	deferreds  []string // --deferred: follow-up entries (repeatable)
	fromFile   string   // --from-file: JSONC message definition
	write      string   // --write: output file instead of stdout
	commit     bool     // --commit: run `git commit` with the message
	commitArgs []string // --commit-arg: extra arguments forwarded to git commit
}

// NewFormatCommand creates the "format" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format <subject>",
		Short: "Format a commit message from structured input",
		Long: `Format a commit message that follows the project template.

Each section flag is repeatable; an entry may span multiple lines and is
rendered as one bullet (continuation lines are indented). Change entries
must use 'path: description' form, and path-like labels must reference a
path that exists in the repository or is recorded as deleted.

Examples:
  commitmsg format "Add caching layer" \
      --context "Reduces repeated lookups" \
      --enable "Faster repeated reads" \
      --change "cache.go: add LRU cache (new file)" \
      --deferred "Add eviction metrics"
  commitmsg format --from-file message.jsonc
  commitmsg format "Fix lint" --context c --enable e --change "a.go: fix" \
      --deferred d --commit --commit-arg --amend`,

		// The subject is positional; it may come from --from-file instead,
		// so at most one argument is accepted rather than exactly one.
		Args: cobra.MaximumNArgs(1),

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := ""
			if len(args) == 1 {
				subject = args[0]
			}
			return runFormat(subject, flags)
		},
	}

	cmd.Flags().StringArrayVar(&flags.contexts, "context", nil, "Context for why the commit exists (repeatable)")
	cmd.Flags().StringArrayVar(&flags.enables, "enable", nil, "Capability enabled by the change (repeatable)")
	cmd.Flags().StringArrayVar(&flags.changes, "change", nil, "Change summary in 'path: description' form (repeatable)")
	cmd.Flags().StringArrayVar(&flags.deferreds, "deferred", nil, "Deferred follow-up work (repeatable)")
	cmd.Flags().StringVar(&flags.fromFile, "from-file", "", "Read the message definition from a JSONC file")
	cmd.Flags().StringVar(&flags.write, "write", "", "Write the formatted message to PATH instead of stdout")
	cmd.Flags().BoolVar(&flags.commit, "commit", false, "Run `git commit` with the formatted message")
	cmd.Flags().StringArrayVar(&flags.commitArgs, "commit-arg", nil, "Additional argument to pass to `git commit` (repeatable)")

	return cmd
}

// runFormat is the main orchestration function for the format command.
func runFormat(subject string, flags *formatFlags) error {
	// Step 1: Discover the repository. Change-label paths are validated
	// relative to its root, and --commit runs there.
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	repo, err := gitrepo.Discover(cwd)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "not inside a Git repository", err)
	}
	VerboseLog("Repository root: %s", repo.Root())

	// Step 2: Load grammar overrides from the repository root.
	rules, err := config.Load(repo.Root())
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid configuration", err)
	}
	VerboseLog("Context line limit: %d", rules.MaxContextLines)

	// Step 3: Assemble the structured message, merging a definition file
	// (if given) with repeated flags. File entries come first so flags can
	// append to a checked-in template.
	msg := model.Message{Subject: subject}
	if flags.fromFile != "" {
		def, loadErr := input.LoadDefinition(flags.fromFile)
		if loadErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid message definition", loadErr)
		}
		if msg.Subject == "" {
			msg.Subject = def.Subject
		}
		msg.Context = def.Context
		msg.Enables = def.Enables
		msg.Changes = def.Changes
		msg.Deferred = def.Deferred
	}
	msg.Context = append(msg.Context, flags.contexts...)
	msg.Enables = append(msg.Enables, flags.enables...)
	msg.Changes = append(msg.Changes, flags.changes...)
	msg.Deferred = append(msg.Deferred, flags.deferreds...)

	if err := requireEntries(&msg); err != nil {
		return err
	}

	// Step 4: Format. The formatter reports the first violation it finds.
	formatter := message.NewFormatter(rules, repo.Root(), repo)
	text, err := formatter.Format(msg)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid commit message input", err)
	}

	// Step 5: Output.
	if flags.write != "" {
		if writeErr := os.WriteFile(flags.write, []byte(text), 0644); writeErr != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to write %s", flags.write), writeErr)
		}
		VerboseLog("Wrote message to %s", flags.write)
	} else if IsJSONOutput() {
		out := map[string]string{"message": text}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Print(text)
	}

	// Step 6: Commit, if requested. Commit errors already carry the child
	// process's exit code; return them unchanged.
	if flags.commit {
		VerboseLog("Running git commit with %d extra args", len(flags.commitArgs))
		return repo.Commit(text, flags.commitArgs)
	}
	return nil
}

// requireEntries checks that every section has at least one entry after
// merging the definition file and flags. The grammar requires a non-empty
// body for each section, so catching this before formatting yields flag-
// oriented diagnostics instead of grammar-oriented ones.
func requireEntries(msg *model.Message) error {
	if len(msg.Context) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "at least one --context entry is required")
	}
	if len(msg.Enables) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "at least one --enable entry is required")
	}
	if len(msg.Changes) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "at least one --change entry is required")
	}
	if len(msg.Deferred) == 0 {
		return model.NewCLIError(model.ExitGeneralError, "at least one --deferred entry is required")
	}
	return nil
}
