// Package cli — lint.go implements the "commitmsg lint" command.
//
// The lint command validates an existing commit message against the
// template grammar. By default it checks .git/COMMIT_EDITMSG under the
// repository root, which makes it usable directly as a commit-msg hook.
// Exit code 0 means the message is well-formed; exit code 1 comes with a
// single diagnostic line on stderr naming the first violation.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/commitmsg/internal/config"
	"github.com/mmr-tortoise/commitmsg/internal/gitrepo"
	"github.com/mmr-tortoise/commitmsg/internal/message"
	"github.com/mmr-tortoise/commitmsg/internal/model"
)

// lintFlags holds the flag values for the lint command.
type lintFlags struct {
	// file is the path to the commit message to validate.
	// Empty means the default .git/COMMIT_EDITMSG under the repo root.
	file string
}

// NewLintCommand creates the "lint" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate a commit message against the project template",
		Long: `Validate a commit message against the project template.

By default the command checks .git/COMMIT_EDITMSG. Pass --file to point
at a different message (for example the most recent commit captured via
` + "`git log -1 --pretty=%B`" + `).

Examples:
  commitmsg lint
  commitmsg lint --file /tmp/message.txt
  commitmsg lint --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Path to the commit message to validate (default: .git/COMMIT_EDITMSG)")

	return cmd
}

// runLint is the main logic function for the lint command.
// It resolves the message path, loads the grammar rules, and reports the
// validator's verdict.
func runLint(flags *lintFlags) error {
	// Grammar rules come from the repository configuration when we can
	// find a repository; otherwise the defaults apply. Lint must stay
	// usable on a bare file outside any checkout (e.g., in CI archives).
	rules := message.DefaultRules()

	path := flags.file
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	repo, repoErr := gitrepo.Discover(cwd)
	if repoErr == nil {
		loaded, cfgErr := config.Load(repo.Root())
		if cfgErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "invalid configuration", cfgErr)
		}
		rules = loaded
		if path == "" {
			path = filepath.Join(repo.Root(), ".git", "COMMIT_EDITMSG")
		}
	} else if path == "" {
		// No repository and no explicit file: fall back to the conventional
		// relative location so hooks invoked from odd contexts still work.
		path = filepath.Join(".git", "COMMIT_EDITMSG")
	}
	VerboseLog("Linting %s (context limit %d)", path, rules.MaxContextLines)

	text, err := os.ReadFile(path)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("commit lint error: cannot read commit message file: %s", path), nil)
	}

	validator := message.NewValidator(rules)
	if err := validator.Validate(string(text)); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "commit lint error", err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]bool{"valid": true}, "", "  ")
		fmt.Println(string(data))
	}
	// Text mode prints nothing on success: exit code 0 is the verdict.
	return nil
}
