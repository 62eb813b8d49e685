// Package cmd holds the claude-lazygit command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/config"
	"github.com/yarlson/claude-lazygit/internal/flow"
	"github.com/yarlson/claude-lazygit/internal/git"
	"github.com/yarlson/claude-lazygit/internal/lazygit"
	"github.com/yarlson/claude-lazygit/internal/logging"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

// Version is the released version of claude-lazygit.
const Version = "1.1.0"

var cfgFile string

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// Root command flags
var (
	rootVerbose bool
	rootCommit  bool
	rootPrint   bool
	rootCount   int
)

// repository is the git surface the commands need.
type repository interface {
	git.Manager
	ResolveEditor(ctx context.Context) (git.Editor, error)
}

// Collaborator constructors, replaced in tests.
var (
	getwd         = os.Getwd
	newRepository = func(workDir string) repository {
		return git.NewShellManager(workDir)
	}
	newProcessRunner = func(workDir string) claude.ProcessRunner {
		return claude.NewSubprocessRunner(workDir)
	}
	newPrompter       = ui.New
	newCopier         = flow.NewClipboard
	lazygitConfigPath = lazygit.ConfigPath
)

// NewRootCmd creates the root command for claude-lazygit.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "claude-lazygit",
		Short: "AI-powered commit message generator using Claude Code CLI",
		Long: `claude-lazygit reads the staged diff, asks Claude Code for conventional
commit messages and lets you pick, regenerate or commit one.

Examples:
  claude-lazygit             # Interactive mode
  claude-lazygit -c          # Generate and commit directly
  claude-lazygit -p          # Print message only (for lazygit)
  claude-lazygit install     # Install lazygit integration
  claude-lazygit uninstall   # Remove lazygit integration`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/claude-lazygit/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Flags().BoolVarP(&rootCommit, "commit", "c", false, "Commit directly after accepting message")
	rootCmd.Flags().BoolVarP(&rootPrint, "print", "p", false, "Print message only (no UI, for lazygit integration)")
	rootCmd.Flags().IntVarP(&rootCount, "count", "n", config.DefaultCount, "number of suggestions to generate (overrides generate.count)")
	rootCmd.MarkFlagsMutuallyExclusive("commit", "print")

	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())

	return rootCmd
}

// Execute runs the root command with ctx and prints failures to stderr.
// It returns the process exit code.
func Execute(ctx context.Context, stderr io.Writer) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

// printError writes err and its hints.
func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		_, _ = fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// loadRuntime loads the configuration and builds the logger for a command.
func loadRuntime(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfigWithFile(GetConfigFile())
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	logger := logging.New(logging.Options{
		Verbose: rootVerbose,
		Output:  cmd.ErrOrStderr(),
		Color:   ui.IsTerminal(cmd.ErrOrStderr()),
	})
	logger.Debug("config loaded", zap.String("file", GetConfigFile()))

	return cfg, logger, nil
}
