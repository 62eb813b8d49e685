package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/config"
	"github.com/yarlson/claude-lazygit/internal/flow"
	"github.com/yarlson/claude-lazygit/internal/git"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

func runGenerate(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	count := cfg.Generate.Count
	if cmd.Flags().Changed("count") {
		count = rootCount
	}
	if count < 1 || count > config.MaxCount {
		return errors.Newf("--count must be between 1 and %d, got %d", config.MaxCount, count)
	}

	workDir, err := getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get working directory")
	}

	repo := newRepository(workDir)
	diff, err := stagedDiff(ctx, repo)
	if err != nil {
		return err
	}
	logger.Debug("staged diff", zap.Int("length", len(diff)))

	generator := claude.NewGenerator(newProcessRunner(workDir),
		claude.WithCommand(cfg.Claude.Command),
		claude.WithExtraArgs(cfg.Claude.Args),
		claude.WithMaxDiffSize(cfg.Claude.MaxDiffSize),
		claude.WithLogger(logger),
	)

	if rootPrint {
		return printMessage(cmd, generator, diff)
	}

	prompter := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	prompter.Intro(config.AppName)

	editor := ""
	if ui.Interactive(prompter) {
		editor = resolveEditor(ctx, cfg, repo, logger)
	}

	session := flow.NewSession(flow.SessionDeps{
		Generator: generator,
		Committer: repo,
		Prompter:  prompter,
		Copier:    newCopier(),
		Editor:    editor,
		Out:       cmd.OutOrStdout(),
		Logger:    logger,
	}, flow.SessionOptions{
		Count:          count,
		CommitOnAccept: rootCommit,
	})

	res, err := session.Run(ctx, diff)
	if err != nil {
		if errors.Is(err, ui.ErrInterrupted) {
			prompter.Error("Cancelled")
		}
		return err
	}
	if res.State == flow.StateCancelled {
		prompter.Error("Cancelled")
	}
	return nil
}

// stagedDiff checks the repository and returns a non-blank staged diff.
func stagedDiff(ctx context.Context, repo git.Manager) (string, error) {
	ok, err := repo.IsRepo(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to check git repository")
	}
	if !ok {
		return "", errors.WithHint(
			errors.Mark(errors.New("Not in a git repository"), git.ErrNotAGitRepo),
			"Run claude-lazygit from inside a git work tree.",
		)
	}

	diff, err := repo.StagedDiff(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to read staged diff")
	}
	if strings.TrimSpace(diff) == "" {
		return "", errors.WithHint(
			errors.Mark(errors.New("No staged changes found"), git.ErrNoStagedChanges),
			"Stage your changes with 'git add' first.",
		)
	}
	return diff, nil
}

// printMessage generates a single message and writes only it to stdout.
func printMessage(cmd *cobra.Command, generator *claude.Generator, diff string) error {
	suggestion, err := generator.Generate(cmd.Context(), diff)
	if err != nil {
		return errors.Wrap(err, "failed to generate commit message")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), suggestion.Message)
	return err
}

// resolveEditor picks the edit-then-commit editor. An empty result disables
// the action.
func resolveEditor(ctx context.Context, cfg *config.Config, repo repository, logger *zap.Logger) string {
	if cfg.Editor != "" {
		logger.Debug("editor from config", zap.String("editor", cfg.Editor))
		return cfg.Editor
	}

	editor, err := repo.ResolveEditor(ctx)
	if err != nil {
		logger.Debug("edit-then-commit disabled", zap.Error(err))
		return ""
	}
	logger.Debug("resolved editor",
		zap.String("editor", editor.Command),
		zap.String("source", string(editor.Source)))
	return editor.Command
}
