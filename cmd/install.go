package cmd

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yarlson/claude-lazygit/internal/config"
	"github.com/yarlson/claude-lazygit/internal/lazygit"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

var (
	installYes   bool
	uninstallYes bool
)

func newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install lazygit integration",
		Long: `Add a custom command to lazygit's config.yml that runs claude-lazygit.
An existing claude-lazygit entry is replaced; other settings are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd)
		},
	}
	cmd.Flags().BoolVarP(&installYes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove lazygit integration",
		Long:  "Remove the claude-lazygit custom command from lazygit's config.yml.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(cmd)
		},
	}
	cmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip confirmation")
	return cmd
}

// setup holds what install and uninstall share.
type setup struct {
	cfg       *config.Config
	logger    *zap.Logger
	installer *lazygit.Installer
	prompter  ui.Prompter
}

func newSetup(cmd *cobra.Command) (*setup, error) {
	cfg, logger, err := loadRuntime(cmd)
	if err != nil {
		return nil, err
	}

	path := cfg.Lazygit.ConfigPath
	if path == "" {
		path, err = lazygitConfigPath()
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve lazygit config path")
		}
	}

	command := lazygit.CustomCommand{
		Key:         cfg.Lazygit.Key,
		Description: cfg.Lazygit.Description,
		Context:     cfg.Lazygit.Context,
		Command:     cfg.Lazygit.Command,
		Subprocess:  true,
	}

	return &setup{
		cfg:       cfg,
		logger:    logger,
		installer: lazygit.NewInstaller(path, command, logger),
		prompter:  newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
	}, nil
}

// confirm asks message unless skip is set or no terminal is attached.
// A dismissed prompt counts as no.
func (s *setup) confirm(cmd *cobra.Command, message string, skip bool) (bool, error) {
	if skip || !ui.Interactive(s.prompter) {
		return true, nil
	}
	ok, err := s.prompter.Confirm(cmd.Context(), message, true)
	if errors.Is(err, ui.ErrCancelled) {
		return false, nil
	}
	return ok, err
}

func runInstall(cmd *cobra.Command) error {
	s, err := newSetup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	p := s.prompter
	p.Intro("claude-lazygit install")
	p.Info(fmt.Sprintf("Lazygit config path: %s", s.installer.Path()))

	plan, err := s.installer.PlanInstall()
	if err != nil {
		return err
	}

	ok, err := s.confirm(cmd, installQuestion(plan), installYes)
	if err != nil {
		return err
	}
	if !ok {
		p.Error("Setup cancelled")
		return nil
	}

	if err := s.installer.Apply(plan); err != nil {
		return err
	}

	action := "added"
	if plan.HadBlock {
		action = "updated"
	}
	p.Success(fmt.Sprintf("Lazygit configuration %s!", action))
	p.Info(fmt.Sprintf("Press %s in lazygit to generate AI commit messages", keyLabel(s.cfg.Lazygit.Key)))
	p.Outro("Restart lazygit to apply changes")
	return nil
}

func runUninstall(cmd *cobra.Command) error {
	s, err := newSetup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = s.logger.Sync() }()

	p := s.prompter
	p.Intro("claude-lazygit uninstall")

	plan, err := s.installer.PlanUninstall()
	if err != nil {
		return err
	}

	if !plan.Exists {
		p.Warn("Lazygit config not found. Nothing to uninstall.")
		p.Outro("Done")
		return nil
	}
	if !plan.HadBlock {
		p.Warn("claude-lazygit not found in lazygit config. Nothing to remove.")
		p.Outro("Done")
		return nil
	}

	p.Info(fmt.Sprintf("Lazygit config path: %s", s.installer.Path()))

	ok, err := s.confirm(cmd, "Remove claude-lazygit from lazygit config?", uninstallYes)
	if err != nil {
		return err
	}
	if !ok {
		p.Error("Uninstall cancelled")
		return nil
	}

	if err := s.installer.Apply(plan); err != nil {
		return err
	}

	p.Success("claude-lazygit removed from lazygit config!")
	p.Outro("Restart lazygit to apply changes")
	return nil
}

// installQuestion words the confirmation for what the plan will do.
func installQuestion(plan *lazygit.Plan) string {
	switch {
	case plan.HadBlock:
		return "Update claude-lazygit config?"
	case strings.TrimSpace(plan.Current) != "":
		return "Add claude-lazygit to lazygit config?"
	default:
		return "Create lazygit config?"
	}
}

// keyLabel turns a lazygit key binding like <c-a> into Ctrl+A.
func keyLabel(key string) string {
	inner, ok := strings.CutPrefix(key, "<c-")
	if !ok || !strings.HasSuffix(inner, ">") {
		return key
	}
	return "Ctrl+" + strings.ToUpper(strings.TrimSuffix(inner, ">"))
}
