package lazygit

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Plan describes a pending change to the lazygit config file.
type Plan struct {
	// Path is the config file location.
	Path string
	// Exists reports whether the file existed when the plan was made.
	Exists bool
	// HadBlock reports whether the managed block was already present.
	HadBlock bool
	// Current is the file content as read.
	Current string
	// Next is the content to write.
	Next string
}

// Changed reports whether applying the plan would modify the file.
func (p *Plan) Changed() bool {
	return !p.Exists || p.Current != p.Next
}

// Installer reads, edits and writes the lazygit config file.
type Installer struct {
	path    string
	command CustomCommand
	editor  *Editor
	logger  *zap.Logger
}

// NewInstaller creates an Installer for the config file at path.
func NewInstaller(path string, command CustomCommand, logger *zap.Logger) *Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{
		path:    path,
		command: command,
		editor:  NewEditor(),
		logger:  logger,
	}
}

// Path returns the config file location.
func (i *Installer) Path() string {
	return i.path
}

// PlanInstall computes the config content with the custom command in place.
func (i *Installer) PlanInstall() (*Plan, error) {
	current, exists, err := i.read()
	if err != nil {
		return nil, err
	}

	block, err := i.command.Render(0)
	if err != nil {
		return nil, err
	}

	next, err := i.editor.Upsert(current, block)
	if err != nil {
		return nil, errors.Wrapf(err, "update %s", i.path)
	}

	plan := &Plan{
		Path:     i.path,
		Exists:   exists,
		HadBlock: i.editor.Contains(current),
		Current:  current,
		Next:     next,
	}

	i.logger.Debug("planned install",
		zap.String("path", i.path),
		zap.Bool("exists", plan.Exists),
		zap.Bool("had_block", plan.HadBlock))

	return plan, nil
}

// PlanUninstall computes the config content with the custom command removed.
// A missing file yields a plan with Exists=false and nothing to write.
func (i *Installer) PlanUninstall() (*Plan, error) {
	current, exists, err := i.read()
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Path:     i.path,
		Exists:   exists,
		HadBlock: i.editor.Contains(current),
		Current:  current,
		Next:     current,
	}
	if plan.HadBlock {
		plan.Next = i.editor.Remove(current)
	}

	i.logger.Debug("planned uninstall",
		zap.String("path", i.path),
		zap.Bool("exists", plan.Exists),
		zap.Bool("had_block", plan.HadBlock))

	return plan, nil
}

// Apply writes the planned content. Uninstall plans for missing files are no-ops.
func (i *Installer) Apply(plan *Plan) error {
	if !plan.Exists && !plan.HadBlock && plan.Next == "" {
		return nil
	}
	if !plan.Changed() {
		return nil
	}
	return writeFileAtomic(plan.Path, []byte(plan.Next))
}

// read returns the file content; a missing file reads as empty.
func (i *Installer) read() (string, bool, error) {
	data, err := os.ReadFile(i.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to read config file %s", i.path)
	}
	return string(data), true, nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place. Symlinked config files are written through to their target.
func writeFileAtomic(path string, data []byte) error {
	target := path
	mode := fs.FileMode(0644)

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
		if info, err := os.Stat(resolved); err == nil {
			mode = info.Mode().Perm()
		}
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", dir)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(target)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}
