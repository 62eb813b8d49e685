package flow

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/git"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

// Action is what the user chose to do.
type Action string

const (
	ActionPrint      Action = "print"
	ActionCommit     Action = "commit"
	ActionEditCommit Action = "edit-commit"
	ActionCopy       Action = "copy"
	ActionRegenerate Action = "regenerate"
	ActionCancel     Action = "cancel"
)

// Commits reports whether the action ends in a git commit.
func (a Action) Commits() bool {
	return a == ActionCommit || a == ActionEditCommit
}

// Label is the menu text for an action.
func (a Action) Label() string {
	switch a {
	case ActionPrint:
		return "Print message"
	case ActionCommit:
		return "Commit"
	case ActionEditCommit:
		return "Edit and commit"
	case ActionCopy:
		return "Copy to clipboard"
	case ActionRegenerate:
		return "↻ Regenerate"
	case ActionCancel:
		return "✕ Cancel"
	default:
		return string(a)
	}
}

// Decision is the outcome of one Presenting cycle.
type Decision struct {
	Action Action
	// Index is the chosen suggestion; unused for regenerate and cancel.
	Index int
}

// decide presents the suggestions and, once one is picked, the actions.
// Dismissing the action menu returns to the suggestion list.
func (s *Session) decide(ctx context.Context, suggestions []claude.Suggestion) (Decision, error) {
	for {
		options := suggestionOptions(suggestions)
		idx, err := s.prompter.Select(ctx, "Select a commit message:", options)
		if err != nil {
			return Decision{}, err
		}

		switch idx - len(suggestions) {
		case 0:
			return Decision{Action: ActionRegenerate}, nil
		case 1:
			return Decision{Action: ActionCancel}, nil
		}
		if idx < 0 || idx > len(suggestions) {
			return Decision{}, errors.Newf("selection %d out of range", idx)
		}

		if s.opts.CommitOnAccept {
			return Decision{Action: ActionCommit, Index: idx}, nil
		}

		action, err := s.chooseAction(ctx)
		if errors.Is(err, ui.ErrCancelled) {
			continue
		}
		if err != nil {
			return Decision{}, err
		}
		return Decision{Action: action, Index: idx}, nil
	}
}

// Actions lists the actions offered for a chosen suggestion.
func (s *Session) Actions() []Action {
	actions := []Action{ActionPrint, ActionCommit}
	if s.editor != "" {
		actions = append(actions, ActionEditCommit)
	}
	if s.copier != nil {
		actions = append(actions, ActionCopy)
	}
	return actions
}

func (s *Session) chooseAction(ctx context.Context) (Action, error) {
	actions := s.Actions()
	options := make([]ui.Option, len(actions))
	for i, a := range actions {
		options[i] = ui.Option{Label: a.Label()}
	}

	idx, err := s.prompter.Select(ctx, "What do you want to do?", options)
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", errors.Newf("selection %d out of range", idx)
	}
	return actions[idx], nil
}

// suggestionOptions renders suggestions followed by regenerate and cancel.
func suggestionOptions(suggestions []claude.Suggestion) []ui.Option {
	options := make([]ui.Option, 0, len(suggestions)+2)
	for _, sug := range suggestions {
		options = append(options, ui.Option{Label: sug.Message, Hint: hint(sug)})
	}
	options = append(options,
		ui.Option{Label: ActionRegenerate.Label()},
		ui.Option{Label: ActionCancel.Label()},
	)
	return options
}

// hint is the explanation, flagged when the subject runs long.
func hint(sug claude.Suggestion) string {
	parts := []string{}
	if sug.Explanation != "" {
		parts = append(parts, sug.Explanation)
	}
	if errors.Is(git.ValidateCommitMessage(sug.Message), git.ErrSubjectTooLong) {
		parts = append(parts, "subject over 72 chars")
	}
	return strings.Join(parts, "; ")
}
