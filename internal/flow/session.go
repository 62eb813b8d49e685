// Package flow runs the interactive generate, choose and commit loop.
package flow

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/git"
	"github.com/yarlson/claude-lazygit/internal/ui"
)

// State is a step of the session state machine.
type State string

const (
	// StateGenerating asks the generator for suggestions.
	StateGenerating State = "generating"
	// StatePresenting waits for the user's decision on the suggestions.
	StatePresenting State = "presenting"
	// StateCommitting records the chosen message with git.
	StateCommitting State = "committing"
	// StateDone is terminal: a message was printed, copied or committed.
	StateDone State = "done"
	// StateCancelled is terminal: the user walked away.
	StateCancelled State = "cancelled"
)

// validStates is the set of valid session states.
var validStates = map[State]bool{
	StateGenerating: true,
	StatePresenting: true,
	StateCommitting: true,
	StateDone:       true,
	StateCancelled:  true,
}

// IsValid returns true if the state is a valid value.
func (s State) IsValid() bool {
	return validStates[s]
}

// IsTerminal reports whether the session stops in this state.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateCancelled
}

// Generator produces commit message suggestions for a diff.
type Generator interface {
	GenerateMany(ctx context.Context, diff string, count int) ([]claude.Suggestion, error)
}

// Committer records a message with git.
type Committer interface {
	Commit(ctx context.Context, message string) (string, error)
	CommitWithEditor(ctx context.Context, message, editor string) (string, error)
	// GetCommitMessage returns the message recorded for hash.
	GetCommitMessage(ctx context.Context, hash string) (string, error)
}

// Copier places text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Result describes how a session ended.
type Result struct {
	// State is the terminal state.
	State State
	// Action is what was done with the chosen message.
	Action Action
	// Message is the chosen commit message.
	Message string
	// Hash is the commit created, if any.
	Hash string
	// Generations counts generator calls, regenerations included.
	Generations int
	// Trace lists every state entered, in order.
	Trace []State
}

// SessionDeps contains the dependencies for a Session.
type SessionDeps struct {
	Generator Generator
	Committer Committer
	Prompter  ui.Prompter
	// Copier enables the copy action when set.
	Copier Copier
	// Editor enables edit-then-commit when set.
	Editor string
	// Out receives the final message for the print action.
	Out    io.Writer
	Logger *zap.Logger
}

// SessionOptions tunes a Session.
type SessionOptions struct {
	// Count is the number of suggestions per generation.
	Count int
	// CommitOnAccept commits the chosen suggestion without asking for an action.
	CommitOnAccept bool
}

// Session is one run of the interactive flow.
type Session struct {
	generator Generator
	committer Committer
	prompter  ui.Prompter
	copier    Copier
	editor    string
	out       io.Writer
	logger    *zap.Logger
	opts      SessionOptions
}

// NewSession creates a session with the given dependencies.
func NewSession(deps SessionDeps, opts SessionOptions) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &Session{
		generator: deps.Generator,
		committer: deps.Committer,
		prompter:  deps.Prompter,
		copier:    deps.Copier,
		editor:    deps.Editor,
		out:       out,
		logger:    logger,
		opts:      opts,
	}
}

// Run drives the state machine from Generating to a terminal state. User
// cancellation ends in StateCancelled with a nil error; Ctrl+C during
// generation and every other failure is returned.
func (s *Session) Run(ctx context.Context, diff string) (*Result, error) {
	res := &Result{}
	state := StateGenerating
	var suggestions []claude.Suggestion
	var chosen Decision

	for {
		res.Trace = append(res.Trace, state)
		s.logger.Debug("session state", zap.String("state", string(state)))

		switch state {
		case StateGenerating:
			var err error
			suggestions, err = s.generate(ctx, diff)
			res.Generations++
			if err != nil {
				return res, err
			}
			state = StatePresenting

		case StatePresenting:
			d, err := s.decide(ctx, suggestions)
			if err != nil {
				if errors.Is(err, ui.ErrCancelled) {
					state = StateCancelled
					continue
				}
				return res, err
			}
			chosen = d
			state = s.apply(d, suggestions, res)

		case StateCommitting:
			hash, err := s.commit(ctx, chosen.Action, res.Message)
			if err != nil {
				return res, err
			}
			res.Hash = hash
			res.Message = s.recorded(ctx, hash, res.Message)
			state = StateDone

		case StateDone:
			if err := s.finish(res); err != nil {
				return res, err
			}
			res.State = state
			return res, nil

		case StateCancelled:
			res.State = state
			return res, nil

		default:
			return res, errors.Newf("unknown session state %q", state)
		}
	}
}

// generate runs the generator behind a spinner.
func (s *Session) generate(ctx context.Context, diff string) ([]claude.Suggestion, error) {
	var suggestions []claude.Suggestion
	err := s.prompter.Spin(ctx, "Generating commit messages...", func(ctx context.Context) error {
		var err error
		suggestions, err = s.generator.GenerateMany(ctx, diff, s.opts.Count)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, errors.Mark(errors.New("no commit messages generated"), claude.ErrNoOutput)
	}

	for i, sug := range suggestions {
		if err := git.ValidateCommitMessage(sug.Message); err != nil {
			s.logger.Debug("suggestion does not follow the commit format",
				zap.Int("index", i), zap.Error(err))
		}
	}
	return suggestions, nil
}

// apply records the decision and returns the next state.
func (s *Session) apply(d Decision, suggestions []claude.Suggestion, res *Result) State {
	switch d.Action {
	case ActionRegenerate:
		return StateGenerating
	case ActionCancel:
		return StateCancelled
	}

	res.Action = d.Action
	res.Message = suggestions[d.Index].Message

	if d.Action.Commits() {
		return StateCommitting
	}
	return StateDone
}

func (s *Session) commit(ctx context.Context, action Action, message string) (string, error) {
	if action == ActionEditCommit {
		return s.committer.CommitWithEditor(ctx, message, s.editor)
	}
	return s.committer.Commit(ctx, message)
}

// recorded returns the message git stored for hash, which differs from the
// chosen one after an edit. On failure the chosen message is kept.
func (s *Session) recorded(ctx context.Context, hash, chosen string) string {
	message, err := s.committer.GetCommitMessage(ctx, hash)
	if err != nil {
		s.logger.Debug("read back commit message", zap.String("hash", hash), zap.Error(err))
		return chosen
	}
	if message = strings.TrimSpace(message); message != "" {
		return message
	}
	return chosen
}

// finish reports the outcome. The print action is the only writer to Out.
func (s *Session) finish(res *Result) error {
	switch res.Action {
	case ActionPrint:
		s.prompter.Outro("Selected commit message:")
		if _, err := fmt.Fprintln(s.out, res.Message); err != nil {
			return errors.Wrap(err, "write message")
		}
	case ActionCopy:
		if err := s.copier.Copy(res.Message); err != nil {
			return errors.Wrap(err, "copy to clipboard")
		}
		s.prompter.Outro("Commit message copied to clipboard")
	case ActionCommit, ActionEditCommit:
		s.prompter.Outro(fmt.Sprintf("Committed %s: %s", shortHash(res.Hash), git.Subject(res.Message)))
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
