package claude

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// DefaultCommand is the Claude Code executable looked up in PATH.
const DefaultCommand = "claude"

// rawPreviewLimit bounds the raw output written to verbose logs.
const rawPreviewLimit = 500

// Sentinel errors for generation failures.
var (
	// ErrDiffTooLarge indicates the diff exceeds the configured maximum size.
	ErrDiffTooLarge = errors.New("diff too large")

	// ErrInvalidCount indicates a suggestion count outside 0..MaxSuggestions.
	ErrInvalidCount = errors.New("invalid suggestion count")

	// ErrSpawn indicates the CLI could not be started.
	ErrSpawn = errors.New("failed to start Claude CLI")

	// ErrExit indicates the CLI exited with a non-zero status.
	ErrExit = errors.New("Claude CLI exited with non-zero status")
)

// Generator turns a staged diff into commit message suggestions by invoking
// the Claude Code CLI with a JSON schema and validating its response.
type Generator struct {
	runner      ProcessRunner
	command     string
	extraArgs   []string
	maxDiffSize int
	logger      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithCommand sets the executable name or path. Empty values are ignored.
func WithCommand(command string) Option {
	return func(g *Generator) {
		if command != "" {
			g.command = command
		}
	}
}

// WithExtraArgs appends CLI arguments before the prompt flag.
func WithExtraArgs(args []string) Option {
	return func(g *Generator) {
		g.extraArgs = append([]string(nil), args...)
	}
}

// WithMaxDiffSize sets the diff size limit in bytes. Non-positive values are ignored.
func WithMaxDiffSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.maxDiffSize = size
		}
	}
}

// WithLogger sets the logger used for verbose diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator that runs commands through runner.
func NewGenerator(runner ProcessRunner, opts ...Option) *Generator {
	g := &Generator{
		runner:      runner,
		command:     DefaultCommand,
		maxDiffSize: DefaultMaxDiffSize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a single commit message suggestion for diff.
func (g *Generator) Generate(ctx context.Context, diff string) (Suggestion, error) {
	env, err := g.invoke(ctx, diff, BuildInstruction(diff, 1), SingleSchema())
	if err != nil {
		return Suggestion{}, err
	}
	return DecodeSingle(env)
}

// GenerateMany returns count suggestions for diff. A count of 0 lets the
// model choose between 1 and MaxSuggestions.
func (g *Generator) GenerateMany(ctx context.Context, diff string, count int) ([]Suggestion, error) {
	if count < 0 || count > MaxSuggestions {
		return nil, errors.Mark(
			errors.Newf("suggestion count %d is outside 1..%d", count, MaxSuggestions),
			ErrInvalidCount)
	}

	env, err := g.invoke(ctx, diff, BuildInstruction(diff, count), ManySchema(count))
	if err != nil {
		return nil, err
	}

	suggestions, err := DecodeMany(env)
	if err != nil {
		return nil, err
	}

	if count > 0 && len(suggestions) > count {
		suggestions = suggestions[:count]
	}
	return suggestions, nil
}

// CheckDiffSize fails when diff is larger than the configured limit.
func (g *Generator) CheckDiffSize(diff string) error {
	if len(diff) <= g.maxDiffSize {
		return nil
	}

	sizeKB := int(math.Round(float64(len(diff)) / 1024))
	limitKB := int(math.Round(float64(g.maxDiffSize) / 1024))

	err := errors.Newf("diff too large (%dKB). Maximum size is %dKB", sizeKB, limitKB)
	err = errors.Mark(err, ErrDiffTooLarge)
	return errors.WithHint(err, "Try staging fewer files or splitting the change into smaller commits.")
}

// invoke validates the input, runs the CLI once and returns the validated envelope.
func (g *Generator) invoke(ctx context.Context, diff, instruction string, schema Schema) (*Envelope, error) {
	if err := g.CheckDiffSize(diff); err != nil {
		return nil, err
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, errors.Wrap(err, "marshal output schema")
	}

	args := g.buildArgs(instruction, string(schemaJSON))

	g.logger.Debug("running Claude CLI",
		zap.String("command", g.command),
		zap.Int("diff_bytes", len(diff)),
		zap.Int("arg_count", len(args)))

	result := g.runner.Run(ctx, g.command, args)

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "Claude CLI cancelled")
	}

	if result.SpawnError != "" {
		err := errors.Mark(errors.New(result.SpawnError), ErrSpawn)
		return nil, errors.WithHint(err,
			"Install Claude Code (https://docs.anthropic.com/en/docs/claude-code) and make sure it is on your PATH.")
	}

	if result.ExitCode != 0 {
		stderr := TrimOutput(strings.TrimSpace(result.Stderr), DefaultTrimOptions())
		err := errors.Newf("Claude CLI failed (exit %d): %s", result.ExitCode, stderr)
		return nil, errors.Mark(err, ErrExit)
	}

	g.logger.Debug("Claude CLI output",
		zap.Int("stdout_bytes", len(result.Stdout)),
		zap.String("raw", Preview(result.Stdout, rawPreviewLimit)))

	return ParseEnvelope(result.Stdout)
}

// buildArgs constructs the command-line arguments for the CLI.
func (g *Generator) buildArgs(instruction, schemaJSON string) []string {
	args := []string{
		"--output-format", "json",
		"--json-schema", schemaJSON,
		"--system-prompt", SystemPrompt,
	}

	args = append(args, g.extraArgs...)

	// Prompt goes last with -p
	args = append(args, "-p", instruction)

	return args
}
