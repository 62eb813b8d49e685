package claude

import (
	"fmt"
	"strings"

	"github.com/yarlson/claude-lazygit/internal/git"
)

// MaxSuggestions is the upper bound on suggestions requested in one call.
const MaxSuggestions = 10

// DefaultMaxDiffSize is the largest diff, in bytes, sent to the CLI (500 KiB).
const DefaultMaxDiffSize = 500 * 1024

// CommitTypes is the conventional commit type vocabulary offered to the model.
var CommitTypes = git.TypeNames()

// SystemPrompt is the commit message policy passed via --system-prompt.
var SystemPrompt = `You write git commit messages. Given a staged diff, produce commit messages in the Conventional Commits format.

## Format
<type>(<optional scope>): <description>

Allowed types: ` + strings.Join(CommitTypes, ", ") + `

## Rules
1. Describe why the change was made, not only what changed
2. Keep the subject line at 72 characters or fewer
3. Use the imperative mood ("add", not "added" or "adds")
4. Start the description in lower case and do not end it with a period
5. Prefer one higher-level purpose over a list of unrelated edits
6. Mention file names only when they matter to the reader
7. Add a body only when the subject cannot carry the intent

## Examples
- feat(auth): add password strength validation
- fix: resolve race condition in async queue
- refactor: extract shared retry logic into a helper
- docs: update API authentication examples

When several suggestions are requested, vary them: some literal, some that name the higher-level intent. Only one will be used, so make sure at least one is excellent.`

// Schema is a JSON Schema document passed via --json-schema.
type Schema map[string]any

func suggestionSchema() Schema {
	return Schema{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "The commit message in conventional commit format",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation of why this message fits the changes",
			},
		},
		"required":             []string{"message"},
		"additionalProperties": false,
	}
}

// SingleSchema describes a response holding exactly one suggestion object.
func SingleSchema() Schema {
	return suggestionSchema()
}

// ManySchema describes a response holding a list of suggestions under "commits".
// With count > 0 the list must contain exactly count items, otherwise
// between 1 and MaxSuggestions.
func ManySchema(count int) Schema {
	minItems, maxItems := 1, MaxSuggestions
	if count > 0 {
		minItems, maxItems = count, count
	}

	return Schema{
		"type": "object",
		"properties": map[string]any{
			"commits": map[string]any{
				"type":     "array",
				"items":    suggestionSchema(),
				"minItems": minItems,
				"maxItems": maxItems,
			},
		},
		"required":             []string{"commits"},
		"additionalProperties": false,
	}
}

// BuildInstruction renders the user prompt with the diff fenced verbatim.
func BuildInstruction(diff string, count int) string {
	var lead string
	switch {
	case count == 1:
		lead = "Generate a commit message for this diff:"
	case count > 1:
		lead = fmt.Sprintf("Generate %d different commit message suggestions for this diff:", count)
	default:
		lead = "Generate commit message suggestions for this diff:"
	}

	return lead + "\n\n```diff\n" + diff + "\n```"
}
