package git

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// CommitType represents the type prefix for conventional commits.
type CommitType string

// Supported commit types following conventional commits specification.
const (
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeStyle    CommitType = "style"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypePerf     CommitType = "perf"
	CommitTypeTest     CommitType = "test"
	CommitTypeBuild    CommitType = "build"
	CommitTypeCI       CommitType = "ci"
	CommitTypeChore    CommitType = "chore"
	CommitTypeRevert   CommitType = "revert"
)

// CommitTypes lists the supported types in presentation order.
var CommitTypes = []CommitType{
	CommitTypeFeat,
	CommitTypeFix,
	CommitTypeDocs,
	CommitTypeStyle,
	CommitTypeRefactor,
	CommitTypePerf,
	CommitTypeTest,
	CommitTypeBuild,
	CommitTypeCI,
	CommitTypeChore,
	CommitTypeRevert,
}

// MaxSubjectLength is the conventional limit for the first line of a message.
const MaxSubjectLength = 72

// Validation failures reported by ValidateCommitMessage.
var (
	ErrEmptyMessage    = errors.New("commit message is empty")
	ErrNotConventional = errors.New("commit message is not in type(scope): description form")
	ErrUnknownType     = errors.New("commit message has unknown type")
	ErrSubjectTooLong  = errors.New("commit subject is too long")
)

// String returns the string representation of the commit type.
func (ct CommitType) String() string {
	return string(ct)
}

// IsValid returns true if the commit type is a supported value.
func (ct CommitType) IsValid() bool {
	for _, t := range CommitTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// TypeNames returns the supported types as plain strings.
func TypeNames() []string {
	names := make([]string, len(CommitTypes))
	for i, t := range CommitTypes {
		names[i] = t.String()
	}
	return names
}

// headerPattern matches "type(scope)!: description".
var headerPattern = regexp.MustCompile(`^([a-z]+)(?:\(([^()]*)\))?(!)?: (.*)$`)

// ConventionalCommit is a parsed conventional commit message.
type ConventionalCommit struct {
	Type        CommitType
	Scope       string
	Breaking    bool
	Description string
	Body        string
}

// ParseConventionalCommit parses a conventional commit message. The second
// return value is false when the header does not follow the format.
func ParseConventionalCommit(message string) (ConventionalCommit, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ConventionalCommit{}, false
	}

	header, body, _ := strings.Cut(message, "\n")

	m := headerPattern.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil || strings.TrimSpace(m[4]) == "" {
		return ConventionalCommit{}, false
	}

	return ConventionalCommit{
		Type:        CommitType(m[1]),
		Scope:       m[2],
		Breaking:    m[3] == "!",
		Description: strings.TrimSpace(m[4]),
		Body:        strings.TrimSpace(body),
	}, true
}

// Subject returns the first line of a commit message.
func Subject(message string) string {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(subject)
}

// ValidateCommitMessage checks a message against the conventional commit
// rules the generator is asked to follow.
func ValidateCommitMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	cc, ok := ParseConventionalCommit(message)
	if !ok {
		return ErrNotConventional
	}

	if !cc.Type.IsValid() {
		return errors.Wrapf(ErrUnknownType, "%q", cc.Type)
	}

	if n := len([]rune(Subject(message))); n > MaxSubjectLength {
		return errors.Wrapf(ErrSubjectTooLong, "%d characters, limit %d", n, MaxSubjectLength)
	}

	return nil
}
