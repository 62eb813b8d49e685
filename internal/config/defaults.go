package config

import (
	"github.com/yarlson/claude-lazygit/internal/claude"
	"github.com/yarlson/claude-lazygit/internal/lazygit"
)

// Claude defaults
const (
	DefaultClaudeCommand = claude.DefaultCommand
	DefaultMaxDiffSize   = claude.DefaultMaxDiffSize
)

// Generate defaults
const (
	DefaultCount = 3
	MaxCount     = claude.MaxSuggestions
)

// Lazygit defaults
const (
	DefaultLazygitKey         = lazygit.DefaultKey
	DefaultLazygitContext     = lazygit.DefaultContext
	DefaultLazygitDescription = lazygit.DefaultDescription
	DefaultLazygitCommand     = lazygit.DefaultCommand
	SentinelToken             = lazygit.Sentinel
)
