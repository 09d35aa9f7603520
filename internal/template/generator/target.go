package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/model"
)

// OverwriteRule is the run-scoped decision state governing how file
// conflicts are handled. The three "always" variants persist across
// files; the "once" variants apply to a single file and force a fresh
// prompt on the next conflict.
type OverwriteRule int

const (
	// AlwaysOverwrite replaces conflicting files for the rest of the run.
	AlwaysOverwrite OverwriteRule = iota
	// AlwaysSkip keeps existing files for the rest of the run.
	AlwaysSkip
	// AlwaysAppend appends to conflicting files for the rest of the run.
	AlwaysAppend
	// OverwriteOnce replaces this file only.
	OverwriteOnce
	// SkipOnce keeps this file only.
	SkipOnce
	// AppendOnce appends to this file only.
	AppendOnce
)

// persists reports whether the rule keeps deciding for later files.
func (r OverwriteRule) persists() bool {
	return r == AlwaysOverwrite || r == AlwaysSkip || r == AlwaysAppend
}

// status maps the rule to the outcome it produces on a conflict.
func (r OverwriteRule) status() model.GeneratedFileStatus {
	switch r {
	case AlwaysSkip, SkipOnce:
		return model.StatusSkipped
	case AlwaysAppend, AppendOnce:
		return model.StatusAppended
	default:
		return model.StatusOverwritten
	}
}

// ConflictResolution is the caller-facing conflict policy.
type ConflictResolution int

const (
	// ResolvePrompt asks the interactive prompter per conflict.
	ResolvePrompt ConflictResolution = iota
	// ResolveOverwrite maps to AlwaysOverwrite.
	ResolveOverwrite
	// ResolveSkip maps to AlwaysSkip.
	ResolveSkip
	// ResolveAppend maps to AlwaysAppend.
	ResolveAppend
)

// ParseConflictResolution parses the --on-conflict flag value.
func ParseConflictResolution(s string) (ConflictResolution, error) {
	switch s {
	case "prompt":
		return ResolvePrompt, nil
	case "overwrite":
		return ResolveOverwrite, nil
	case "skip":
		return ResolveSkip, nil
	case "append":
		return ResolveAppend, nil
	default:
		return ResolvePrompt, fmt.Errorf("invalid conflict policy %q (must be prompt, overwrite, skip, or append)", s)
	}
}

// Rule converts the policy to the OverwriteRule seeding a target's
// state machine; nil means "ask interactively".
func (c ConflictResolution) Rule() *OverwriteRule {
	var rule OverwriteRule
	switch c {
	case ResolveOverwrite:
		rule = AlwaysOverwrite
	case ResolveSkip:
		rule = AlwaysSkip
	case ResolveAppend:
		rule = AlwaysAppend
	default:
		return nil
	}
	return &rule
}

// RuleForAnswer maps a conflict prompt answer to a rule:
// "Y" always overwrite, "y" overwrite once, "n" skip once, "a" append
// once; anything else defaults to overwrite once.
func RuleForAnswer(answer string) OverwriteRule {
	switch answer {
	case "Y":
		return AlwaysOverwrite
	case "y":
		return OverwriteOnce
	case "n":
		return SkipOnce
	case "a":
		return AppendOnce
	default:
		return OverwriteOnce
	}
}

// ConflictPrompter is the interactive capability a target may be given
// for resolving conflicts. Absence of a prompter while a prompt is
// required is a fatal configuration error, not a silent default.
type ConflictPrompter interface {
	// ResolveConflict asks what to do with one conflicting path and
	// returns the chosen rule.
	ResolveConflict(path string) (OverwriteRule, error)
}

// Target commits rendered files somewhere.
//
// Implementations own the conflict-resolution state for one generation
// run; concurrent CreateFile calls on one target are not allowed.
type Target interface {
	// CreateFile commits one rendered file. The rule argument seeds
	// the target's conflict state on first use; nil leaves the target
	// interactive.
	CreateFile(ctx context.Context, path string, content []byte, rule *OverwriteRule) (model.GeneratedFile, error)
}

// conflictState is the per-target conflict state machine.
type conflictState struct {
	rule     *OverwriteRule
	prompter ConflictPrompter
}

// seed installs the first non-nil rule supplied by a caller.
func (c *conflictState) seed(rule *OverwriteRule) {
	if c.rule == nil && rule != nil {
		r := *rule
		c.rule = &r
	}
}

// resolve decides the outcome for one conflicting path. "Always"
// rules answer directly; otherwise the prompter is consulted and its
// answer becomes the current rule.
func (c *conflictState) resolve(path string) (model.GeneratedFileStatus, error) {
	if c.rule != nil && c.rule.persists() {
		return c.rule.status(), nil
	}

	if c.prompter == nil {
		return 0, newGenerateError(PromptRequired,
			"file conflict requires a prompt but no interactive prompter is configured; use a non-interactive conflict policy",
			path, nil)
	}

	rule, err := c.prompter.ResolveConflict(path)
	if err != nil {
		return 0, err
	}
	c.rule = &rule
	debug.Debug("[generator] conflict on %s resolved to rule %d", path, rule)
	return rule.status(), nil
}

// DirectoryTarget writes rendered files under a root directory,
// creating parent directories as needed.
type DirectoryTarget struct {
	root  string
	state conflictState
}

// NewDirectoryTarget creates a target rooted at dir. The prompter may
// be nil when the caller always supplies a non-interactive policy.
func NewDirectoryTarget(dir string, prompter ConflictPrompter) *DirectoryTarget {
	return &DirectoryTarget{
		root:  dir,
		state: conflictState{prompter: prompter},
	}
}

// CreateFile implements Target against the filesystem.
func (t *DirectoryTarget) CreateFile(ctx context.Context, path string, content []byte, rule *OverwriteRule) (model.GeneratedFile, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedFile{}, err
	}
	t.state.seed(rule)

	full := filepath.Join(t.root, filepath.FromSlash(path))

	existing, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		if err := t.write(full, content, false); err != nil {
			return model.GeneratedFile{}, err
		}
		return model.GeneratedFile{Path: full, Status: model.StatusCreated}, nil
	}
	if err != nil {
		return model.GeneratedFile{}, newGenerateError(WriteFailed, "failed to read existing file", full, err)
	}

	if bytes.Equal(existing, content) {
		return model.GeneratedFile{Path: full, Status: model.StatusIdentical}, nil
	}

	status, err := t.state.resolve(path)
	if err != nil {
		return model.GeneratedFile{}, err
	}

	switch status {
	case model.StatusOverwritten:
		if err := t.write(full, content, false); err != nil {
			return model.GeneratedFile{}, err
		}
	case model.StatusAppended:
		if err := t.write(full, content, true); err != nil {
			return model.GeneratedFile{}, err
		}
	}

	return model.GeneratedFile{Path: full, Status: status}, nil
}

// write creates parent directories and writes or appends content.
func (t *DirectoryTarget) write(full string, content []byte, appendTo bool) error {
	if dir := filepath.Dir(full); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return newGenerateError(WriteFailed, "failed to create parent directory", full, err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if appendTo {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	f, err := os.OpenFile(full, flags, 0644)
	if err != nil {
		return newGenerateError(WriteFailed, "failed to open target file", full, err)
	}
	_, werr := f.Write(content)
	cerr := f.Close()
	if werr != nil {
		return newGenerateError(WriteFailed, "failed to write target file", full, werr)
	}
	if cerr != nil {
		return newGenerateError(WriteFailed, "failed to close target file", full, cerr)
	}
	return nil
}

// MemoryTarget commits rendered files into memory. It backs --dry-run
// and tests; the conflict state machine behaves exactly like the
// directory target's.
type MemoryTarget struct {
	files map[string][]byte
	state conflictState
}

// NewMemoryTarget creates an empty in-memory target.
func NewMemoryTarget(prompter ConflictPrompter) *MemoryTarget {
	return &MemoryTarget{
		files: make(map[string][]byte),
		state: conflictState{prompter: prompter},
	}
}

// Seed pre-populates an existing file, for conflict simulation.
func (t *MemoryTarget) Seed(path string, content []byte) {
	t.files[path] = content
}

// File returns the committed content for path.
func (t *MemoryTarget) File(path string) ([]byte, bool) {
	content, ok := t.files[path]
	return content, ok
}

// Len returns the number of stored files.
func (t *MemoryTarget) Len() int {
	return len(t.files)
}

// CreateFile implements Target in memory.
func (t *MemoryTarget) CreateFile(ctx context.Context, path string, content []byte, rule *OverwriteRule) (model.GeneratedFile, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedFile{}, err
	}
	t.state.seed(rule)

	existing, exists := t.files[path]
	if !exists {
		t.files[path] = content
		return model.GeneratedFile{Path: path, Status: model.StatusCreated}, nil
	}

	if bytes.Equal(existing, content) {
		return model.GeneratedFile{Path: path, Status: model.StatusIdentical}, nil
	}

	status, err := t.state.resolve(path)
	if err != nil {
		return model.GeneratedFile{}, err
	}

	switch status {
	case model.StatusOverwritten:
		t.files[path] = content
	case model.StatusAppended:
		t.files[path] = append(append([]byte{}, existing...), content...)
	}

	return model.GeneratedFile{Path: path, Status: status}, nil
}
