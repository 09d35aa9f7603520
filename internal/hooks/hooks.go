// Package hooks runs the optional pre/post generation commands a
// bundle declares. Hook commands are parsed with shell-style quoting
// and executed directly, without a shell.
package hooks

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/quarry-dev/quarry/internal/debug"
	"github.com/quarry-dev/quarry/internal/template/render"
)

// VarsPrefix marks a pre-generation hook stdout line whose remainder
// is a JSON object merged into the variable bindings.
const VarsPrefix = "@quarry-vars:"

// envVarPrefix prefixes the per-variable environment entries hooks see.
const envVarPrefix = "QUARRY_VAR_"

// envFiles is the environment variable carrying the generated file
// list to post-generation hooks, newline separated.
const envFiles = "QUARRY_FILES"

// Runner executes bundle hooks in a working directory.
type Runner struct {
	// Dir is the working directory for hook commands, normally the
	// generation output directory.
	Dir string
	// Stdout and Stderr receive the hook's output streams. Stderr may
	// be nil to inherit the process stderr.
	Stdout *bytes.Buffer
	Stderr *os.File
}

// NewRunner creates a hook runner working in dir.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir, Stdout: &bytes.Buffer{}, Stderr: os.Stderr}
}

// RunPreGen executes the pre-generation hook and returns binding
// overrides emitted on stdout via the vars prefix line. An empty
// command is a no-op.
func (r *Runner) RunPreGen(ctx context.Context, command string, bindings render.Bindings) (render.Bindings, error) {
	if strings.TrimSpace(command) == "" {
		return nil, nil
	}

	if err := r.run(ctx, "pre_gen", command, bindings, nil); err != nil {
		return nil, err
	}
	return r.parseVarsOutput()
}

// RunPostGen executes the post-generation hook with the generated file
// paths exposed in the environment. An empty command is a no-op.
func (r *Runner) RunPostGen(ctx context.Context, command string, bindings render.Bindings, files []string) error {
	if strings.TrimSpace(command) == "" {
		return nil
	}
	return r.run(ctx, "post_gen", command, bindings, files)
}

func (r *Runner) run(ctx context.Context, kind, command string, bindings render.Bindings, files []string) error {
	args, err := shellquote.Split(command)
	if err != nil {
		return NewHookError(kind, command, "failed to parse hook command", err)
	}
	if len(args) == 0 {
		return nil
	}
	debug.Debug("[hooks] running %s hook: %s", kind, command)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = hookEnv(bindings, files)
	r.Stdout.Reset()
	cmd.Stdout = r.Stdout
	if r.Stderr != nil {
		cmd.Stderr = r.Stderr
	}

	if err := cmd.Run(); err != nil {
		return NewHookError(kind, command, "hook command failed", err)
	}
	return nil
}

// hookEnv builds the hook environment: the parent environment plus one
// QUARRY_VAR_<NAME> entry per binding and, for post hooks, the
// generated file list.
func hookEnv(bindings render.Bindings, files []string) []string {
	env := os.Environ()
	for name, val := range bindings {
		env = append(env, fmt.Sprintf("%s%s=%s", envVarPrefix, strings.ToUpper(name), envValue(val)))
	}
	if files != nil {
		env = append(env, envFiles+"="+strings.Join(files, "\n"))
	}
	return env
}

// envValue renders a binding for the environment; lists and maps are
// encoded as JSON so hooks can parse them.
func envValue(val interface{}) string {
	switch val.(type) {
	case []interface{}, map[string]interface{}:
		encoded, err := json.Marshal(val)
		if err != nil {
			return render.Stringify(val)
		}
		return string(encoded)
	default:
		return render.Stringify(val)
	}
}

// parseVarsOutput scans hook stdout for the last vars prefix line and
// decodes it.
func (r *Runner) parseVarsOutput() (render.Bindings, error) {
	var overrides render.Bindings

	scanner := bufio.NewScanner(bytes.NewReader(r.Stdout.Bytes()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, VarsPrefix) {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, VarsPrefix))

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
			return nil, NewHookError("pre_gen", "", "invalid variable override JSON from hook", err)
		}
		overrides = render.Bindings(decoded)
		debug.Debug("[hooks] pre_gen hook overrides %d variable(s)", len(overrides))
	}
	if err := scanner.Err(); err != nil {
		return nil, NewHookError("pre_gen", "", "failed to read hook output", err)
	}
	return overrides, nil
}
