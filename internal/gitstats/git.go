// Package gitstats turns a git history and a source tree into the
// statistics shown on the repository page.
package gitstats

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs git with args inside dir.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	Binary string
}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Record and field separators in the log format.
const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
)

const logFormat = "--pretty=format:%x1e%H%x1f%an%x1f%ae%x1f%ad%x1f%s"

// LogOptions narrows the history read by Log.
type LogOptions struct {
	Since    string // passed to --since
	MaxCount int
	Ref      string
}

// Log reads the history of the repository in dir.
func Log(ctx context.Context, r Runner, dir string, opts LogOptions) ([]Commit, error) {
	args := []string{"log", "--numstat", "--date=iso-strict", "--no-renames", logFormat}
	if opts.Since != "" {
		args = append(args, "--since="+opts.Since)
	}
	if opts.MaxCount > 0 {
		args = append(args, fmt.Sprintf("--max-count=%d", opts.MaxCount))
	}
	if opts.Ref != "" {
		args = append(args, opts.Ref)
	}
	out, err := r.Run(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	return ParseLog(string(out))
}

// RemoteURL returns the fetch URL of remote, usually "origin".
func RemoteURL(ctx context.Context, r Runner, dir, remote string) (string, error) {
	out, err := r.Run(ctx, dir, "remote", "get-url", remote)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Head returns the commit hash HEAD points to.
func Head(ctx context.Context, r Runner, dir string) (string, error) {
	out, err := r.Run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
