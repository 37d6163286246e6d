package vcs

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Git is a Provider backed by the git CLI. All methods shell out and are
// safe to call concurrently.
type Git struct{}

// DiffBase returns the HEAD contents of path.
func (Git) DiffBase(path string) ([]byte, error) {
	dir := filepath.Dir(path)
	rel, err := relToToplevel(dir, path)
	if err != nil {
		return nil, err
	}
	out, err := gitOutput(dir, "show", "HEAD:"+rel)
	if err != nil {
		return nil, fmt.Errorf("vcs: diff base of %s: %w", path, err)
	}
	return out, nil
}

// CurrentHeadName returns the branch name, or a short hash on a detached
// head.
func (Git) CurrentHeadName(path string) (string, error) {
	dir := filepath.Dir(path)
	out, err := gitOutput(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("vcs: head name at %s: %w", path, err)
	}
	name := strings.TrimSpace(string(out))
	if name == "HEAD" {
		out, err = gitOutput(dir, "rev-parse", "--short", "HEAD")
		if err != nil {
			return "", fmt.Errorf("vcs: head name at %s: %w", path, err)
		}
		name = strings.TrimSpace(string(out))
	}
	return name, nil
}

// ForEachChangedFile walks `git status --porcelain` output under cwd.
func (Git) ForEachChangedFile(ctx context.Context, cwd string, fn func(FileChange) error) error {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = cwd
	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("vcs: status at %s: %w", cwd, err)
	}
	for _, change := range parsePorcelain(out) {
		if err := fn(change); err != nil {
			return err
		}
	}
	return nil
}

func parsePorcelain(out []byte) []FileChange {
	var changes []FileChange
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if len(line) < 4 {
			continue
		}
		status, path := line[:2], line[3:]
		// Renames list "old -> new"; the new path is the live one.
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		kind := Modified
		switch {
		case strings.ContainsAny(status, "A?"):
			kind = Added
		case strings.ContainsAny(status, "D"):
			kind = Removed
		}
		changes = append(changes, FileChange{Path: path, Kind: kind})
	}
	return changes
}

func relToToplevel(dir, path string) (string, error) {
	out, err := gitOutput(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("vcs: toplevel of %s: %w", dir, err)
	}
	top := strings.TrimSpace(string(out))
	rel, err := filepath.Rel(top, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func gitOutput(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	return cmd.Output()
}
