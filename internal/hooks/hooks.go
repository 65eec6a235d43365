// Package hooks installs and removes a git post-commit hook that keeps the
// graph index in sync after every commit. The hook is identified by a
// marker comment so install/remove only ever touch hooks this package
// wrote.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	postCommitHook = "post-commit"
	marker         = "# coraline auto-sync hook"
)

const postCommitScript = `#!/bin/sh
# coraline auto-sync hook
# This hook keeps the graph in sync after each commit.
# To remove: coraline hooks remove

(
  if [ ! -d ".coraline" ]; then
    exit 0
  fi

  if command -v coraline >/dev/null 2>&1; then
    coraline sync --quiet 2>/dev/null &
  fi
) &

exit 0
`

// InstallResult reports the outcome of Install.
type InstallResult struct {
	Success              bool
	HookPath             string
	Message              string
	PreviousHookBackedUp bool
	BackupPath           string
}

// RemoveResult reports the outcome of Remove.
type RemoveResult struct {
	Success           bool
	Message           string
	RestoredFromBackup bool
}

// Manager installs, removes, and inspects the post-commit hook for a
// single project's .git directory.
type Manager struct {
	gitDir   string
	hooksDir string
}

// NewManager returns a Manager rooted at projectRoot's .git directory.
func NewManager(projectRoot string) *Manager {
	gitDir := filepath.Join(projectRoot, ".git")
	return &Manager{gitDir: gitDir, hooksDir: filepath.Join(gitDir, "hooks")}
}

// IsGitRepository reports whether the project root has a .git directory.
func (m *Manager) IsGitRepository() bool {
	info, err := os.Stat(m.gitDir)
	return err == nil && info.IsDir()
}

func (m *Manager) hookPath() string {
	return filepath.Join(m.hooksDir, postCommitHook)
}

func (m *Manager) backupPath() string {
	return m.hookPath() + ".coraline-backup"
}

// IsInstalled reports whether the current post-commit hook, if any, was
// written by this package.
func (m *Manager) IsInstalled() bool {
	content, err := os.ReadFile(m.hookPath())
	if err != nil {
		return false
	}
	return strings.Contains(string(content), marker)
}

// Install writes the post-commit hook, backing up any pre-existing hook
// that doesn't already carry the marker.
func (m *Manager) Install() InstallResult {
	hookPath := m.hookPath()

	if !m.IsGitRepository() {
		return InstallResult{Success: false, HookPath: hookPath, Message: "not a git repository; run git init first"}
	}

	if err := os.MkdirAll(m.hooksDir, 0o755); err != nil {
		return InstallResult{Success: false, HookPath: hookPath, Message: fmt.Sprintf("failed to create hooks directory: %v", err)}
	}

	var backedUp bool
	var backupPath string

	if existing, err := os.ReadFile(hookPath); err == nil {
		if !strings.Contains(string(existing), marker) {
			backupPath = m.backupPath()
			if err := os.WriteFile(backupPath, existing, 0o755); err != nil {
				return InstallResult{Success: false, HookPath: hookPath, Message: fmt.Sprintf("failed to back up existing hook: %v", err)}
			}
			backedUp = true
		}
	}

	if err := os.WriteFile(hookPath, []byte(postCommitScript), 0o755); err != nil {
		return InstallResult{Success: false, HookPath: hookPath, Message: fmt.Sprintf("failed to write hook: %v", err), PreviousHookBackedUp: backedUp, BackupPath: backupPath}
	}

	return InstallResult{
		Success:              true,
		HookPath:             hookPath,
		Message:              "post-commit hook installed",
		PreviousHookBackedUp: backedUp,
		BackupPath:           backupPath,
	}
}

// Remove deletes the hook this package installed, restoring any backed-up
// hook it had displaced. Removing a hook this package didn't install is a
// no-op failure: it leaves unrelated hooks untouched.
func (m *Manager) Remove() RemoveResult {
	hookPath := m.hookPath()
	backupPath := m.backupPath()

	content, err := os.ReadFile(hookPath)
	if os.IsNotExist(err) {
		return RemoveResult{Success: true, Message: "no post-commit hook found"}
	}
	if err != nil {
		return RemoveResult{Success: false, Message: fmt.Sprintf("failed to read hook: %v", err)}
	}

	if !strings.Contains(string(content), marker) {
		return RemoveResult{Success: false, Message: "post-commit hook was not installed by coraline"}
	}

	if err := os.Remove(hookPath); err != nil {
		return RemoveResult{Success: false, Message: fmt.Sprintf("failed to remove hook: %v", err)}
	}

	if _, err := os.Stat(backupPath); err == nil {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return RemoveResult{Success: true, Message: fmt.Sprintf("hook removed; failed to restore backup: %v", err)}
		}
		return RemoveResult{Success: true, Message: "hook removed; previous hook restored", RestoredFromBackup: true}
	}

	return RemoveResult{Success: true, Message: "hook removed"}
}
