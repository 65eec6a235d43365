// Package memory persists project-specific knowledge as markdown files
// under .coraline/memories/, giving an external tool consumer a place to
// write and recall notes across sessions.
package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Manager reads and writes memory files rooted at a single project's
// .coraline/memories/ directory.
type Manager struct {
	dir string
}

// NewManager creates the memories directory if it doesn't already exist
// and returns a Manager rooted there.
func NewManager(projectRoot string) (*Manager, error) {
	dir := filepath.Join(projectRoot, ".coraline", "memories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the memories directory path.
func (m *Manager) Dir() string {
	return m.dir
}

func (m *Manager) pathFor(name string) string {
	name = strings.TrimSuffix(name, ".md")
	return filepath.Join(m.dir, name+".md")
}

// Write creates or overwrites the named memory with content.
func (m *Manager) Write(name, content string) error {
	return os.WriteFile(m.pathFor(name), []byte(content), 0o644)
}

// Read returns the named memory's content. A missing memory is not an
// error: it returns a human-readable placeholder, matching the
// read-before-write workflow external tool callers rely on.
func (m *Manager) Read(name string) (string, error) {
	path := m.pathFor(name)
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Memory %q not found. Consider creating it with Write if needed.", name), nil
	}
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// List returns the sorted names of every memory file present.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named memory. Deleting an absent memory is an error.
func (m *Manager) Delete(name string) error {
	path := m.pathFor(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("memory %q not found", name)
	}
	return os.Remove(path)
}

// Exists reports whether the named memory is present.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.pathFor(name))
	return err == nil
}

// Seed writes the four starter memory templates init wires up for a new
// project: a project overview, style conventions, suggested commands, and
// a feature completion checklist.
func Seed(projectRoot, projectName string) error {
	m, err := NewManager(projectRoot)
	if err != nil {
		return err
	}
	for name, content := range seedTemplates(projectName) {
		if err := m.Write(name, content); err != nil {
			return err
		}
	}
	return nil
}

func seedTemplates(projectName string) map[string]string {
	return map[string]string{
		"project_overview": fmt.Sprintf(`# %s - Project Overview

## Purpose
[Describe the main purpose and goals of this project]

## Architecture
[High-level architecture description]

## Key Components
- [Component 1]: [Description]
- [Component 2]: [Description]

## Technologies
- [Technology stack]

## Entry Points
- [Main files or modules]

## Notes
[Any important notes or context]
`, projectName),

		"style_conventions": `# Code Style Conventions

## General Principles
- [Principle 1]
- [Principle 2]

## Naming Conventions
- Files: [convention]
- Functions: [convention]
- Variables: [convention]
- Types: [convention]

## Code Organization
- [Organizational pattern]

## Best Practices
- [Practice 1]
- [Practice 2]

## Patterns to Avoid
- [Anti-pattern 1]
- [Anti-pattern 2]
`,

		"suggested_commands": `# Suggested Development Commands

## Build
` + "```bash" + `
go build ./...
` + "```" + `

## Test
` + "```bash" + `
go test ./...
` + "```" + `

## Run
` + "```bash" + `
go run ./cmd/coraline
` + "```" + `

## Other Useful Commands
` + "```bash" + `
go vet ./...
gofmt -l .
` + "```" + `
`,

		"completion_checklist": `# Feature Completion Checklist

When implementing a new feature, ensure:

- [ ] Code follows style conventions
- [ ] Unit tests written and passing
- [ ] Integration tests added if needed
- [ ] Documentation updated
- [ ] Error handling implemented
- [ ] Edge cases considered
- [ ] Performance implications reviewed
- [ ] Security implications reviewed
- [ ] Code reviewed
`,
	}
}
