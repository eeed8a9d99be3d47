package rebase

import (
	"bufio"
	"fmt"
	"strings"
)

// TodoEntry is a single line of a git interactive-rebase todo file.
type TodoEntry struct {
	Action  ActionType
	Commit  string
	Subject string
}

// ParseTodoFile parses a git rebase todo file into entries, ignoring
// comments and blank lines.
func ParseTodoFile(content string) []TodoEntry {
	var entries []TodoEntry

	scanner := bufio.NewScanner(strings.NewReader(content))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, ok := parseTodoLine(line)
		if ok {
			entries = append(entries, entry)
		}
	}

	return entries
}

func parseTodoLine(line string) (TodoEntry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return TodoEntry{}, false
	}

	action := expandShortAction(strings.ToLower(fields[0]))
	if !action.Valid() {
		return TodoEntry{}, false
	}

	subject := ""
	if len(fields) > 2 {
		subject = strings.Join(fields[2:], " ")
	}

	return TodoEntry{Action: action, Commit: fields[1], Subject: subject}, true
}

func expandShortAction(s string) ActionType {
	switch s {
	case "p", "pick":
		return ActionPick
	case "r", "reword":
		return ActionReword
	case "e", "edit":
		return ActionEdit
	case "s", "squash":
		return ActionSquash
	case "f", "fixup":
		return ActionFixup
	case "d", "drop":
		return ActionDrop
	default:
		return ActionType(s)
	}
}

// ValidateAgainstCommits checks that every action in the spec
// references a commit present in the original todo file, allowing
// short-hash prefix matches.
func (s *Spec) ValidateAgainstCommits(original []TodoEntry) error {
	valid := make(map[string]bool, len(original)*2)

	for _, e := range original {
		valid[e.Commit] = true
		if len(e.Commit) >= 7 {
			valid[e.Commit[:7]] = true
		}
	}

	for i, a := range s.Actions {
		found := false

		for v := range valid {
			if strings.HasPrefix(v, a.Commit) || strings.HasPrefix(a.Commit, v) {
				found = true

				break
			}
		}

		if !found {
			return fmt.Errorf("action %d: commit %q not found in rebase range", i+1, a.Commit)
		}
	}

	return nil
}

// ReorderToMatchSpec reorders and retypes the original todo entries
// to match the spec, preserving the original full hashes and subjects.
func ReorderToMatchSpec(spec *Spec, original []TodoEntry) ([]TodoEntry, error) {
	byCommit := make(map[string]TodoEntry, len(original)*2)

	for _, e := range original {
		byCommit[e.Commit] = e
		if len(e.Commit) >= 7 {
			byCommit[e.Commit[:7]] = e
		}
	}

	result := make([]TodoEntry, 0, len(spec.Actions))

	for _, a := range spec.Actions {
		entry, ok := findCommit(byCommit, a.Commit)
		if !ok {
			return nil, fmt.Errorf("commit %q not found", a.Commit)
		}

		result = append(result, TodoEntry{
			Action:  a.Type,
			Commit:  entry.Commit,
			Subject: entry.Subject,
		})
	}

	return result, nil
}

func findCommit(m map[string]TodoEntry, commit string) (TodoEntry, bool) {
	if entry, ok := m[commit]; ok {
		return entry, true
	}

	for key, entry := range m {
		if strings.HasPrefix(key, commit) || strings.HasPrefix(commit, key) {
			return entry, true
		}
	}

	return TodoEntry{}, false
}

// GenerateTodoFromEntries renders entries back into git's todo-file
// syntax.
func GenerateTodoFromEntries(entries []TodoEntry) string {
	var sb strings.Builder

	for _, e := range entries {
		fmt.Fprintf(&sb, "%s %s %s\n", e.Action, e.Commit, e.Subject)
	}

	return sb.String()
}
