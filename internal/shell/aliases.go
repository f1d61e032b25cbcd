// Package shell manages the lcagents alias block in a user's shell
// profile. The block is delimited by markers so install and uninstall can
// rewrite it without disturbing the rest of the file.
// Implements: prd006-shell-integration (R1, R2).
package shell

import (
	"fmt"
	"os"
	"strings"
)

// Markers delimiting the managed block. Everything between them belongs to
// lcagents; user content outside is never rewritten.
const (
	blockBegin = "# >>> lcagents aliases >>>"
	blockEnd   = "# <<< lcagents aliases <<<"
)

// Result indicates what happened to the profile file.
type Result string

const (
	Updated   Result = "updated"
	Unchanged Result = "unchanged"
	Removed   Result = "removed"
)

// AliasBlock renders the managed block contents for the given install
// root.
func AliasBlock(root string) string {
	var b strings.Builder
	b.WriteString(blockBegin + "\n")
	fmt.Fprintf(&b, "alias lca='lcagents --root %q'\n", root)
	fmt.Fprintf(&b, "alias lca-agents='lcagents --root %q res list agents'\n", root)
	b.WriteString(blockEnd + "\n")
	return b.String()
}

// EnsureAliases writes or refreshes the managed block in the profile file
// at profilePath, creating the file if missing. Idempotent: a profile that
// already carries the current block is left untouched.
func EnsureAliases(profilePath, root string) (Result, error) {
	block := AliasBlock(root)

	content, err := os.ReadFile(profilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err := os.WriteFile(profilePath, []byte(block), 0o644); err != nil {
			return "", err
		}
		return Updated, nil
	}

	stripped, had := stripBlock(string(content))
	if had && strings.Contains(string(content), block) {
		return Unchanged, nil
	}

	updated := stripped
	if len(updated) > 0 && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += block

	if err := os.WriteFile(profilePath, []byte(updated), 0o644); err != nil {
		return "", err
	}
	return Updated, nil
}

// RemoveAliases deletes the managed block from the profile file. A missing
// file or a profile without the block is not an error.
func RemoveAliases(profilePath string) (Result, error) {
	content, err := os.ReadFile(profilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Unchanged, nil
		}
		return "", err
	}

	stripped, had := stripBlock(string(content))
	if !had {
		return Unchanged, nil
	}

	if err := os.WriteFile(profilePath, []byte(stripped), 0o644); err != nil {
		return "", err
	}
	return Removed, nil
}

// stripBlock removes the managed block from content, reporting whether one
// was present. Lines between stray markers are dropped conservatively so a
// half-written block does not survive.
func stripBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	var kept []string
	inBlock := false
	found := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == blockBegin:
			inBlock = true
			found = true
		case trimmed == blockEnd:
			inBlock = false
		case !inBlock:
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n"), found
}
