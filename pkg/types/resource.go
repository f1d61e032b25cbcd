package types

import (
	"errors"
	"path"
	"strings"
)

// Standard resource type names. Each maps to a subdirectory shared by all
// layers. The set is open: the resolver treats an unrecognized type as an
// empty category rather than an error.
// Implements: prd001-layered-resolution R2.
const (
	TypeAgents     = "agents"
	TypeTasks      = "tasks"
	TypeTemplates  = "templates"
	TypeChecklists = "checklists"
	TypeData       = "data"
	TypeWorkflows  = "workflows"
	TypeUtils      = "utils"
	TypeAgentTeams = "agent-teams"
)

// ResourceTypes lists the standard resource type names in the order the CLI
// presents them.
var ResourceTypes = []string{
	TypeAgents,
	TypeTasks,
	TypeTemplates,
	TypeChecklists,
	TypeData,
	TypeWorkflows,
	TypeUtils,
	TypeAgentTeams,
}

// resourceExtensions are the file extensions a resource name may carry.
// Base-name normalization strips exactly these.
var resourceExtensions = []string{".md", ".yaml", ".yml"}

// ExtensionSuffix is appended to a base name when a conflicting create is
// resolved as a linked extension resource under the custom layer. The
// extension is logically linked to the base resource but never auto-merged
// by the resolver; merging is the caller's responsibility.
const ExtensionSuffix = "-enhancement"

// Resource operation errors.
var (
	ErrInvalidResourceName = errors.New("invalid resource name")
	ErrInvalidResourceType = errors.New("invalid resource type")
	ErrResourceExists      = errors.New("resource already exists")
)

// Resource identifies a resolved resource: a named file under a resource
// type within one layer. Content is populated only by read operations.
// Implements: prd001-layered-resolution R3; one shared record for every
// resolver operation.
type Resource struct {
	Type    string `json:"type"`
	Name    string `json:"name"`   // file name including extension
	Source  Layer  `json:"source"` // layer the resource was resolved from
	Path    string `json:"path"`   // absolute filesystem location
	Content []byte `json:"-"`
}

// BaseName returns the resource name with any known extension stripped.
func (r Resource) BaseName() string {
	return NormalizeBaseName(r.Name)
}

// NormalizeBaseName strips exactly one known resource extension
// (.md, .yaml, .yml) from name. Names with other extensions are returned
// unchanged; conflict detection compares these normalized forms for
// equality, never substring containment (prd001-layered-resolution R6.2).
func NormalizeBaseName(name string) string {
	ext := path.Ext(name)
	for _, known := range resourceExtensions {
		if strings.EqualFold(ext, known) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// SameBaseName reports whether two resource names are equal after
// extension normalization.
func SameBaseName(a, b string) bool {
	return NormalizeBaseName(a) == NormalizeBaseName(b)
}

// ValidateResourceName rejects names that would escape the layer directory
// or collide with path separators. An empty name is invalid.
func ValidateResourceName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidResourceName
	}
	if strings.ContainsAny(name, "/\\") {
		return ErrInvalidResourceName
	}
	return nil
}

// ValidateResourceType rejects type names that would escape the layer tree.
// The type set stays open (an unknown but well-formed type is a valid empty
// category); only path-traversing names are refused.
func ValidateResourceType(resourceType string) error {
	if ValidateResourceName(resourceType) != nil {
		return ErrInvalidResourceType
	}
	return nil
}
