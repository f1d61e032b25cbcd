package types

import "errors"

// Runtime config validation errors (prd002-runtime-config R1.4).
var (
	ErrCoreSystemEmpty = errors.New("core system must not be empty")
	ErrVersionEmpty    = errors.New("version must not be empty")
)

// TechStack holds stored tech-stack metadata for the installed project.
// The CLI records it; nothing in the resolver depends on it.
type TechStack struct {
	Primary    string   `json:"primary,omitempty" yaml:"primary,omitempty" mapstructure:"primary"`
	Frameworks []string `json:"frameworks,omitempty" yaml:"frameworks,omitempty" mapstructure:"frameworks"`
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty" mapstructure:"notes"`
}

// RuntimeConfig is the persisted runtime configuration record, stored at
// runtime/config.yaml inside the install tree. The resolver only consumes
// CoreSystem to locate the core/<name>/ subtree; the remaining fields
// belong to the installer and CLI.
// Implements: prd002-runtime-config R1.
type RuntimeConfig struct {
	// CoreSystem is the active core-system bundle name.
	CoreSystem string `json:"coreSystem" yaml:"coreSystem" mapstructure:"coreSystem"`

	// FallbackCoreSystem is consulted when the active bundle's core
	// directory is missing.
	FallbackCoreSystem string `json:"fallbackCoreSystem,omitempty" yaml:"fallbackCoreSystem,omitempty" mapstructure:"fallbackCoreSystem"`

	// InstallationID is a UUID stamped once at install time.
	InstallationID string `json:"installationId,omitempty" yaml:"installationId,omitempty" mapstructure:"installationId"`

	// Version is the lcagents version that performed the install.
	Version string `json:"version" yaml:"version" mapstructure:"version"`

	// InstalledAt is the install timestamp in RFC 3339 form.
	InstalledAt string `json:"installedAt,omitempty" yaml:"installedAt,omitempty" mapstructure:"installedAt"`

	// TechStack is stored project metadata (never detected here).
	TechStack TechStack `json:"techStack,omitempty" yaml:"techStack,omitempty" mapstructure:"techStack"`
}

// Validate checks that the RuntimeConfig is well-formed. It returns a
// sentinel error from this package on failure.
func (c RuntimeConfig) Validate() error {
	if c.CoreSystem == "" {
		return ErrCoreSystemEmpty
	}
	if c.Version == "" {
		return ErrVersionEmpty
	}
	return nil
}

// ActiveOrFallback returns the active core system, or the fallback when
// active is empty.
func (c RuntimeConfig) ActiveOrFallback() string {
	if c.CoreSystem != "" {
		return c.CoreSystem
	}
	return c.FallbackCoreSystem
}
