// Package types defines the layer model, resource records, runtime
// configuration, and standard errors shared by the lcagents resolver,
// installer, and CLI.
// Implements: prd001-layered-resolution (Layer, Resource, errors);
//
//	docs/ARCHITECTURE § Data Model.
package types
