// Package configs provides embedded configuration templates for filesearch.
//
// Templates are embedded at build time using Go's //go:embed directive so
// they ship with every distribution (source builds, binary releases,
// package manager installs) without relying on a separate data directory.
//
// Configuration hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config/config.go NewConfig())
//  2. User config (~/.config/filesearch/config.yaml)
//  3. Project config (.filesearch.yaml)
//  4. Environment variables (FILESEARCH_*)
package configs

import _ "embed"

// UserConfigTemplate is the template for machine-level configuration.
// Intended target: ~/.config/filesearch/config.yaml.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is the template for project-level configuration.
// Intended target: .filesearch.yaml at a project root.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string
