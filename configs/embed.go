// Package configs provides embedded configuration templates for eldaracheck.
//
// Templates are embedded at build time using Go's //go:embed directive so
// `eldaracheck rules init` works from any distribution of the binary.
//
// Configuration Hierarchy (see internal/config/config.go Load()):
//  1. Hardcoded defaults (internal/config/config.go NewRulebook())
//  2. Project rulebook (.eldaracheck.yaml)
package configs

import _ "embed"

// RulebookTemplate is the commented template for a project rulebook.
// Created by: `eldaracheck rules init` at .eldaracheck.yaml in the project root.
// Its values match the built-in defaults.
//
//go:embed rulebook.example.yaml
var RulebookTemplate string
