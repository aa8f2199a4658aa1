// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.tdl/tdl.toml)
// 3. Project config file (tdl.toml or .tdl.toml in the current directory)
// 4. Environment variables (TDL_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
package config
