// Package config loads and validates the bbt configuration file.
//
// It handles:
//   - Locating the file (flag, BBT_CONFIG, or .bbt.yaml at the repository root)
//   - Strict YAML decoding (unknown keys are rejected)
//   - Defaults and validation of every recognized option
package config
