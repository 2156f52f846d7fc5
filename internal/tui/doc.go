// Package tui provides the terminal side of bbt.
//
// It handles:
//   - Interactive confirmations and inputs (using bubbletea and survey)
//   - Leveled console output mirrored to a rotating log file (Splog)
//   - Terminal styling (using lipgloss)
package tui
