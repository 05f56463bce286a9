// Package ui provides the small set of line-oriented output helpers pimon's
// non-dashboard commands use: a status spinner, status symbols and the
// ANSI color palette they render with.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - Successful checks
//	ColorError   (red)    - Failures
//	ColorWarning (yellow) - Skipped checks
//	ColorMuted   (gray)   - Timing and secondary text
//
// lipgloss drops them automatically when the color profile is Ascii, which
// the --no-color flag and color: never select.
package ui
