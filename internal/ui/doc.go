// Package ui provides styled text output for hostdash's non-interactive
// commands.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, suggestions
//
// Lip Gloss downgrades or drops colors to match the output's profile, so the
// same strings work when piped.
package ui
