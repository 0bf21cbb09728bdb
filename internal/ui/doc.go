// Package ui provides semantic text formatting for CLI output.
//
// Formatters colorize content when the terminal supports it. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
//	ui.Code.Sprint("envault run -- make")   // Commands
//	ui.Path.Sprint("envault/dev.yml")       // File paths
//	ui.Key.Sprint("DATABASE_URL")           // Variable names
//	ui.Success.Sprint("✓")                  // Success indicators
//	ui.Error.Sprint("✗")                    // Error indicators
//	ui.Info.Sprint("→")                     // Hints
//	ui.Highlight.Sprint("dev")              // User values
//	ui.Muted.Sprint("current")              // De-emphasized text
package ui
