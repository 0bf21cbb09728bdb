// Package logger provides leveled console logging for Envault CLI commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// The `debug` user setting has the same effect as --debug.
//
//	Logger.Infof()          // Shown with --verbose or --debug
//	Logger.Debugf()         // Shown only with --debug
//	Logger.Warnf()          // Shown with --verbose or --debug
//	Logger.WarnfAlways()    // Always shown
//	Logger.Errorf()         // Shown with --debug
//	Logger.ErrorfAndReturn  // Errorf, then returns the formatted error
//
// Commands create a logger in their PersistentPreRun and pass it to the
// workflows package.
package logger
