// Package environment applies fetched variables to the process environment
// and runs commands inside it.
//
// A Manager snapshots the environment the first time variables are set and
// rebuilds every later environment from that snapshot, so variables from a
// previous config never leak into the next one. Restore puts the snapshot
// back exactly.
//
//	mgr := environment.NewManager(nil, log)
//	if err := mgr.Set(configFile, vars); err != nil {
//		return err
//	}
//	defer mgr.Restore()
//
// Commands are run either as an argument vector via os/exec or as a shell
// string through the mvdan.cc/sh interpreter, so `run --shell` behaves the
// same on every platform.
package environment
