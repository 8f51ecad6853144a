// Package extension provides the run-time registry through which graph
// actions are resolved to Go action services (for example the GitHub lookup
// or the generation pipeline).
//
// The registry is normally populated through the public APIs under the root
// gitroast package, therefore most applications do not need to import this
// package directly.
package extension
