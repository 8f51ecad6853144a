// Package orchestrator executes the roast graph: a fan-out of independent
// fetch tasks, a completion barrier releasing the join, and a single
// pipeline trigger per successful join. Failures are terminal; the run
// either yields a complete output or a categorized error.
package orchestrator
