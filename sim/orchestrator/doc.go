// Package orchestrator implements the run orchestrator (C10): building a
// Simulation from a network description, driving it to completion, and
// writing the run's artifact set (§6 "Artifacts produced by a run").
package orchestrator
