// Package sim implements the astroNS discrete-event simulation core: a
// cooperative, single-threaded scheduler that advances a virtual clock over
// a directed graph of processing nodes connected by predicate-routed pipes.
package sim
