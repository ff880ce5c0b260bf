// Package nodes supplies the built-in node-kind catalogue (SPEC_FULL
// supplemented feature 5): the processors and sources a network
// description can reference by type tag, plus Register to populate a
// sim.Registry with all of them.
package nodes
