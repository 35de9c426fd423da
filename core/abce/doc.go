// Package abce adapts user-provided ABCE dispatch modules to the dispatch
// strategy interface. ABCE (Agent-Based Capacity Expansion) modules live
// outside this codebase: the adapter locates the module file from its
// settings or the ABCE_DIR environment variable, verifies it up front, and
// loads it fresh on every dispatch call so users can edit the module between
// periods of a running simulation.
package abce
