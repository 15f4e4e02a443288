// Package launch holds the launch record dataset and the control state that
// filters it.
//
// A Dataset is loaded once and never mutated; every filter returns a new
// Dataset sharing no backing storage with its source.
package launch
