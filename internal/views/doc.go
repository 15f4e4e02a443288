// Package views derives chart specifications from the launch dataset and the
// current control state. Every view is a pure function of its inputs.
package views
