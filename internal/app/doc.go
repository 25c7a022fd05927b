// Package app wires application dependencies for the CLI.
//
// It loads Config with viper, builds the concrete stores, devices and
// services from it, exposes them via the Wire struct for commands to use, and
// runs the long-lived serve loop.
package app
