// Package commands defines the fotocamera CLI and wires dependencies for subcommands.
//
// Commands
//
//   - number show|set|pick   Read, set or interactively pick the DisplayNumber
//   - stamp <file>...        Burn the DisplayNumber badge into existing photos
//   - capture                Take one photo (locally, or on a server with --remote)
//   - launch                 Print what the app does on start
//   - answer yes|no|later    Answer the default-camera prompt
//   - media ls|show          List published photos
//   - serve                  Run the HTTP control surface, preview and remote shutter
//
// # Implementation
//
// The root command loads the viper config, builds the zap logger and the
// dependency graph before any subcommand runs, and closes them afterwards.
package commands
