// Package runtime provides the execution context for mocotch commands.
//
// It carries the shared dependencies commands need: the loaded configuration,
// the logger and the workspace holding every project.
package runtime
