// Package project manages the version-control lifecycle of one project
// directory.
//
// A Handle is created unbound with New and bound with InitOrOpen, Open or
// Clone. Subsequent operations (Status, CommitAll, Push, Pull,
// DiscardChanges, SwitchBranch) run against the bound repository. Every
// operation a caller can reach reports a Result instead of an error; the
// diagnostic goes to the handle's logger.
package project
