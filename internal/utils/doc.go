// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Branch and project name validation and sanitization
//   - Terminal interactivity detection
package utils
