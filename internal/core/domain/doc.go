// Package domain defines the core business entities for Revisify.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Buffer: The note text being edited plus the host control's selection
//   - Selection: A rune-offset range into a buffer
//   - PublishedNote: The snapshot a user exposes to the viewer
//   - Rendered: A derived HTML fragment with word/char/line counts
//
// It also holds the pure text transformations (Insert, WrapBlock, CountText)
// used by the edit session. They take a buffer and return a new buffer, so
// they can be tested without any UI.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
