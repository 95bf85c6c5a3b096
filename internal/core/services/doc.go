// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The edit session owns the note buffer, the publisher snapshots it for
// viewers, and the viewer renders whatever was last published.
package services
