// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DraftStore: Key-value persistence for the draft and the published note
//   - Renderer: Markdown to display conversion (sanitized HTML or terminal text)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Subscriber: Push notification of store changes. Without it, viewers poll.
//   - Prompter: Interactive confirmation and input. Without it, prompts are cancelled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
