// Package web serves the browser editor and viewer.
//
// The browser textarea is only the host control: every keystroke is sent to
// the edit session, which persists and renders the draft and returns the
// sanitized preview. Published revisions reach open viewer pages as
// server-sent events.
package web
