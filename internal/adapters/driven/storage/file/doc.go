// Package file provides a TOML file implementation of driven.DraftStore.
//
// All records live in one human-readable file. Writes replace the file
// atomically (temp file and rename), so a reader in another process sees
// either the old or the new content. The store also implements
// driven.Subscriber by watching the file's directory with fsnotify, which
// lets a viewer in one process react to a publish from another.
package file
