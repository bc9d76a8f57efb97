// Package tui is the terminal form for creating records.
//
// The form binds a name input and an identifier input to a
// slugfield.Field: typing a name derives the identifier, editing the
// identifier switches the field to manual mode, and ctrl+r regenerates it
// from the name. Field changes reach the running program through a Relay
// as SnapshotMsg values; the form drops snapshots older than the one it
// shows.
package tui
