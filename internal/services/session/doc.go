// Package session owns the in-memory DisplayNumber for the lifetime of a camera
// screen: it is loaded once on Open, changed only through a confirmed picker or
// Apply, persisted on every change, and unusable after Close.
package session
