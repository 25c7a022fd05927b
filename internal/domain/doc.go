// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (display number, rotation, media records) and
// contracts (stores, camera, compositor) only.
package domain
