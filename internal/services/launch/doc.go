// Package launch decides what the app does when it starts: offer to become the
// default camera, or go straight to the camera.
package launch
