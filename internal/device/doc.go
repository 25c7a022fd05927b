// Package device provides the concrete cameras and inputs behind the capture
// orchestrator: a screen-grab camera, a tethered-capture folder camera, a
// serial remote shutter, and the preview frame buffer they present to.
package device
