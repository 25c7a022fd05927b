// Package httpapi is the local HTTP control surface of a running camera, and
// the client the CLI uses to drive it.
//
// HTTP API
//
//	GET  /health          liveness probe, body "OK"
//	GET  /number          current DisplayNumber
//	PUT  /number          {"display_number":"4271"} set and persist it
//	GET  /picker.png      digit picker rendered for the current number
//	POST /capture         take a photo; 409 while another capture runs
//	GET  /preview.jpg     latest preview frame; 503 before the first frame
//	GET  /media           published photos; ?pending=1 includes pending ones
//	GET  /media/{id}      one media record
//
// Responses are JSON unless noted. Non-2xx statuses carry {"error": "..."}.
// Every request is access-logged with method, path, status, bytes and duration.
package httpapi
