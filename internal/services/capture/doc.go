// Package capture drives one photo from shutter press to published media record.
//
// A capture reserves a pending media record, asks the camera to persist the
// frame, burns the DisplayNumber badge into the saved file on a dedicated
// single-worker goroutine, and only then publishes the record with the
// fingerprint of the final bytes. Overlay failures are logged and swallowed:
// the unmodified photo stays on disk and is still published.
package capture
