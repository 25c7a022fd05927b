// Package crypto computes content fingerprints for published photos.
//
// Contents
//
//   - BLAKE2b-256 digests of byte slices and files (Fingerprint, FingerprintFile)
//   - Short display form for logs (Short)
//
// The media index stores the fingerprint of the final, post-overlay bytes so a
// reader can tell whether it observed the published file or a pre-overlay capture.
package crypto
