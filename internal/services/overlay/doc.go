// Package overlay burns the DisplayNumber badge into captured photos.
//
// Apply decodes a persisted image, applies its EXIF rotation physically,
// computes the badge geometry from the rotated dimensions, draws a red left half
// and a blue right half with the two 2-digit groups centered in bold text, and
// re-encodes in the source format (JPEG quality 95). The file is replaced via a
// temp file and rename, so on any failure the original bytes stay on disk.
//
// # Geometry policies
//
//   - PolicyScaled (default): the 240x128 base badge is scaled by
//     min(W, H)/1000, floored, clamped to at least 120x60, with a 20px margin.
//   - PolicyFixed: a 616x328 badge with no margin and no clamping; on images
//     smaller than the badge the anchor goes negative and the badge is drawn
//     partly off-canvas.
package overlay
