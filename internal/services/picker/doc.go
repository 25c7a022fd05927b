// Package picker implements the four-selector digit picker used to choose the
// DisplayNumber.
//
// Each selector holds one decimal digit and wraps around at either end. The
// picker is single-use: after Confirm or Cancel every operation fails with
// ErrPickerClosed.
package picker
