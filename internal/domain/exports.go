package domain

import (
	interfaces "fotocamera/internal/domain/interfaces"
	types "fotocamera/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	DisplayNumber   = types.DisplayNumber
	Rotation        = types.Rotation
	CapturedImage   = types.CapturedImage
	OverlayGeometry = types.OverlayGeometry
	PreferenceFlags = types.PreferenceFlags
	MediaRecord     = types.MediaRecord
	Orientation     = types.Orientation
	OutputTarget    = types.OutputTarget
	SavedHandle     = types.SavedHandle
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	PreferenceStore   = interfaces.PreferenceStore
	MediaIndex        = interfaces.MediaIndex
	Camera            = interfaces.Camera
	Surface           = interfaces.Surface
	OrientationSource = interfaces.OrientationSource
	Compositor        = interfaces.Compositor
	ScanListener      = interfaces.ScanListener
)

// Re-exported constants and helpers.
const (
	DefaultDisplayNumber = types.DefaultDisplayNumber
	DisplayNumberLength  = types.DisplayNumberLength
	DefaultRelativePath  = types.DefaultRelativePath
	MimeTypeJPEG         = types.MimeTypeJPEG

	Rotate0   = types.Rotate0
	Rotate90  = types.Rotate90
	Rotate180 = types.Rotate180
	Rotate270 = types.Rotate270

	OrientationPortrait  = types.OrientationPortrait
	OrientationLandscape = types.OrientationLandscape
)

var (
	ErrInvalidDisplayNumber = types.ErrInvalidDisplayNumber

	ParseDisplayNumber     = types.ParseDisplayNumber
	RotationFromEXIF       = types.RotationFromEXIF
	NormalizeRotation      = types.NormalizeRotation
	DefaultPreferenceFlags = types.DefaultPreferenceFlags
)
