package httpapi

import (
	"fotocamera/internal/domain"
	"fotocamera/internal/services/capture"
)

// NumberBody is the JSON form of a DisplayNumber.
type NumberBody struct {
	DisplayNumber string `json:"display_number"`
	First         string `json:"first,omitempty"`
	Last          string `json:"last,omitempty"`
}

func numberBody(n domain.DisplayNumber) NumberBody {
	return NumberBody{DisplayNumber: n.String(), First: n.First(), Last: n.Last()}
}

// Badge is the rectangle the number was drawn into.
type Badge struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CaptureBody reports a finished capture.
type CaptureBody struct {
	Record       domain.MediaRecord `json:"record"`
	Path         string             `json:"path"`
	Badge        *Badge             `json:"badge,omitempty"`
	OverlayError string             `json:"overlay_error,omitempty"`
}

func captureBody(res capture.Result) CaptureBody {
	out := CaptureBody{Record: res.Record, Path: res.Path}
	if res.OverlayErr != nil {
		out.OverlayError = res.OverlayErr.Error()
		return out
	}
	g := res.Geometry
	out.Badge = &Badge{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
	return out
}

type errorBody struct {
	Error string `json:"error"`
}
