// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// It is used to lay the traced outlines over the source image, so that
// stray or missing regions are easy to spot.
package imop

import (
	"github.com/esimov/pixtrace/utils"
)

// Separable blend modes.
const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{OpType: Normal}
}

// Set activate one of the supported blend mode.
func (o *Blend) Set(opType string) {
	bModes := []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

	if utils.Contains(bModes, opType) {
		o.OpType = opType
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// mix replaces the source color by its blend with the backdrop, weighted by
// the backdrop alpha. The source alpha is kept.
func (o *Blend) mix(s, b [4]float64) [4]float64 {
	out := s
	for c := 0; c < 3; c++ {
		out[c] = (1-b[3])*s[c] + b[3]*o.channel(s[c], b[c])
	}
	return out
}

func (o *Blend) channel(cs, cb float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cs, cb)
	case Lighten:
		return utils.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return cs + cb - cs*cb
	case Overlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	default:
		return cs
	}
}
