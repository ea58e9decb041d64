package gesture

import (
	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/core"
)

// DoubleClick zooms in, zooms out or resets on a double click or tap.
type DoubleClick struct{}

// Allowed reports whether a double click over targets may act.
func (DoubleClick) Allowed(ctx Context, targets []string) bool {
	opts := ctx.Options()
	if opts.Disabled || opts.DoubleClick.Disabled {
		return false
	}
	return !Excluded(targets, opts.DoubleClick.Excluded)
}

// Target returns the transform a double click at pos leads to.
func (DoubleClick) Target(ctx Context, pos core.Point) core.Transform {
	opts := ctx.Options()
	cur := ctx.Transform()

	var scale float64
	switch opts.DoubleClick.Mode {
	case config.ModeReset:
		return opts.Initial()
	case config.ModeZoomOut:
		scale = cur.Scale - opts.DoubleClickStep()
	default:
		scale = cur.Scale + opts.DoubleClickStep()
	}
	return cur.ZoomAt(opts.ClampScale(scale), pos)
}
