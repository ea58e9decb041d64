// Package vis implements the Gio pan/zoom demo application.
package vis

import (
	"image/color"
	"log/slog"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/gio-panzoom/internal/config"
	"github.com/elektrokombinacija/gio-panzoom/internal/engine"
	"github.com/elektrokombinacija/gio-panzoom/internal/logging"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/draw"
	"github.com/elektrokombinacija/gio-panzoom/internal/vis/widgets"
)

// zoomTargets are the scene elements bound to keys 1, 2 and 3.
var zoomTargets = []string{"card-1", "card-2", "card-3"}

// App is the demo application.
type App struct {
	engine   *engine.Engine
	logger   *slog.Logger
	theme    *material.Theme
	scene    *draw.Scene
	viewport *widgets.Viewport
	toolbar  *widgets.Toolbar
	zoombar  *widgets.ZoomBar
	focused  bool
}

// NewApp creates the demo with opts. rec may be nil.
func NewApp(opts config.Options, logger *slog.Logger, rec engine.Recorder) *App {
	logger = logging.OrNop(logger)
	eng := engine.New(opts, engine.WithLogger(logger), engine.WithRecorder(rec))
	scene := draw.DemoScene()

	a := &App{
		engine:   eng,
		logger:   logger,
		theme:    material.NewTheme(),
		scene:    scene,
		viewport: widgets.NewViewport(eng, scene),
		toolbar:  widgets.NewToolbar(eng, scene, zoomTargets...),
		zoombar:  widgets.NewZoomBar(eng),
	}

	eng.On(engine.EventInit, func(ev engine.Event) {
		logger.Info("viewport ready", "transform", ev.Transform.String(), "bounds", eng.Bounds())
	})
	for _, name := range []engine.EventName{engine.EventPanningStop, engine.EventPinchingStop, engine.EventWheelStop} {
		eng.On(name, func(ev engine.Event) {
			logger.Debug("gesture finished", "event", string(ev.Name), "transform", ev.Transform.String())
		})
	}
	return a
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	defer a.engine.Close()

	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			a.handleKeyEvents(gtx, tag)
			event.Op(gtx.Ops, tag)
			if !a.focused {
				gtx.Execute(key.FocusCmd{Tag: tag})
			}

			a.engine.Tick(gtx.Now)
			a.layout(gtx)
			e.Frame(gtx.Ops)

			// Keep frames coming while animating or waiting for wheel stop.
			if a.engine.Pending() {
				w.Invalidate()
			}
		}
	}
}

func (a *App) handleKeyEvents(gtx layout.Context, tag event.Tag) {
	for {
		ev, ok := gtx.Event(
			key.FocusFilter{Target: tag},
			key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper},
		)
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case key.FocusEvent:
			a.focused = ev.Focus
			a.viewport.Adapter().Focus(ev.Focus)
		case key.Event:
			a.viewport.Adapter().Key(ev)
			if ev.State == key.Press {
				a.handleShortcut(ev)
			}
		}
	}
}

func (a *App) handleShortcut(e key.Event) {
	switch e.Name {
	case "+", "=":
		a.engine.ZoomIn()
	case "-":
		a.engine.ZoomOut()
	case "R":
		a.engine.ResetTransform()
	case "C":
		a.engine.CenterView()
	case key.NameEscape:
		a.engine.CancelAnimation()
	case "1", "2", "3":
		a.toolbar.ZoomTo(zoomTargets[e.Name[0]-'1'])
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, a.viewport.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.zoombar.Layout(gtx, a.theme)
		}),
	)
}
