package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/geometry"
)

// tracer writes to trace with key 'confocal.gui'
func tracer() tracing.Trace {
	return tracing.Select("confocal.gui")
}

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(230, 230, 230, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
	ColArrow   = rl.NewColor(180, 180, 180, 200)
	ColButton  = rl.NewColor(140, 140, 140, 255)
)

// App is the window front-end. It is the controller's renderer, label sink
// and fullscreen collaborator, and keeps the last scene for drawing.
type App struct {
	Ctrl   *field.Controller
	Scene  geometry.Scene
	Layout geometry.Layout
	Label  string
	Width  int
	Height int

	pendingFullscreen bool
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(width, height int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), "confocal")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(gen *geometry.Generator, s field.Settings, width, height int) *App {
	a := &App{Width: width, Height: height}
	a.Ctrl = field.New(gen, s, float64(width), float64(height),
		field.WithRenderer(a),
		field.WithLabelSink(a),
		field.WithFullscreen(a),
	)
	return a
}

// Run opens the window, draws the initial scene and blocks until the
// window is closed.
func Run(gen *geometry.Generator, s field.Settings, width, height int, fullscreen bool) error {
	initWindow(width, height)
	defer rl.CloseWindow()

	app := NewApp(gen, s, rl.GetScreenWidth(), rl.GetScreenHeight())
	if err := app.Ctrl.Start(); err != nil {
		return err
	}
	if fullscreen {
		app.Ctrl.RequestFullscreen()
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Render(scene geometry.Scene, layout geometry.Layout) error {
	a.Scene, a.Layout = scene, layout
	return nil
}

func (a *App) SetLabel(text string) { a.Label = text }

// RequestFullscreen defers the toggle to the next Update so the window is
// only touched from the main loop.
func (a *App) RequestFullscreen() { a.pendingFullscreen = true }

// frameInput is the input polled for one frame.
type frameInput struct {
	resized       bool
	width, height int
	touched       bool
	keyPressed    bool
	left, right   bool
	fullscreenKey bool
	click         bool
	release       bool
	mouse         rl.Vector2
}

func pollInput() frameInput {
	return frameInput{
		resized:       rl.IsWindowResized(),
		width:         rl.GetScreenWidth(),
		height:        rl.GetScreenHeight(),
		touched:       rl.GetTouchPointCount() > 0,
		keyPressed:    rl.GetKeyPressed() != 0,
		left:          held(rl.KeyLeft),
		right:         held(rl.KeyRight),
		fullscreenKey: rl.IsKeyPressed(rl.KeyF),
		click:         rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		release:       rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		mouse:         rl.GetMousePosition(),
	}
}

// Update polls input and feeds it to the controller. It returns false once
// the user asks to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	a.apply(pollInput())

	if a.pendingFullscreen {
		a.pendingFullscreen = false
		if !rl.IsWindowFullscreen() {
			rl.ToggleFullscreen()
		}
	}
	return true
}

func (a *App) apply(in frameInput) {
	if in.resized {
		a.Width, a.Height = in.width, in.height
		a.check(a.Ctrl.Resize(float64(a.Width), float64(a.Height)))
	}

	// clicks are hit-tested against what was on screen before this frame's
	// touch hid anything
	ch := a.Ctrl.Chrome()
	if in.touched {
		a.Ctrl.FirstTouch()
	}
	if in.keyPressed {
		a.Ctrl.FirstKeyPress()
	}

	// Both arrows in one frame share a tick, so they cancel out.
	if in.left {
		a.Ctrl.Latch(field.Left)
	}
	if in.right {
		a.Ctrl.Latch(field.Right)
	}
	if in.left || in.right {
		a.check(a.Ctrl.Tick())
	}

	if in.fullscreenKey {
		a.Ctrl.RequestFullscreen()
	}

	if in.click {
		switch hitTarget(in.mouse, a.Width, a.Height, ch) {
		case targetLeft:
			a.check(a.Ctrl.PressStart(field.Left))
		case targetRight:
			a.check(a.Ctrl.PressStart(field.Right))
		case targetFullscreen:
			a.Ctrl.RequestFullscreen()
		}
	}
	if in.release {
		now := a.Ctrl.Chrome()
		if now.LeftPressed {
			a.Ctrl.PressStop(field.Left)
		}
		if now.RightPressed {
			a.Ctrl.PressStop(field.Right)
		}
	}
}

func (a *App) check(err error) {
	if err != nil {
		tracer().Errorf("%v", err)
	}
}

// held follows the keyboard's auto-repeat, one tick per repeat.
func held(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawScene()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawScene() {
	for _, c := range a.Scene {
		col := rl.NewColor(c.Style.Color.R, c.Style.Color.G, c.Style.Color.B, 255)
		thick := float32(c.Style.Width)
		for i := 1; i < len(c.Points); i++ {
			p0 := worldToScreen(c.Points[i-1], a.Layout, a.Width, a.Height)
			p1 := worldToScreen(c.Points[i], a.Layout, a.Width, a.Height)
			rl.DrawLineEx(p0, p1, thick, col)
		}
	}
}

func (a *App) drawHUD() {
	ch := a.Ctrl.Chrome()
	size := labelSize(a.Width)

	if ch.LabelVisible {
		w := rl.MeasureText(a.Label, size)
		rl.DrawText(a.Label, int32(a.Width)/2-w/2, size, size, ColText)
	}
	if ch.HintVisible {
		hint := "use the arrow keys or the arrows below"
		w := rl.MeasureText(hint, size/2)
		rl.DrawText(hint, int32(a.Width)/2-w/2, int32(a.Height)-3*size, size/2, ColTextDim)
	}
	if ch.ArrowsVisible {
		left, right := arrowRects(a.Width, a.Height, ch)
		drawArrow(left, field.Left)
		drawArrow(right, field.Right)
	}
	if ch.FullscreenVisible {
		r := fullscreenRect(a.Width)
		rl.DrawRectangleLinesEx(r, 1, ColButton)
		rl.DrawText("fullscreen", int32(r.X)+8, int32(r.Y)+8, 14, ColButton)
	}
}

func drawArrow(r rl.Rectangle, d field.Direction) {
	midY := r.Y + r.Height/2
	if d == field.Left {
		rl.DrawTriangle(
			rl.NewVector2(r.X, midY),
			rl.NewVector2(r.X+r.Width, r.Y+r.Height),
			rl.NewVector2(r.X+r.Width, r.Y),
			ColArrow)
		return
	}
	rl.DrawTriangle(
		rl.NewVector2(r.X+r.Width, midY),
		rl.NewVector2(r.X, r.Y),
		rl.NewVector2(r.X, r.Y+r.Height),
		ColArrow)
}
