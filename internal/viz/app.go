package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/geometry"
)

// tracer writes to trace with key 'confocal.viz'
func tracer() tracing.Trace {
	return tracing.Select("confocal.viz")
}

const (
	// CellWidth and CellHeight are the viewport pixels covered by one
	// terminal cell.
	CellWidth  = 8
	CellHeight = 16

	panelWidth      = 34
	footerRows      = 2
	minCols         = 20
	minRows         = 4
	historyCapacity = 240
	graphHeight     = 6
	minGraphHeight  = 2

	defaultWidth  = 80
	defaultHeight = 24

	fullscreenButton = "[ fullscreen ]"
)

// Model is the Bubble Tea model of the terminal viewer.
type Model struct {
	ctrl          *field.Controller
	surface       *Surface
	theme         Theme
	history       []float64
	width, height int
	err           error
}

// NewApp wires a controller to a fresh Surface sized for a default
// terminal. The controller has not drawn yet; call Start or Run.
func NewApp(gen *geometry.Generator, s field.Settings, theme Theme) Model {
	m := Model{theme: theme, width: defaultWidth, height: defaultHeight}
	cols, rows := m.canvasSize()
	m.surface = NewSurface(cols, rows)
	m.ctrl = field.New(gen, s, float64(cols*CellWidth), float64(rows*CellHeight),
		field.WithRenderer(m.surface),
		field.WithLabelSink(m.surface),
		field.WithFullscreen(m.surface),
	)
	m.history = []float64{m.ctrl.FocalDistance()}
	return m
}

func (m Model) Controller() *field.Controller { return m.ctrl }
func (m Model) Surface() *Surface             { return m.surface }
func (m Model) Theme() Theme                  { return m.theme }
func (m Model) History() []float64            { return m.history }
func (m Model) Err() error                    { return m.err }

// Start performs the initial draw.
func (m Model) Start() error { return m.ctrl.Start() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols, rows := m.canvasSize()
		m.surface.Resize(cols, rows)
		m.err = m.ctrl.Resize(float64(cols*CellWidth), float64(rows*CellHeight))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}

	m.ctrl.FirstKeyPress()
	switch msg.String() {
	case "left", "h":
		m.err = m.ctrl.KeyDown(field.Left)
		m.record()
	case "right", "l":
		m.err = m.ctrl.KeyDown(field.Right)
		m.record()
	case "f":
		return m, m.fullscreen()
	case "t":
		m.theme = NextTheme(m.theme)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// hit-test against what was on screen before the touch hid anything
		ch := m.ctrl.Chrome()
		m.ctrl.FirstTouch()

		cols, rows := m.canvasSize()
		if msg.Y != rows {
			return m, nil
		}
		fl := layoutFooter(cols, ch)
		switch {
		case ch.ArrowsVisible && fl.left.contains(msg.X):
			m.err = m.ctrl.PressStart(field.Left)
			m.record()
		case ch.ArrowsVisible && fl.right.contains(msg.X):
			m.err = m.ctrl.PressStart(field.Right)
			m.record()
		case ch.FullscreenVisible && fl.button.contains(msg.X):
			return m, m.fullscreen()
		}
	case tea.MouseActionRelease:
		ch := m.ctrl.Chrome()
		if ch.LeftPressed {
			m.ctrl.PressStop(field.Left)
		}
		if ch.RightPressed {
			m.ctrl.PressStop(field.Right)
		}
	}
	return m, nil
}

func (m *Model) fullscreen() tea.Cmd {
	if m.surface.Fullscreen() {
		return nil
	}
	m.ctrl.RequestFullscreen()
	tracer().Debugf("entering alternate screen")
	return tea.EnterAltScreen
}

func (m *Model) record() {
	m.history = append(m.history, m.ctrl.FocalDistance())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m Model) showPanel() bool {
	return m.width >= panelWidth+minCols
}

// canvasSize returns the plot area in cells.
func (m Model) canvasSize() (cols, rows int) {
	cols = m.width
	if m.showPanel() {
		cols -= panelWidth
	}
	rows = m.height - footerRows
	return max(cols, minCols), max(rows, minRows)
}

func (m Model) View() string {
	st := newStyles(m.theme)
	cols, rows := m.canvasSize()

	plot := m.surface.Canvas().Render(m.theme.InkStyles())
	if m.showPanel() {
		plot = lipgloss.JoinHorizontal(lipgloss.Top, plot, m.viewPanel(st, rows))
	}
	return lipgloss.JoinVertical(lipgloss.Left, plot, m.viewFooter(cols, st), m.viewKeys(st))
}

// viewPanel renders the side panel no taller than rows. The history graph
// shrinks to the room left under the metrics and is dropped when too small.
func (m Model) viewPanel(st styles, rows int) string {
	var s strings.Builder
	ch := m.ctrl.Chrome()
	w, h := m.ctrl.Viewport()

	s.WriteString(GradientText("CONFOCAL", m.theme.Ellipse, m.theme.Hyperbola) + "\n")
	s.WriteString(st.hint.Render("ellipses & hyperbolae") + "\n")
	s.WriteString(Separator(panelWidth-6, m.theme.Muted) + "\n\n")

	if ch.LabelVisible {
		s.WriteString(st.label.Render(m.surface.Label()) + "\n")
	}
	if ch.HintVisible {
		s.WriteString(st.hint.Render("use ← → or the arrows below") + "\n")
	}
	s.WriteString("\n")

	s.WriteString(st.metric.Render("focal") + st.value.Render(fmt.Sprintf("%.0f", m.ctrl.FocalDistance())) + "\n")
	s.WriteString(st.metric.Render("limit") + st.value.Render(fmt.Sprintf("±%.0f", m.ctrl.Limit())) + "\n")
	s.WriteString(st.metric.Render("max radius") + st.value.Render(fmt.Sprintf("%.0f", m.ctrl.Bounds().MaxRadius)) + "\n")
	s.WriteString(st.metric.Render("viewport") + st.value.Render(fmt.Sprintf("%.0f×%.0f", w, h)) + "\n")
	s.WriteString(st.metric.Render("theme") + st.value.Render(m.theme.Name) + "\n")

	var errBlock string
	if m.err != nil {
		errBlock = "\n" + st.errText.Render(m.err.Error()) + "\n"
	}

	// margin, plot rows (height+1) and caption
	room := rows - st.panel.GetVerticalFrameSize() - strings.Count(s.String(), "\n") - strings.Count(errBlock, "\n")
	if gh := min(graphHeight, room-3); len(m.history) > 1 && gh >= minGraphHeight {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(gh),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption("focal distance"),
		)
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(errBlock)
	return st.panel.MaxHeight(rows).Render(s.String())
}

func (m Model) viewFooter(cols int, st styles) string {
	ch := m.ctrl.Chrome()
	fl := layoutFooter(cols, ch)

	var b strings.Builder
	pos := 0
	padTo := func(col int) {
		if col > pos {
			b.WriteString(strings.Repeat(" ", col-pos))
			pos = col
		}
	}

	arrowStyle := func(d field.Direction) lipgloss.Style {
		if ch.Pressed(d) {
			return st.pressed
		}
		return st.arrow
	}

	if ch.ArrowsVisible {
		b.WriteString(arrowStyle(field.Left).Render("◀" + strings.Repeat("━", fl.left.width()-1)))
		pos = fl.left.end
	}
	if ch.FullscreenVisible && fl.button.start >= pos && fl.button.end <= fl.right.start {
		padTo(fl.button.start)
		b.WriteString(st.button.Render(fullscreenButton))
		pos = fl.button.end
	}
	if ch.ArrowsVisible {
		padTo(fl.right.start)
		b.WriteString(arrowStyle(field.Right).Render(strings.Repeat("━", fl.right.width()-1) + "▶"))
	}
	return b.String()
}

func (m Model) viewKeys(st styles) string {
	pairs := [][2]string{{"←/→", "focal"}, {"f", "fullscreen"}, {"t", "theme"}, {"q", "quit"}}
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = st.key.Render(p[0]) + st.hint.Render(" "+p[1])
	}
	return strings.Join(parts, "  ")
}

// span is a half-open column interval.
type span struct{ start, end int }

func (s span) contains(x int) bool { return x >= s.start && x < s.end }
func (s span) width() int          { return s.end - s.start }

type footerLayout struct {
	left, right, button span
}

// layoutFooter places the arrows at the edges of the plot and the
// fullscreen button in the middle. Arrow widths follow the chrome's
// fraction of the plot width.
func layoutFooter(cols int, ch field.Chrome) footerLayout {
	lw := arrowCells(cols, ch.ArrowWidth(field.Left))
	rw := arrowCells(cols, ch.ArrowWidth(field.Right))
	bw := len(fullscreenButton)
	bstart := (cols - bw) / 2
	return footerLayout{
		left:   span{0, lw},
		right:  span{cols - rw, cols},
		button: span{bstart, bstart + bw},
	}
}

func arrowCells(cols int, frac float64) int {
	return max(int(math.Round(frac*float64(cols))), 3)
}

// Run starts the terminal viewer and blocks until the user quits.
func Run(m Model, fullscreen bool) error {
	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if fullscreen {
		m.ctrl.RequestFullscreen()
		opts = append(opts, tea.WithAltScreen())
	}
	if err := m.Start(); err != nil {
		return err
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
