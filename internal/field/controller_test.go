package field_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/confocal/internal/field"
	"github.com/san-kum/confocal/internal/geometry"
)

type recorder struct {
	scenes  []geometry.Scene
	layouts []geometry.Layout
}

func (r *recorder) Render(scene geometry.Scene, layout geometry.Layout) error {
	r.scenes = append(r.scenes, scene)
	r.layouts = append(r.layouts, layout)
	return nil
}

type labels struct{ texts []string }

func (l *labels) SetLabel(text string) { l.texts = append(l.texts, text) }

type screen struct{ requests int }

func (s *screen) RequestFullscreen() { s.requests++ }

var _ = Describe("Controller", func() {
	var (
		gen      *geometry.Generator
		settings field.Settings
		rec      *recorder
		lab      *labels
		scr      *screen
		ctrl     *field.Controller
	)

	build := func(width, height float64) {
		ctrl = field.New(gen, settings, width, height,
			field.WithRenderer(rec), field.WithLabelSink(lab), field.WithFullscreen(scr))
		Expect(ctrl.Start()).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		gen, err = geometry.NewGenerator(geometry.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		settings = field.DefaultSettings()
		rec, lab, scr = &recorder{}, &labels{}, &screen{}
	})

	Describe("Start", func() {
		It("draws the full scene once and labels the initial focal distance", func() {
			build(1000, 800)
			Expect(rec.scenes).To(HaveLen(1))
			Expect(rec.scenes[0]).To(HaveLen(geometry.DefaultEllipses + geometry.DefaultHyperbolae))
			Expect(lab.texts).To(Equal([]string{"focal distance = 1"}))
			Expect(ctrl.Label()).To(Equal("focal distance = 1"))
		})

		It("uses the zoomed viewport as axis ranges", func() {
			build(1400, 700)
			Expect(rec.layouts[0].X).To(Equal(geometry.Range{Min: -400, Max: 400}))
			Expect(rec.layouts[0].Y).To(Equal(geometry.Range{Min: -200, Max: 200}))
		})
	})

	Describe("directional input", func() {
		BeforeEach(func() { build(1000, 800) })

		It("steps right by +10 and left by -10", func() {
			Expect(ctrl.KeyDown(field.Right)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(110.0))
			Expect(ctrl.KeyDown(field.Left)).To(Succeed())
			Expect(ctrl.KeyDown(field.Left)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(90.0))
			Expect(lab.texts[len(lab.texts)-1]).To(Equal("focal distance = 0.9"))
		})

		It("redraws from scratch after every step", func() {
			Expect(ctrl.KeyDown(field.Right)).To(Succeed())
			Expect(rec.scenes).To(HaveLen(2))
			Expect(rec.scenes[1]).To(Equal(gen.Scene(110, ctrl.Bounds())))
			Expect(rec.scenes[1]).NotTo(Equal(rec.scenes[0]))
			Expect(ctrl.Redraws()).To(Equal(2))
		})

		It("cancels out when both latches are armed in one tick", func() {
			ctrl.Latch(field.Left)
			ctrl.Latch(field.Right)
			Expect(ctrl.Tick()).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(100.0))

			By("consuming the latches")
			Expect(ctrl.Tick()).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(100.0))
		})
	})

	Describe("wrap-around", func() {
		It("flips the sign once the limit is exceeded", func() {
			settings.InitialFocal = 1095
			build(1000, 800)
			Expect(ctrl.Limit()).To(BeNumerically("~", 1100, 1e-9))
			Expect(ctrl.KeyDown(field.Right)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(-1105.0))
			Expect(ctrl.Label()).To(Equal("focal distance = -11.05"))
			Expect(ctrl.Wraps()).To(Equal(1))
		})

		It("does not count crossing zero as a wrap", func() {
			settings.InitialFocal = 5
			build(1000, 800)
			Expect(ctrl.KeyDown(field.Left)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(-5.0))
			Expect(ctrl.Wraps()).To(BeZero())
		})

		It("flips negative values the other way", func() {
			settings.InitialFocal = -1095
			build(1000, 800)
			Expect(ctrl.KeyDown(field.Left)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(1105.0))
		})

		It("keeps a value sitting exactly on the limit", func() {
			settings.InitialFocal = 1090
			build(1000, 800)
			Expect(ctrl.KeyDown(field.Right)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(1100.0))
		})

		It("follows the viewport width after a resize", func() {
			settings.InitialFocal = 545
			build(1000, 800)
			Expect(ctrl.Resize(500, 800)).To(Succeed())
			Expect(ctrl.KeyDown(field.Right)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(-555.0))
		})
	})

	Describe("Resize", func() {
		It("updates the bounds and leaves the focal distance alone", func() {
			settings.InitialFocal = 50
			build(1000, 800)
			Expect(ctrl.Resize(1600, 900)).To(Succeed())

			Expect(ctrl.FocalDistance()).To(Equal(50.0))
			Expect(ctrl.Bounds().MaxRadius).To(Equal(800.0))
			w, h := ctrl.Viewport()
			Expect(w).To(Equal(1600.0))
			Expect(h).To(Equal(900.0))

			last := rec.layouts[len(rec.layouts)-1]
			Expect(last.X.Max).To(BeNumerically("~", 1600/3.5, 1e-9))
			Expect(last.Y.Max).To(BeNumerically("~", 900/3.5, 1e-9))
			Expect(rec.scenes).To(HaveLen(2))
		})
	})

	Describe("press-and-hold arrows", func() {
		BeforeEach(func() { build(1000, 800) })

		It("widens the arrow and steps once per press", func() {
			Expect(ctrl.PressStart(field.Left)).To(Succeed())
			Expect(ctrl.FocalDistance()).To(Equal(90.0))
			Expect(ctrl.Chrome().LeftPressed).To(BeTrue())
			Expect(ctrl.Chrome().ArrowWidth(field.Left)).To(Equal(0.09))
			Expect(ctrl.Chrome().ArrowWidth(field.Right)).To(Equal(0.08))

			ctrl.PressStop(field.Left)
			Expect(ctrl.Chrome().LeftPressed).To(BeFalse())
			Expect(ctrl.FocalDistance()).To(Equal(90.0))
		})
	})

	Describe("first interaction", func() {
		BeforeEach(func() { build(1000, 800) })

		It("starts with the hint showing and the label hidden", func() {
			c := ctrl.Chrome()
			Expect(c.HintVisible).To(BeTrue())
			Expect(c.LabelVisible).To(BeFalse())
			Expect(c.ArrowsVisible).To(BeTrue())
			Expect(c.FullscreenVisible).To(BeTrue())
		})

		It("keeps the arrows for touch users", func() {
			ctrl.FirstTouch()
			c := ctrl.Chrome()
			Expect(c.LabelVisible).To(BeTrue())
			Expect(c.HintVisible).To(BeFalse())
			Expect(c.ArrowsVisible).To(BeTrue())
			Expect(c.FullscreenVisible).To(BeFalse())
		})

		It("hides the arrows for keyboard users", func() {
			ctrl.FirstKeyPress()
			Expect(ctrl.Chrome().ArrowsVisible).To(BeFalse())
			Expect(ctrl.Chrome().LabelVisible).To(BeTrue())
		})
	})

	Describe("RequestFullscreen", func() {
		It("delegates to the fullscreen collaborator and hides the button", func() {
			build(1000, 800)
			ctrl.RequestFullscreen()
			Expect(scr.requests).To(Equal(1))
			Expect(ctrl.Chrome().FullscreenVisible).To(BeFalse())
		})
	})

	Describe("Dispatch", func() {
		BeforeEach(func() { build(1000, 800) })

		It("handles events in delivery order", func() {
			events := []field.Event{
				{Kind: field.EventFirstKeyPress},
				field.KeyDownEvent(field.Right),
				field.KeyDownEvent(field.Right),
				field.ResizeEvent(1200, 600),
				field.PressStartEvent(field.Left),
				field.PressStopEvent(field.Left),
				{Kind: field.EventFirstTouch},
				{Kind: field.EventFullscreen},
			}
			for _, ev := range events {
				Expect(ctrl.Dispatch(ev)).To(Succeed(), ev.Kind.String())
			}
			Expect(ctrl.FocalDistance()).To(Equal(110.0))
			Expect(ctrl.Bounds().MaxRadius).To(Equal(600.0))
			Expect(scr.requests).To(Equal(1))
			Expect(ctrl.Chrome().ArrowsVisible).To(BeFalse())
		})

		It("rejects unknown event kinds", func() {
			err := ctrl.Dispatch(field.Event{Kind: field.EventKind(99)})
			Expect(errors.Is(err, field.ErrUnknownEvent)).To(BeTrue())
		})
	})

	Describe("render failures", func() {
		It("wraps the renderer error and still refreshes the label", func() {
			boom := errors.New("surface gone")
			frames := 0
			failAfterStart := field.RenderFunc(func(geometry.Scene, geometry.Layout) error {
				frames++
				if frames > 1 {
					return boom
				}
				return nil
			})
			ctrl = field.New(gen, settings, 1000, 800,
				field.WithRenderer(failAfterStart), field.WithLabelSink(lab))
			Expect(ctrl.Start()).To(Succeed())

			err := ctrl.KeyDown(field.Right)
			Expect(err).To(MatchError(boom))
			Expect(err.Error()).To(HavePrefix("field: render:"))
			Expect(frames).To(Equal(2))
			Expect(ctrl.Label()).To(Equal("focal distance = 1.1"))
			Expect(lab.texts).To(Equal([]string{"focal distance = 1", "focal distance = 1.1"}))
		})
	})
})
