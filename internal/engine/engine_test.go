package engine

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/herogrid/internal/explode"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/physics"
	"github.com/san-kum/herogrid/internal/vmath"
)

var _ = Describe("Engine", func() {
	var h *harness

	BeforeEach(func() {
		var err error
		h, err = newHarness(true)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("start up", func() {
		It("fills the container and schedules a frame", func() {
			Expect(h.engine.Tiles()).To(HaveLen(18 * 8))
			Expect(h.surface.n).To(Equal(18 * 8))
			Expect(h.engine.FramePending()).To(BeTrue())
			Expect(h.logs.String()).To(ContainSubstring("grid built: 144 tiles (18x8"))
		})

		It("commits every tile each frame", func() {
			h.frames(1)
			Expect(h.surface.commits).To(Equal(144))
			Expect(h.surface.opacity).To(BeNumerically("~", 0.03, 1e-12))
		})
	})

	Describe("pointer influence", func() {
		var origin vmath.Vec2

		BeforeEach(func() {
			origin = h.engine.Tiles()[0].Origin
			h.engine.PointerMove(origin.Add(vmath.V(20, 0)))
		})

		It("pulls nearby tiles toward the pointer", func() {
			h.frames(5)
			Expect(h.engine.Tiles()[0].Body.Pos.X).To(BeNumerically(">", 0))
			Expect(h.engine.Tiles()[50].Body.Pos.IsZero()).To(BeTrue())
		})

		It("pushes them away while pressed", func() {
			h.engine.PressDown()
			h.frames(5)
			Expect(h.engine.Tiles()[0].Body.Pos.X).To(BeNumerically("<", 0))
		})

		It("never leaves the displacement bound", func() {
			h.engine.PressDown()
			for i := 0; i < 120; i++ {
				h.frames(1)
				Expect(h.engine.Tiles()[0].Body.Pos.Len()).To(BeNumerically("<=", 100.0/81+1e-9))
			}
		})
	})

	Describe("interaction counter", func() {
		It("decays to zero 500ms after the last release", func() {
			h.click()
			h.click()
			Expect(h.engine.State().Count).To(Equal(2))

			h.loop.AdvanceBy(499 * time.Millisecond)
			Expect(h.engine.State().Count).To(Equal(2))
			h.loop.AdvanceBy(time.Millisecond)
			Expect(h.engine.State().Count).To(Equal(0))
		})

		It("keeps accumulating when pressed again in time", func() {
			h.click()
			h.loop.AdvanceBy(300 * time.Millisecond)
			h.engine.PressDown()
			h.loop.AdvanceBy(time.Second)
			Expect(h.engine.State().Count).To(Equal(2))
		})
	})

	Describe("dispersal", func() {
		BeforeEach(func() {
			h.engine.PointerMove(vmath.V(640, 300))
			for i := 0; i < 9; i++ {
				h.click()
			}
			h.frames(3)
		})

		It("holds at nine interactions", func() {
			Expect(h.engine.State().Count).To(Equal(9))
			Expect(h.engine.Dispersed()).To(BeFalse())
			Expect(h.engine.Phase()).To(Equal(explode.Active))
		})

		Context("on the tenth press", func() {
			var before []vmath.Vec2

			BeforeEach(func() {
				h.engine.PressDown()
				before = h.offsets()
			})

			It("disperses every tile outward", func() {
				Expect(h.engine.Dispersed()).To(BeTrue())
				Expect(h.engine.Phase()).To(Equal(explode.Exploding))
				Expect(h.surface.flights).To(HaveLen(144))
				for _, f := range h.surface.flights {
					Expect(f.offset.IsFinite()).To(BeTrue())
					Expect(f.offset.Len()).To(BeNumerically("~", 2000, 1e-6))
					Expect(f.d).To(Equal(2 * time.Second))
				}
				Expect(h.logs.String()).To(ContainSubstring("dispersed 144 tiles"))
			})

			It("stops physics for good", func() {
				Expect(h.engine.FramePending()).To(BeFalse())
				commits := h.surface.commits
				h.frames(10)
				Expect(h.offsets()).To(Equal(before))
				Expect(h.surface.commits).To(Equal(commits))

				h.engine.SetVisible(false)
				h.engine.SetVisible(true)
				Expect(h.engine.FramePending()).To(BeFalse())
			})

			It("ignores further input and resizes", func() {
				state := h.engine.State()
				h.engine.PressUp()
				h.engine.PressDown()
				h.engine.PointerMove(vmath.V(1, 1))
				h.engine.TouchStart([]vmath.Vec2{{X: 2, Y: 2}})
				h.engine.Resize()
				Expect(h.engine.ResizePending()).To(BeFalse())
				Expect(h.engine.State()).To(Equal(state))
				Expect(h.engine.Rebuild()).To(MatchError(ErrDispersed))
			})

			It("removes the grid after the animation", func() {
				h.loop.AdvanceBy(2*time.Second - time.Millisecond)
				Expect(h.engine.Tiles()).To(HaveLen(144))

				h.loop.AdvanceBy(time.Millisecond)
				Expect(h.engine.Phase()).To(Equal(explode.Removed))
				Expect(h.engine.Tiles()).To(BeEmpty())
				Expect(h.surface.n).To(Equal(0))
				Expect(h.surface.clears).To(Equal(1))
			})
		})
	})

	Describe("visibility", func() {
		It("pauses while hidden and resumes when shown", func() {
			h.frames(2)
			Expect(h.engine.Frames()).To(Equal(uint64(2)))

			h.engine.SetVisible(false)
			Expect(h.engine.FramePending()).To(BeFalse())
			h.frames(5)
			Expect(h.engine.Frames()).To(Equal(uint64(2)))

			h.engine.SetVisible(true)
			h.frames(1)
			Expect(h.engine.Frames()).To(Equal(uint64(3)))
			Expect(h.logs.String()).To(ContainSubstring("frames paused"))
			Expect(h.logs.String()).To(ContainSubstring("frames resumed"))
		})

		It("lets the reset timer run while hidden", func() {
			h.click()
			h.engine.SetVisible(false)
			h.loop.AdvanceBy(time.Second)
			Expect(h.engine.State().Count).To(Equal(0))
		})
	})

	Describe("resize", func() {
		It("rebuilds once after the debounce window", func() {
			h.engine.PointerMove(h.engine.Tiles()[0].Origin.Add(vmath.V(10, 10)))
			h.frames(3)
			Expect(h.engine.Tiles()[0].Body.Pos.IsZero()).To(BeFalse())

			h.view.width = 800
			h.view.container = layout.Rect{W: 800, H: 400}
			h.engine.Resize()
			h.loop.AdvanceBy(200 * time.Millisecond)
			h.engine.Resize()
			h.loop.AdvanceBy(200 * time.Millisecond)
			Expect(h.surface.resets).To(Equal(1))

			h.loop.AdvanceBy(50 * time.Millisecond)
			Expect(h.surface.resets).To(Equal(2))

			// tablet: (786+7)/57 = 13 columns, (386+7)/57 = 6 rows
			Expect(h.engine.Plan().Columns).To(Equal(13))
			Expect(h.engine.Plan().Rows).To(Equal(6))
			for _, t := range h.engine.Tiles() {
				Expect(t.Body.Pos.IsZero()).To(BeTrue())
				Expect(t.Body.Vel.IsZero()).To(BeTrue())
			}
		})

		It("leaves an empty grid when the container collapses", func() {
			h.view.container = layout.Rect{W: 10, H: 10}
			h.engine.Resize()
			h.loop.AdvanceBy(250 * time.Millisecond)
			Expect(h.engine.Tiles()).To(BeEmpty())
			h.frames(2)
			Expect(h.engine.Frames()).To(Equal(uint64(2)))
		})
	})

	Describe("teardown", func() {
		It("cancels frames and timers", func() {
			h.click()
			h.engine.Resize()
			h.engine.Teardown()

			Expect(h.engine.FramePending()).To(BeFalse())
			Expect(h.engine.ResetPending()).To(BeFalse())
			Expect(h.engine.ResizePending()).To(BeFalse())
			Expect(h.loop.Len()).To(Equal(0))

			h.engine.SetVisible(true)
			h.frames(3)
			Expect(h.engine.Frames()).To(Equal(uint64(0)))
		})
	})
})

var _ = Describe("Engine without a trigger region", func() {
	It("tracks the pointer but ignores presses", func() {
		h, err := newHarness(false)
		Expect(err).NotTo(HaveOccurred())

		h.engine.PointerMove(vmath.V(12, 34))
		for i := 0; i < 20; i++ {
			h.click()
		}
		s := h.engine.State()
		Expect(s.Pointer).To(Equal(vmath.V(12, 34)))
		Expect(s.Count).To(BeZero())
		Expect(s.Pressed).To(BeFalse())
		Expect(h.engine.Dispersed()).To(BeFalse())
	})
})

var _ = Describe("Engine without a container", func() {
	It("does not start", func() {
		_, err := New(Options{Viewport: &fakeViewport{missing: true}})
		Expect(err).To(MatchError(ErrNoContainer))

		_, err = New(Options{})
		Expect(err).To(MatchError(ErrNoContainer))
	})
})

var _ = Describe("Settings", func() {
	It("fills defaults", func() {
		e, err := New(Options{Viewport: &fakeViewport{width: 500, container: layout.Rect{W: 500, H: 500}}})
		Expect(err).NotTo(HaveOccurred())
		s := e.Settings()
		Expect(s.Tiers).To(Equal(layout.Default))
		Expect(s.Physics.Threshold).To(Equal(10))
		Expect(s.ResizeDebounce).To(Equal(250 * time.Millisecond))
		Expect(math.Abs(s.Physics.MaxOffset(9) - 100)).To(BeZero())
		Expect(e.Threshold()).To(Equal(10))
	})

	It("defaults the physics fields left unset", func() {
		e, err := New(Options{
			Viewport: &fakeViewport{width: 500, container: layout.Rect{W: 500, H: 500}},
			Settings: Settings{Physics: physics.Params{Threshold: 5}},
		})
		Expect(err).NotTo(HaveOccurred())
		p := e.Settings().Physics
		Expect(p.Threshold).To(Equal(5))
		Expect(p.Damping).To(Equal(physics.DefaultDamping))
		Expect(p.BaseForce).To(Equal(physics.DefaultBaseForce))
		Expect(p.Ceiling).To(Equal(physics.DefaultCeiling))
		Expect(p.MaxOffset(1)).To(BeNumerically(">", 0))

		origin := e.Tiles()[0].Origin
		e.PointerMove(origin.Add(vmath.V(10, 0)))
		for i := 0; i < 5; i++ {
			e.Loop().AdvanceBy(16 * time.Millisecond)
			e.Tick()
		}
		Expect(e.Tiles()[0].Body.Pos.X).To(BeNumerically(">", 0))
	})
})
