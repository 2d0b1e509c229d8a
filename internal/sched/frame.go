package sched

// FrameLoop runs a step once per display refresh while it is scheduled and
// the page is visible. The host calls Tick on every refresh; Tick is a no-op
// unless a frame is pending, the same contract as a next-frame request.
type FrameLoop struct {
	step    func() bool
	pending bool
	visible bool
	done    bool
	frames  uint64
}

// NewFrameLoop wraps step. step returns false to cancel the loop for good.
func NewFrameLoop(step func() bool) *FrameLoop {
	return &FrameLoop{step: step, visible: true}
}

// Start schedules the next frame unless the loop is finished or hidden.
func (f *FrameLoop) Start() bool {
	if f.done || !f.visible {
		return false
	}
	f.pending = true
	return true
}

// Stop cancels the scheduled frame and records that none is pending.
func (f *FrameLoop) Stop() {
	f.pending = false
}

// Finish stops the loop permanently.
func (f *FrameLoop) Finish() {
	f.pending = false
	f.done = true
}

// SetVisible pauses the loop when the page is hidden and resumes it when the
// page shows again, unless the loop has finished.
func (f *FrameLoop) SetVisible(visible bool) {
	f.visible = visible
	if !visible {
		f.Stop()
		return
	}
	if !f.pending {
		f.Start()
	}
}

// Tick runs one frame if one is pending and schedules the next. It reports
// whether a frame ran.
func (f *FrameLoop) Tick() bool {
	if !f.pending || f.done {
		return false
	}
	f.pending = false
	f.frames++
	if !f.step() {
		f.Finish()
		return true
	}
	if f.visible && !f.done {
		f.pending = true
	}
	return true
}

func (f *FrameLoop) Pending() bool  { return f.pending }
func (f *FrameLoop) Visible() bool  { return f.visible }
func (f *FrameLoop) Done() bool     { return f.done }
func (f *FrameLoop) Frames() uint64 { return f.frames }
