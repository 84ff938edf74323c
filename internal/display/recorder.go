package display

// Recorder is an in-memory Display with a fixed size. It keeps the last
// refreshed frame so tests can inspect what a user would have seen.
type Recorder struct {
	grid grid

	frame []string

	Refreshes int
	Keys      int
	Closed    bool

	// RefreshErr, when set, is returned by every Refresh.
	RefreshErr error
}

func NewRecorder(rows, cols int) *Recorder {
	r := &Recorder{}
	r.grid.reset(rows, cols)
	return r
}

// Resize changes the surface size and blanks it.
func (r *Recorder) Resize(rows, cols int) {
	r.grid.reset(rows, cols)
}

func (r *Recorder) Size() (rows, cols int) { return r.grid.rows, r.grid.cols }

func (r *Recorder) Clear() { r.grid.reset(r.grid.rows, r.grid.cols) }

func (r *Recorder) WriteString(row, col int, s string, style Style) {
	r.grid.put(row, col, s, style)
}

func (r *Recorder) WriteRune(row, col int, ch rune, style Style) {
	r.grid.put(row, col, string(ch), style)
}

func (r *Recorder) Refresh() error {
	if r.RefreshErr != nil {
		return r.RefreshErr
	}
	r.Refreshes++
	r.frame = r.Lines()
	return nil
}

func (r *Recorder) WaitKey() error {
	r.Keys++
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Lines returns the pending frame, trailing blanks trimmed per row.
func (r *Recorder) Lines() []string {
	out := make([]string, r.grid.rows)
	for i := range out {
		out[i] = r.grid.line(i)
	}
	return out
}

// Frame returns the frame captured by the last successful Refresh.
func (r *Recorder) Frame() []string {
	return append([]string(nil), r.frame...)
}

func (r *Recorder) StyleAt(row, col int) Style { return r.grid.style(row, col) }
