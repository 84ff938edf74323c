package metrics

import "time"

// Session holds the counters of one run. It is owned by the run loop and
// never shared.
type Session struct {
	Started  time.Time
	Finished time.Time

	Total int
	// Index is the 1-based position of the file being processed.
	Index int

	BytesProcessed int64
	Succeeded      int64
	Failed         int64
}

func NewSession(started time.Time, total int) *Session {
	return &Session{Started: started, Total: total, Index: 1}
}

// Complete advances the session past the current file. Only successful
// files count towards BytesProcessed.
func (s *Session) Complete(size int64, ok bool) {
	if ok {
		s.Succeeded++
		s.BytesProcessed += size
	} else {
		s.Failed++
	}
	s.Index++
}

// Current is Index clamped to Total, for display once the loop is over.
func (s *Session) Current() int {
	if s.Index > s.Total {
		return s.Total
	}
	return s.Index
}

func (s *Session) Done() bool { return s.Index > s.Total }

func (s *Session) Stop(now time.Time) { s.Finished = now }

func (s *Session) Duration(now time.Time) time.Duration {
	if s.Finished.IsZero() {
		return now.Sub(s.Started)
	}
	return s.Finished.Sub(s.Started)
}

// Speed is the average throughput since the session started.
func (s *Session) Speed(now time.Time) float64 {
	return Speed(s.BytesProcessed, s.Duration(now))
}
