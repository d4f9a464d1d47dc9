package attendance

import (
	"math"
	"time"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch is a single timestamped clock event. Punches are kept ordered by time
// within a record's day.
type Punch struct {
	ID       string
	RecordID string
	Type     PunchType
	Time     time.Time
}

// AttendanceRecord is the per-employee-per-day ledger entry. One record per
// (employee, date); created lazily on the first clock-in, amended afterwards,
// never deleted.
type AttendanceRecord struct {
	ID                  string
	EmployeeID          string
	Date                time.Time // day granularity, UTC midnight
	Punches             []Punch
	TotalWorkMinutes    int
	HasMissedPunch      bool
	ExceptionIDs        []string
	FinalisedForPayroll bool

	// Version guards read-modify-write cycles; every persisted update checks
	// and bumps it.
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Recompute refreshes TotalWorkMinutes and HasMissedPunch from the punch list.
func (r *AttendanceRecord) Recompute() {
	r.TotalWorkMinutes = WorkedMinutes(r.Punches)
	r.HasMissedPunch = HasMissedPunch(r.Punches)
}

// WorkedMinutes pairs punches sequentially: an IN opens an accumulation
// window, the next OUT closes it and contributes floor(out-in) minutes.
// Unmatched trailing punches contribute nothing. A second IN before any OUT
// re-opens the window at the later time; that distortion is a known gap of
// the punch model, not corrected here.
func WorkedMinutes(punches []Punch) int {
	total := 0
	var open *time.Time
	for _, p := range punches {
		switch p.Type {
		case PunchIn:
			t := p.Time
			open = &t
		case PunchOut:
			if open != nil {
				total += int(math.Floor(p.Time.Sub(*open).Minutes()))
				open = nil
			}
		}
	}
	return total
}

// HasMissedPunch reports whether the day's IN and OUT counts disagree.
func HasMissedPunch(punches []Punch) bool {
	ins, outs := 0, 0
	for _, p := range punches {
		if p.Type == PunchIn {
			ins++
		} else {
			outs++
		}
	}
	return ins != outs
}

// FirstIn returns the earliest IN punch, or nil.
func (r *AttendanceRecord) FirstIn() *Punch {
	for i := range r.Punches {
		if r.Punches[i].Type == PunchIn {
			return &r.Punches[i]
		}
	}
	return nil
}

// LastOut returns the latest OUT punch, or nil.
func (r *AttendanceRecord) LastOut() *Punch {
	for i := len(r.Punches) - 1; i >= 0; i-- {
		if r.Punches[i].Type == PunchOut {
			return &r.Punches[i]
		}
	}
	return nil
}

// Append adds a punch keeping the list ordered by time.
func (r *AttendanceRecord) Append(p Punch) {
	idx := len(r.Punches)
	for i, existing := range r.Punches {
		if p.Time.Before(existing.Time) {
			idx = i
			break
		}
	}
	r.Punches = append(r.Punches, Punch{})
	copy(r.Punches[idx+1:], r.Punches[idx:])
	r.Punches[idx] = p
}

// SetClockIn replaces the first IN punch, or inserts one at the front of the
// day when none exists. Used by approved corrections.
func (r *AttendanceRecord) SetClockIn(t time.Time) {
	if p := r.FirstIn(); p != nil {
		p.Time = t
		return
	}
	r.Punches = append([]Punch{{RecordID: r.ID, Type: PunchIn, Time: t}}, r.Punches...)
}

// SetClockOut replaces the first OUT punch, or appends one when none exists.
func (r *AttendanceRecord) SetClockOut(t time.Time) {
	for i := range r.Punches {
		if r.Punches[i].Type == PunchOut {
			r.Punches[i].Time = t
			return
		}
	}
	r.Punches = append(r.Punches, Punch{RecordID: r.ID, Type: PunchOut, Time: t})
}

// DayBounds returns the UTC [start, end] of the record's day. Normalizing to a
// single reference timezone avoids off-by-one matching from server-local time.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999000000, time.UTC)
	return start, end
}
