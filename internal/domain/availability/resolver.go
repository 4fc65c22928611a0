package availability

import (
	"time"
)

const DateLayout = "2006-01-02"

// Default open window used when a barber has no weekly record for the day.
var (
	DefaultStart Clock = 9 * 3600
	DefaultEnd   Clock = 17 * 3600
)

type FailurePolicy string

const (
	// FailOpen treats a failed read as "no restriction": default hours,
	// no bookings, no blocks.
	FailOpen FailurePolicy = "fail_open"
	// FailClosed marks every slot unbookable when any read failed.
	FailClosed FailurePolicy = "fail_closed"
)

func ParseFailurePolicy(s string) FailurePolicy {
	if FailurePolicy(s) == FailClosed {
		return FailClosed
	}
	return FailOpen
}

type State string

const (
	StateIncomplete State = "incomplete"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateClosed     State = "closed"
	StateUnverified State = "unverified"
)

type Reason string

const (
	ReasonBarberUnavailable Reason = "barber_unavailable"
	ReasonSlotUnavailable   Reason = "slot_unavailable"
)

const (
	MessageIncomplete        = "Select a barber and a date to see available times."
	MessageLoading           = "Loading available times..."
	MessageBarberUnavailable = "This barber is not available on the selected day. Please choose another date."
	MessageSlotUnavailable   = "The time you selected is no longer available. Please choose another time."
	MessageUnverified        = "Availability could not be confirmed right now. Please try again shortly."
)

type WeeklyRecord struct {
	IsAvailable bool
	Start       Clock
	End         Clock
}

type BookingRecord struct {
	Date      string
	Start     Clock
	Cancelled bool
}

type BlockRecord struct {
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Input is everything a resolution depends on. Weekly is loaded with a nil
// record, or empty, when the barber has no row for that day of week.
type Input struct {
	BarberID uint
	Date     time.Time
	Selected string
	Policy   FailurePolicy

	Weekly   Source[*WeeklyRecord]
	Bookings Source[[]BookingRecord]
	Blocks   Source[[]BlockRecord]
}

type Slot struct {
	Label     string `json:"label"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type Bands struct {
	Morning   []Slot `json:"morning"`
	Afternoon []Slot `json:"afternoon"`
	Evening   []Slot `json:"evening"`
}

type Invalidation struct {
	Slot    string `json:"slot"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

type Result struct {
	State       State         `json:"state"`
	Date        string        `json:"date,omitempty"`
	Bands       Bands         `json:"bands"`
	Selected    string        `json:"selected,omitempty"`
	Invalidated *Invalidation `json:"invalidated,omitempty"`
	Degraded    []string      `json:"degraded_sources,omitempty"`
	Notice      string        `json:"notice,omitempty"`
}

// Available reports whether the slot with the given label is bookable.
func (r Result) Available(label string) bool {
	for _, band := range [][]Slot{r.Bands.Morning, r.Bands.Afternoon, r.Bands.Evening} {
		for _, s := range band {
			if s.Label == label {
				return s.Available
			}
		}
	}
	return false
}

// Resolve partitions the catalog into bookable and unbookable slots for one
// barber and date. It reads nothing but its input.
func Resolve(in Input) Result {
	if in.BarberID == 0 || in.Date.IsZero() {
		return Result{State: StateIncomplete, Selected: in.Selected, Notice: MessageIncomplete}
	}

	day := in.Date.Format(DateLayout)

	if !in.Weekly.Ready() || !in.Bookings.Ready() || !in.Blocks.Ready() {
		return Result{State: StateLoading, Date: day, Selected: in.Selected, Notice: MessageLoading}
	}

	res := Result{State: StateReady, Date: day, Degraded: degradedSources(in)}
	open := make([]bool, len(catalog))
	for i := range open {
		open[i] = true
	}

	switch {
	case len(res.Degraded) > 0 && in.Policy == FailClosed:
		res.State = StateUnverified
		res.Notice = MessageUnverified
		closeAll(open)

	case !weeklyFor(in.Weekly).IsAvailable:
		res.State = StateClosed
		res.Notice = MessageBarberUnavailable
		closeAll(open)

	default:
		applyWorkingHours(open, weeklyFor(in.Weekly))
		if in.Bookings.State == SourceLoaded {
			applyBookings(open, day, in.Bookings.Data)
		}
		if in.Blocks.State == SourceLoaded {
			applyBlocks(open, in.Date, in.Blocks.Data)
		}
	}

	res.Bands = partition(open)
	res.Selected, res.Invalidated = revalidate(in.Selected, res.State, open)
	return res
}

func degradedSources(in Input) []string {
	var out []string
	if in.Weekly.Failed() {
		out = append(out, "weekly_availability")
	}
	if in.Bookings.Failed() {
		out = append(out, "bookings")
	}
	if in.Blocks.Failed() {
		out = append(out, "blocked_times")
	}
	return out
}

func weeklyFor(src Source[*WeeklyRecord]) WeeklyRecord {
	if src.State == SourceLoaded && src.Data != nil {
		return *src.Data
	}
	return WeeklyRecord{IsAvailable: true, Start: DefaultStart, End: DefaultEnd}
}

func closeAll(open []bool) {
	for i := range open {
		open[i] = false
	}
}

func applyWorkingHours(open []bool, wk WeeklyRecord) {
	for i, s := range catalog {
		if s.Time < wk.Start || s.Time >= wk.End {
			open[i] = false
		}
	}
}

func applyBookings(open []bool, day string, bookings []BookingRecord) {
	for _, b := range bookings {
		if b.Cancelled || b.Date != day {
			continue
		}
		for i, s := range catalog {
			if s.Time == b.Start {
				open[i] = false
			}
		}
	}
}

// applyBlocks only looks at blocks starting on date; a block's range is the
// time of day of its start and end, so one crossing midnight blocks nothing.
func applyBlocks(open []bool, date time.Time, blocks []BlockRecord) {
	loc := date.Location()
	day := date.Format(DateLayout)

	for _, b := range blocks {
		start := b.Start.In(loc)
		if start.Format(DateLayout) != day {
			continue
		}
		if b.AllDay {
			closeAll(open)
			return
		}
		from, to := ClockOf(start), ClockOf(b.End.In(loc))
		for i, s := range catalog {
			if s.Time >= from && s.Time < to {
				open[i] = false
			}
		}
	}
}

func partition(open []bool) Bands {
	bands := Bands{
		Morning:   []Slot{},
		Afternoon: []Slot{},
		Evening:   []Slot{},
	}
	for i, s := range catalog {
		slot := Slot{Label: s.Label, Time: s.Time.String(), Available: open[i]}
		switch s.Band {
		case BandMorning:
			bands.Morning = append(bands.Morning, slot)
		case BandAfternoon:
			bands.Afternoon = append(bands.Afternoon, slot)
		case BandEvening:
			bands.Evening = append(bands.Evening, slot)
		}
	}
	return bands
}

func revalidate(selected string, state State, open []bool) (string, *Invalidation) {
	if selected == "" {
		return "", nil
	}

	if state == StateClosed {
		return "", &Invalidation{Slot: selected, Reason: ReasonBarberUnavailable, Message: MessageBarberUnavailable}
	}

	slot, ok := LookupSlot(selected)
	if ok {
		for i, s := range catalog {
			if s.Time == slot.Time && open[i] {
				return s.Label, nil
			}
		}
	}

	return "", &Invalidation{Slot: selected, Reason: ReasonSlotUnavailable, Message: MessageSlotUnavailable}
}
