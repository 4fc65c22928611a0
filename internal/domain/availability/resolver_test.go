package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("shop", -4*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, testLoc)
}

func at(d time.Time, hh, mm int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, testLoc)
}

func readyInput(date time.Time) Input {
	return Input{
		BarberID: 7,
		Date:     date,
		Weekly:   Empty[*WeeklyRecord](),
		Bookings: Empty[[]BookingRecord](),
		Blocks:   Empty[[]BlockRecord](),
	}
}

func available(r Result) []string {
	var out []string
	for _, band := range [][]Slot{r.Bands.Morning, r.Bands.Afternoon, r.Bands.Evening} {
		for _, s := range band {
			if s.Available {
				out = append(out, s.Label)
			}
		}
	}
	return out
}

func TestResolve_DefaultHoursWhenNoWeeklyRecord(t *testing.T) {
	tuesday := day(2026, 10, 20)
	require.Equal(t, time.Tuesday, tuesday.Weekday())

	res := Resolve(readyInput(tuesday))

	assert.Equal(t, StateReady, res.State)
	assert.Equal(t, "2026-10-20", res.Date)
	assert.Equal(t, []string{
		"9:00 AM", "10:00 AM", "11:00 AM",
		"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM",
	}, available(res))
	for _, s := range res.Bands.Evening {
		assert.False(t, s.Available, s.Label)
	}
}

func TestResolve_WeeklyWindowIsHalfOpen(t *testing.T) {
	wednesday := day(2026, 10, 21)
	in := readyInput(wednesday)
	in.Weekly = Loaded(&WeeklyRecord{IsAvailable: true, Start: MustClock("10:00:00"), End: MustClock("15:00:00")})

	res := Resolve(in)

	assert.Equal(t, []string{"10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM", "2:00 PM"}, available(res))
	assert.False(t, res.Available("9:00 AM"))
	assert.False(t, res.Available("3:00 PM"))
}

func TestResolve_DayOffClosesEverySlot(t *testing.T) {
	in := readyInput(day(2026, 10, 19))
	in.Weekly = Loaded(&WeeklyRecord{IsAvailable: false, Start: DefaultStart, End: DefaultEnd})
	in.Bookings = Loaded([]BookingRecord{})

	res := Resolve(in)

	assert.Equal(t, StateClosed, res.State)
	assert.Equal(t, MessageBarberUnavailable, res.Notice)
	assert.Empty(t, available(res))
	assert.Len(t, res.Bands.Morning, 3)
	assert.Len(t, res.Bands.Afternoon, 5)
	assert.Len(t, res.Bands.Evening, 3)
}

func TestResolve_BookingOccupiesExactStartOnly(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Bookings = Loaded([]BookingRecord{
		{Date: "2026-10-20", Start: MustClock("11:00:00")},
		{Date: "2026-10-20", Start: MustClock("13:00:00"), Cancelled: true},
		{Date: "2026-10-21", Start: MustClock("14:00:00")},
		{Date: "2026-10-20", Start: MustClock("15:30:00")},
	})

	res := Resolve(in)

	assert.False(t, res.Available("11:00 AM"))
	assert.True(t, res.Available("1:00 PM"), "cancelled booking frees the slot")
	assert.True(t, res.Available("2:00 PM"), "booking on another date is ignored")
	assert.True(t, res.Available("3:00 PM"), "no duration overlap is computed")
}

func TestResolve_PartialBlockIsHalfOpen(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Blocks = Loaded([]BlockRecord{
		{Start: at(d, 11, 0), End: at(d, 13, 0)},
	})

	res := Resolve(in)

	assert.True(t, res.Available("10:00 AM"))
	assert.False(t, res.Available("11:00 AM"))
	assert.False(t, res.Available("12:00 PM"))
	assert.True(t, res.Available("1:00 PM"))
}

func TestResolve_AllDayBlock(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Blocks = Loaded([]BlockRecord{
		{Start: at(d, 0, 0), End: at(d, 23, 59), AllDay: true},
	})

	res := Resolve(in)

	assert.Equal(t, StateReady, res.State)
	assert.Empty(t, available(res))
}

func TestResolve_BlockOnOtherDateIgnored(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Blocks = Loaded([]BlockRecord{
		{Start: at(day(2026, 10, 19), 9, 0), End: at(d, 17, 0)},
		{Start: at(day(2026, 10, 21), 0, 0), End: at(day(2026, 10, 21), 23, 0), AllDay: true},
	})

	res := Resolve(in)

	assert.Len(t, available(res), 8)
}

func TestResolve_BlockDateUsesShopLocation(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	// 01:00 UTC on the 21st is 21:00 on the 20th in the shop zone.
	in.Blocks = Loaded([]BlockRecord{
		{Start: time.Date(2026, 10, 21, 1, 0, 0, 0, time.UTC), End: time.Date(2026, 10, 21, 2, 0, 0, 0, time.UTC), AllDay: true},
	})

	res := Resolve(in)

	assert.Empty(t, available(res))
}

func TestResolve_SelectionInvalidatedByNewBlock(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Selected = "2:00 PM"

	before := Resolve(in)
	require.Equal(t, "2:00 PM", before.Selected)
	require.Nil(t, before.Invalidated)

	in.Blocks = Loaded([]BlockRecord{{Start: at(d, 13, 30), End: at(d, 14, 30)}})
	after := Resolve(in)

	assert.False(t, after.Available("2:00 PM"))
	assert.True(t, after.Available("1:00 PM"))
	assert.Empty(t, after.Selected)
	require.NotNil(t, after.Invalidated)
	assert.Equal(t, ReasonSlotUnavailable, after.Invalidated.Reason)
	assert.Equal(t, MessageSlotUnavailable, after.Invalidated.Message)
	assert.Equal(t, "2:00 PM", after.Invalidated.Slot)
}

func TestResolve_SelectionInvalidatedByDayOff(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Selected = "10:00 AM"
	in.Weekly = Loaded(&WeeklyRecord{IsAvailable: false})

	res := Resolve(in)

	require.NotNil(t, res.Invalidated)
	assert.Equal(t, ReasonBarberUnavailable, res.Invalidated.Reason)
	assert.NotEqual(t, MessageSlotUnavailable, res.Invalidated.Message)
}

func TestResolve_SelectionAcceptsTwentyFourHourTime(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Selected = "14:00:00"

	res := Resolve(in)

	assert.Equal(t, "2:00 PM", res.Selected)
	assert.Nil(t, res.Invalidated)
}

func TestResolve_UnknownSelectionIsInvalidated(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Selected = "2:30 PM"

	res := Resolve(in)

	require.NotNil(t, res.Invalidated)
	assert.Equal(t, ReasonSlotUnavailable, res.Invalidated.Reason)
}

func TestResolve_IncompleteSelection(t *testing.T) {
	res := Resolve(Input{Date: day(2026, 10, 20)})
	assert.Equal(t, StateIncomplete, res.State)
	assert.Empty(t, available(res))

	res = Resolve(Input{BarberID: 3})
	assert.Equal(t, StateIncomplete, res.State)
	assert.Equal(t, MessageIncomplete, res.Notice)
}

func TestResolve_WaitsForEverySource(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Blocks = Pending[[]BlockRecord]()
	in.Selected = "9:00 AM"

	res := Resolve(in)

	assert.Equal(t, StateLoading, res.State)
	assert.Equal(t, "9:00 AM", res.Selected)
	assert.Nil(t, res.Invalidated)
	assert.Empty(t, res.Bands.Morning)
}

func TestResolve_FailOpen(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Policy = FailOpen
	in.Weekly = Failed[*WeeklyRecord](errors.New("timeout"))
	in.Bookings = Failed[[]BookingRecord](errors.New("timeout"))
	in.Blocks = Failed[[]BlockRecord](errors.New("timeout"))

	res := Resolve(in)

	assert.Equal(t, StateReady, res.State)
	assert.Len(t, available(res), 8)
	assert.Equal(t, []string{"weekly_availability", "bookings", "blocked_times"}, res.Degraded)
}

func TestResolve_FailClosed(t *testing.T) {
	in := readyInput(day(2026, 10, 20))
	in.Policy = FailClosed
	in.Bookings = Failed[[]BookingRecord](errors.New("connection refused"))
	in.Selected = "10:00 AM"

	res := Resolve(in)

	assert.Equal(t, StateUnverified, res.State)
	assert.Empty(t, available(res))
	assert.Equal(t, []string{"bookings"}, res.Degraded)
	require.NotNil(t, res.Invalidated)
	assert.Equal(t, ReasonSlotUnavailable, res.Invalidated.Reason)
}

func TestResolve_OverlappingReasonsCollapse(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Bookings = Loaded([]BookingRecord{{Date: "2026-10-20", Start: MustClock("18:00:00")}})
	in.Blocks = Loaded([]BlockRecord{{Start: at(d, 17, 0), End: at(d, 20, 0)}})

	res := Resolve(in)

	assert.Equal(t, []Slot{
		{Label: "5:00 PM", Time: "17:00:00"},
		{Label: "6:00 PM", Time: "18:00:00"},
		{Label: "7:00 PM", Time: "19:00:00"},
	}, res.Bands.Evening)
}

func TestResolve_IsIdempotent(t *testing.T) {
	d := day(2026, 10, 20)
	in := readyInput(d)
	in.Selected = "4:00 PM"
	in.Weekly = Loaded(&WeeklyRecord{IsAvailable: true, Start: MustClock("09:00"), End: MustClock("19:00")})
	in.Bookings = Loaded([]BookingRecord{{Date: "2026-10-20", Start: MustClock("10:00:00")}})
	in.Blocks = Loaded([]BlockRecord{{Start: at(d, 12, 0), End: at(d, 13, 0)}})

	assert.Equal(t, Resolve(in), Resolve(in))
}

func TestResolve_BandsFollowCatalogOrder(t *testing.T) {
	res := Resolve(readyInput(day(2026, 10, 20)))

	var labels []string
	for _, s := range res.Bands.Afternoon {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM"}, labels)
}

func TestParseFailurePolicy(t *testing.T) {
	assert.Equal(t, FailClosed, ParseFailurePolicy("fail_closed"))
	assert.Equal(t, FailOpen, ParseFailurePolicy("fail_open"))
	assert.Equal(t, FailOpen, ParseFailurePolicy(""))
}
