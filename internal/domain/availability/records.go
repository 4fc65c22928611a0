package availability

import (
	"fmt"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// WeeklySource converts a weekly availability read into a Source. A row with
// unparsable times counts as a failed read.
func WeeklySource(row *models.WeeklyAvailability, err error) Source[*WeeklyRecord] {
	if err != nil {
		return Failed[*WeeklyRecord](err)
	}
	if row == nil {
		return Empty[*WeeklyRecord]()
	}

	rec := &WeeklyRecord{IsAvailable: row.IsAvailable, Start: DefaultStart, End: DefaultEnd}
	if !row.IsAvailable {
		return Loaded(rec)
	}

	start, err := ParseClock(row.StartTime)
	if err != nil {
		return Failed[*WeeklyRecord](fmt.Errorf("weekly availability %d: %w", row.ID, err))
	}
	end, err := ParseClock(row.EndTime)
	if err != nil {
		return Failed[*WeeklyRecord](fmt.Errorf("weekly availability %d: %w", row.ID, err))
	}
	rec.Start, rec.End = start, end
	return Loaded(rec)
}

// BookingsSource skips rows whose start time does not parse; they cannot
// collide with a catalog slot anyway.
func BookingsSource(rows []models.Booking, err error) Source[[]BookingRecord] {
	if err != nil {
		return Failed[[]BookingRecord](err)
	}
	if len(rows) == 0 {
		return Empty[[]BookingRecord]()
	}

	out := make([]BookingRecord, 0, len(rows))
	for _, b := range rows {
		start, perr := ParseClock(b.StartTime)
		if perr != nil {
			continue
		}
		out = append(out, BookingRecord{
			Date:      b.Date,
			Start:     start,
			Cancelled: b.Status == "cancelled",
		})
	}
	return Loaded(out)
}

func BlocksSource(rows []models.BlockedTime, err error) Source[[]BlockRecord] {
	if err != nil {
		return Failed[[]BlockRecord](err)
	}
	if len(rows) == 0 {
		return Empty[[]BlockRecord]()
	}

	out := make([]BlockRecord, 0, len(rows))
	for _, b := range rows {
		out = append(out, BlockRecord{Start: b.StartDatetime, End: b.EndDatetime, AllDay: b.AllDay})
	}
	return Loaded(out)
}
