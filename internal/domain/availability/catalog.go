package availability

type Band string

const (
	BandMorning   Band = "morning"
	BandAfternoon Band = "afternoon"
	BandEvening   Band = "evening"
)

type CatalogSlot struct {
	Label string `json:"label"`
	Band  Band   `json:"band"`
	Time  Clock  `json:"time"`
}

// catalog is the fixed, ordered list of bookable times of day.
var catalog = []CatalogSlot{
	{Label: "9:00 AM", Band: BandMorning, Time: 9 * 3600},
	{Label: "10:00 AM", Band: BandMorning, Time: 10 * 3600},
	{Label: "11:00 AM", Band: BandMorning, Time: 11 * 3600},

	{Label: "12:00 PM", Band: BandAfternoon, Time: 12 * 3600},
	{Label: "1:00 PM", Band: BandAfternoon, Time: 13 * 3600},
	{Label: "2:00 PM", Band: BandAfternoon, Time: 14 * 3600},
	{Label: "3:00 PM", Band: BandAfternoon, Time: 15 * 3600},
	{Label: "4:00 PM", Band: BandAfternoon, Time: 16 * 3600},

	{Label: "5:00 PM", Band: BandEvening, Time: 17 * 3600},
	{Label: "6:00 PM", Band: BandEvening, Time: 18 * 3600},
	{Label: "7:00 PM", Band: BandEvening, Time: 19 * 3600},
}

// Catalog returns a copy of the slot catalog in display order.
func Catalog() []CatalogSlot {
	out := make([]CatalogSlot, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSlot finds a catalog slot by display label ("2:00 PM") or by
// 24-hour time ("14:00" / "14:00:00").
func LookupSlot(s string) (CatalogSlot, bool) {
	c, err := ParseClock(s)
	if err != nil {
		return CatalogSlot{}, false
	}
	for _, slot := range catalog {
		if slot.Time == c {
			return slot, true
		}
	}
	return CatalogSlot{}, false
}
