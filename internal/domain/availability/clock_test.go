package availability

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string]string{
		"09:00:00": "09:00:00",
		"9:00":     "09:00:00",
		"17:30":    "17:30:00",
		"2:00 PM":  "14:00:00",
		"12:00 PM": "12:00:00",
		"12:00 am": "00:00:00",
		"7:00PM":   "19:00:00",
	}
	for in, want := range cases {
		c, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.String(), in)
	}

	_, err := ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}

func TestClockLabel(t *testing.T) {
	assert.Equal(t, "9:00 AM", MustClock("09:00:00").Label())
	assert.Equal(t, "12:00 PM", MustClock("12:00").Label())
	assert.Equal(t, "4:00 PM", MustClock("16:00").Label())
	assert.Equal(t, "12:00 AM", MustClock("00:00").Label())
}

func TestClockOn(t *testing.T) {
	loc := time.FixedZone("x", 3600)
	d := time.Date(2026, 3, 4, 22, 15, 0, 0, loc)

	got := MustClock("14:00").On(d)

	assert.Equal(t, time.Date(2026, 3, 4, 14, 0, 0, 0, loc), got)
}

func TestCatalogLabelsMatchTimes(t *testing.T) {
	for _, s := range Catalog() {
		assert.Equal(t, s.Label, s.Time.Label())
	}
}

func TestLookupSlot(t *testing.T) {
	s, ok := LookupSlot("3:00 PM")
	require.True(t, ok)
	assert.Equal(t, BandAfternoon, s.Band)

	s, ok = LookupSlot("19:00:00")
	require.True(t, ok)
	assert.Equal(t, "7:00 PM", s.Label)

	_, ok = LookupSlot("8:00 AM")
	assert.False(t, ok)
}

func TestClockJSON(t *testing.T) {
	b, err := json.Marshal(CatalogSlot{Label: "2:00 PM", Band: BandAfternoon, Time: MustClock("14:00")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"2:00 PM","band":"afternoon","time":"14:00:00"}`, string(b))

	var c Clock
	require.NoError(t, json.Unmarshal([]byte(`"9:00 AM"`), &c))
	assert.Equal(t, MustClock("09:00"), c)
}
