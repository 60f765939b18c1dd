package convert

import (
	"bytes"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minutePattern = "yyyy-MM-dd HH:mm"

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestConvertToUTC(t *testing.T) {
	res, err := Convert("2023-06-15 10:00", minutePattern, "UTC", mustLoad(t, "America/New_York"))
	require.NoError(t, err)
	assert.Equal(t, "2023-06-15 14:00", res.Time)
	assert.Equal(t, "UTC", res.Abbreviation)
	assert.Equal(t, "2023-06-15 14:00 UTC", res.String())
}

func TestConvertCrossesDateLine(t *testing.T) {
	res, err := Convert("2023-01-31 20:30", minutePattern, "Asia/Tokyo", mustLoad(t, "Europe/London"))
	require.NoError(t, err)
	assert.Equal(t, "2023-02-01 05:30", res.Time)
	assert.Equal(t, "JST", res.Abbreviation)
}

func TestConvertAbbreviationFollowsParsedInstant(t *testing.T) {
	c, err := New(minutePattern, time.UTC)
	require.NoError(t, err)

	winter, err := c.Convert("2023-01-15 12:00", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15 07:00", winter.Time)
	assert.Equal(t, "EST", winter.Abbreviation)

	summer, err := c.Convert("2023-07-15 12:00", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2023-07-15 08:00", summer.Time)
	assert.Equal(t, "EDT", summer.Abbreviation)
}

func TestConvertKeepsPattern(t *testing.T) {
	res, err := Convert("15/Jun/23 10:00 AM", "dd/MMM/yy h:mm a", "Asia/Kolkata", mustLoad(t, "America/New_York"))
	require.NoError(t, err)
	assert.Equal(t, "15/Jun/23 7:30 PM", res.Time)
	assert.Equal(t, "IST", res.Abbreviation)
}

func TestConvertRoundTrip(t *testing.T) {
	zones := []string{"UTC", "Asia/Kathmandu", "Australia/Lord_Howe", "America/St_Johns", "Pacific/Chatham"}
	inputs := []string{"2023-06-15 10:00", "2024-02-29 23:59", "1999-12-31 00:00"}

	source := mustLoad(t, "America/New_York")
	for _, zone := range zones {
		for _, in := range inputs {
			there, err := Convert(in, minutePattern, zone, source)
			require.NoError(t, err)

			back, err := Convert(there.Time, minutePattern, "America/New_York", mustLoad(t, zone))
			require.NoError(t, err)
			assert.Equal(t, in, back.Time, "%s via %s", in, zone)
		}
	}
}

func TestConvertParseFailure(t *testing.T) {
	_, err := Convert("not-a-date", minutePattern, "UTC", time.UTC)
	require.Error(t, err)
	assert.Equal(t, ParseFailure, KindOf(err))

	_, err = Convert("2023-06-15 10:00", "yyyy G", "UTC", time.UTC)
	assert.Equal(t, ParseFailure, KindOf(err))
}

func TestConvertUnknownZone(t *testing.T) {
	for _, zone := range []string{"Nonexistent/Zone", ""} {
		_, err := Convert("2023-06-15 10:00", minutePattern, zone, time.UTC)
		require.Error(t, err)
		assert.Equal(t, UnknownZone, KindOf(err))
	}
}

func TestNewDefaultsToLocal(t *testing.T) {
	c, err := New(minutePattern, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, c.Source())
	assert.Equal(t, minutePattern, c.Pattern())
}

func TestConvertOrEmpty(t *testing.T) {
	original := log.Logger
	defer func() { log.Logger = original }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	c, err := New(minutePattern, time.UTC)
	require.NoError(t, err)

	res := c.ConvertOrEmpty("not-a-date", "UTC")
	assert.True(t, res.IsEmpty())
	assert.Equal(t, "", res.String())
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), "not-a-date")

	buf.Reset()
	res = c.ConvertOrEmpty("2023-06-15 10:00", "Nonexistent/Zone")
	assert.True(t, res.IsEmpty())
	assert.Contains(t, buf.String(), `"level":"warn"`)

	res = c.ConvertOrEmpty("2023-06-15 10:00", "Asia/Tokyo")
	assert.Equal(t, Result{Time: "2023-06-15 19:00", Abbreviation: "JST"}, res)
}

func TestFormat(t *testing.T) {
	c, err := New("dd/MMM/yy h:mm a", mustLoad(t, "Asia/Tokyo"))
	require.NoError(t, err)

	at := time.Date(2023, time.June, 15, 3, 5, 0, 0, time.UTC)
	assert.Equal(t, "15/Jun/23 12:05 PM", c.Format(at))
}

func TestConvertSingleDigitHour(t *testing.T) {
	// H reads one or two digits but always writes two.
	res, err := Convert("9:05", "H:mm", "Etc/GMT-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "10:05", res.Time)

	res, err = Convert("9:05", "H:mm", "UTC", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "09:05", res.Time)
}

func TestNewRejectsMergedElements(t *testing.T) {
	_, err := New("yyyy-Ms", time.UTC)
	assert.True(t, errors.Is(err, ErrUnsupportedPattern))

	_, err = Convert("2023-67", "yyyy-Ms", "UTC", time.UTC)
	assert.Equal(t, ParseFailure, KindOf(err))
}
