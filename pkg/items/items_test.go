package items_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njalerikson/tomlkit/pkg/items"
)

func TestNewKeyDerivesStyle(t *testing.T) {
	bare := items.NewKey("foo-bar_1")
	assert.Equal(t, items.BareKey, bare.Style)

	quoted := items.NewKey("foo bar")
	assert.Equal(t, items.BasicKey, quoted.Style)
}

func TestHiddenKeysAreUniqueAndEqual(t *testing.T) {
	a := items.NewHiddenKey()
	b := items.NewHiddenKey()
	assert.True(t, a.Hidden)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestScalarRawRoundTrips(t *testing.T) {
	s := items.NewInteger(255, 16, false).WithRaw("0xFF")
	assert.Equal(t, "0xFF", s.Raw)
	assert.True(t, s.HasRaw)
	assert.EqualValues(t, 255, s.Native())

	s.ClearRaw()
	assert.False(t, s.HasRaw)
}

func TestFloatSpecials(t *testing.T) {
	inf := items.NewFloat(math.Inf(1), false, false)
	tok, ok := inf.IsFloatSpecial()
	assert.True(t, ok)
	assert.Equal(t, "inf", tok)
}

func TestDateTimeString(t *testing.T) {
	dt := items.DateTime{
		Date:      items.Date{Year: 2024, Month: 1, Day: 2},
		HasTime:   true,
		Time:      items.Time{Hour: 3, Minute: 4, Second: 5},
		HasOffset: true,
		OffsetZ:   true,
	}
	assert.Equal(t, "2024-01-02 03:04:05Z", dt.String())
}
