package alsatlv_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gen2brain/alsatlv"
)

func TestDbIntervalValToDb(t *testing.T) {
	interval := alsatlv.DbInterval{Min: 0, Max: 2000}
	r := alsatlv.ValueRange{Min: 0, Max: 100, Step: 1}

	db, err := interval.ValToDb(0, r)
	require.NoError(t, err)
	assert.Equal(t, 0.0, db)

	db, err = interval.ValToDb(100, r)
	require.NoError(t, err)
	assert.Equal(t, 20.0, db)

	db, err = interval.ValToDb(50, r)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, db, 1e-9)

	_, err = interval.ValToDb(101, r)
	assert.Error(t, err, "a value outside the range has no dB representation")

	_, err = interval.ValToDb(alsatlv.CTL_VALUE_MUTE, r)
	assert.Error(t, err, "mute is rejected when the interval does not support it")
}

func TestDbIntervalValFromDb(t *testing.T) {
	interval := alsatlv.DbInterval{Min: 0, Max: 2000}
	r := alsatlv.ValueRange{Min: 0, Max: 100, Step: 1}

	val, err := interval.ValFromDb(0.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(0), val)

	val, err = interval.ValFromDb(20.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(100), val)

	val, err = interval.ValFromDb(10.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(50), val)

	_, err = interval.ValFromDb(20.5, r)
	assert.Error(t, err, "a dB value above the maximum has no raw representation")

	_, err = interval.ValFromDb(math.Inf(-1), r)
	assert.Error(t, err, "mute is rejected when the interval does not support it")
}

func TestDbIntervalMute(t *testing.T) {
	interval := alsatlv.DbInterval{Min: -1000, Max: 0, MuteAvail: true}
	r := alsatlv.ValueRange{Min: 0, Max: 100, Step: 1}

	db, err := interval.ValToDb(alsatlv.CTL_VALUE_MUTE, r)
	require.NoError(t, err)
	assert.True(t, math.IsInf(db, -1), "mute converts to negative infinity")

	val, err := interval.ValFromDb(math.Inf(-1), r)
	require.NoError(t, err)
	assert.Equal(t, alsatlv.CTL_VALUE_MUTE, val)
}

func TestDbIntervalLinear(t *testing.T) {
	interval := alsatlv.DbInterval{Min: -2000, Max: 0, Linear: true, MuteAvail: true}
	r := alsatlv.ValueRange{Min: 0, Max: 100, Step: 1}

	db, err := interval.ValToDb(0, r)
	require.NoError(t, err)
	assert.Equal(t, -20.0, db)

	db, err = interval.ValToDb(100, r)
	require.NoError(t, err)
	assert.Equal(t, 0.0, db)

	// Halfway through the raw range the amplitude is 0.55, not -10 dB.
	db, err = interval.ValToDb(50, r)
	require.NoError(t, err)
	assert.InDelta(t, 20*math.Log10(0.55), db, 1e-6)

	val, err := interval.ValFromDb(db, r)
	require.NoError(t, err)
	assert.InDelta(t, 50, float64(val), 1)

	val, err = interval.ValFromDb(math.Inf(-1), r)
	require.NoError(t, err)
	assert.Equal(t, alsatlv.CTL_VALUE_MUTE, val, "a linear interval always supports mute")
}

func TestDbScaleValToDb(t *testing.T) {
	scale := alsatlv.DbScale{Min: 0, Step: 100}
	r := alsatlv.ValueRange{Min: 0, Max: 10, Step: 1}

	db, err := scale.ValToDb(5, r)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, db, 1e-9)

	val, err := scale.ValFromDb(5.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(5), val)
}

func TestDbRangeValToDb(t *testing.T) {
	dbRange := alsatlv.DbRange{
		Entries: []alsatlv.DbRangeEntry{
			{MinVal: 0, MaxVal: 10, Data: alsatlv.DbScale{Min: -1000, Step: 100}},
			{MinVal: 10, MaxVal: 20, Data: alsatlv.DbScale{Min: 0, Step: 100}},
		},
	}
	r := alsatlv.ValueRange{Min: 0, Max: 20, Step: 1}

	db, err := dbRange.ValToDb(5, r)
	require.NoError(t, err)
	assert.InDelta(t, -5.0, db, 1e-9, "the first entry covers value 5")

	db, err = dbRange.ValToDb(15, r)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, db, 1e-9, "the second entry covers value 15")

	_, err = dbRange.ValToDb(25, r)
	assert.Error(t, err, "no entry covers value 25")
}

func TestDbRangeValFromDb(t *testing.T) {
	dbRange := alsatlv.DbRange{
		Entries: []alsatlv.DbRangeEntry{
			{MinVal: 0, MaxVal: 10, Data: alsatlv.DbScale{Min: -1000, Step: 100}},
			{MinVal: 10, MaxVal: 20, Data: alsatlv.DbScale{Min: 0, Step: 100}},
		},
	}
	r := alsatlv.ValueRange{Min: 0, Max: 20, Step: 1}

	val, err := dbRange.ValFromDb(-5.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(5), val)

	val, err = dbRange.ValFromDb(5.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(15), val)

	_, err = dbRange.ValFromDb(99.0, r)
	assert.Error(t, err, "no entry covers 99 dB")
}

func TestItemValToDb(t *testing.T) {
	r := alsatlv.ValueRange{Min: 0, Max: 10, Step: 1}

	// A container tries its entries in order until one covers the value.
	container := alsatlv.Container{
		Entries: []alsatlv.Item{
			alsatlv.Chmap{Mode: alsatlv.CHMAP_MODE_FIXED},
			alsatlv.DbScale{Min: 0, Step: 100},
		},
	}

	db, err := alsatlv.ItemValToDb(container, 5, r)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, db, 1e-9)

	val, err := alsatlv.ItemValFromDb(container, 5.0, r)
	require.NoError(t, err)
	assert.Equal(t, int32(5), val)

	_, err = alsatlv.ItemValToDb(alsatlv.Unknown{0x2000, 0}, 5, r)
	assert.Error(t, err, "an unknown record carries no dB information")

	_, err = alsatlv.ItemValFromDb(alsatlv.Chmap{}, 5.0, r)
	assert.Error(t, err, "a channel map carries no dB information")
}
