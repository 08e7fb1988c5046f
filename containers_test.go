package alsatlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gen2brain/alsatlv"
)

func TestDbRangeEntry(t *testing.T) {
	raw := []uint32{0, 10, 1, 8, 0xfffffff6, 0x10} // scale min is -10

	entry, err := alsatlv.DecodeDbRangeEntry(raw)
	require.NoError(t, err)
	assert.Equal(t, alsatlv.DbRangeEntry{
		MinVal: 0,
		MaxVal: 10,
		Data:   alsatlv.DbScale{Min: -10, Step: 16},
	}, entry)
	assert.Equal(t, raw, entry.Encode(), "encode should reproduce the original words")
}

func TestDbRangeEntryErrors(t *testing.T) {
	_, err := alsatlv.DecodeDbRangeEntry([]uint32{0, 10, 1})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidLength, "an entry needs min, max and a nested header")

	_, err = alsatlv.DecodeDbRangeEntry([]uint32{0, 10, 1, 8, 0})
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData, "the nested value is shorter than declared")

	// A channel map cannot serve as the nested data of a range entry.
	_, err = alsatlv.DecodeDbRangeEntry([]uint32{0, 10, 0x101, 8, 3, 4})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidType)

	var de *alsatlv.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Offset, "the nested type tag at word 2 is the violation")
}

func TestDbRange(t *testing.T) {
	raw := []uint32{
		3, 48,
		0, 10, 1, 8, 0xfffffc18, 100, // scale min is -1000
		11, 20, 1, 8, 50, 0x00010010,
	}

	dbRange, err := alsatlv.DecodeDbRange(raw)
	require.NoError(t, err)
	assert.Equal(t, alsatlv.DbRange{
		Entries: []alsatlv.DbRangeEntry{
			{MinVal: 0, MaxVal: 10, Data: alsatlv.DbScale{Min: -1000, Step: 100}},
			{MinVal: 11, MaxVal: 20, Data: alsatlv.DbScale{Min: 50, Step: 16, MuteAvail: true}},
		},
	}, dbRange)
	assert.Equal(t, raw, dbRange.Encode(), "encode should reproduce the original words")

	item, err := alsatlv.DecodeItem(raw)
	require.NoError(t, err)
	assert.Equal(t, dbRange, item)
}

func TestDbRangeNested(t *testing.T) {
	inner := alsatlv.DbRange{
		Entries: []alsatlv.DbRangeEntry{
			{MinVal: 0, MaxVal: 5, Data: alsatlv.DbInterval{Min: -100, Max: 0, MuteAvail: true}},
		},
	}
	outer := alsatlv.DbRange{
		Entries: []alsatlv.DbRangeEntry{
			{MinVal: 0, MaxVal: 5, Data: inner},
			{MinVal: 6, MaxVal: 10, Data: alsatlv.DbScale{Min: 0, Step: 10}},
		},
	}

	decoded, err := alsatlv.DecodeDbRange(outer.Encode())
	require.NoError(t, err)
	assert.Equal(t, outer, decoded, "a range may nest a further range")
}

func TestDbRangeErrors(t *testing.T) {
	_, err := alsatlv.DecodeDbRange([]uint32{3, 24, 0, 10, 1})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidLength, "less than one whole entry cannot be a range")

	_, err = alsatlv.DecodeDbRange([]uint32{1, 8, 0, 0, 0, 0})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidType)

	_, err = alsatlv.DecodeDbRange([]uint32{3, 48, 0, 10, 1, 8, 0, 0})
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData, "value shorter than the declared length")

	// A remainder too short to hold an entry is rejected, not skipped.
	raw := []uint32{
		3, 32,
		0, 10, 1, 8, 0, 0x10,
		0, 0,
	}
	var de *alsatlv.DecodeError
	_, err = alsatlv.DecodeDbRange(raw)
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 8, de.Offset, "the two-word remainder starts at word 8")

	// An entry whose nested record overruns the value region is rejected.
	raw = []uint32{
		3, 24,
		0, 10, 1, 16, 0, 0x10,
	}
	_, err = alsatlv.DecodeDbRange(raw)
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 5, de.Offset, "the nested length field at word 5 is the violation")

	// A failure inside an entry's nested record reports the outermost word offset.
	raw = []uint32{
		3, 24,
		0, 10, 1, 0, 0, 0,
	}
	_, err = alsatlv.DecodeDbRange(raw)
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 5, de.Offset, "the nested length field at word 5 is the violation")
}

func TestContainer(t *testing.T) {
	raw := []uint32{
		0, 136,
		3, 48,
		0, 10, 4, 8, 0, 5,
		10, 20, 4, 8, 0, 10,
		3, 72,
		0, 10, 4, 8, 0, 5,
		10, 20, 4, 8, 5, 10,
		20, 40, 4, 8, 10, 20,
	}

	container, err := alsatlv.DecodeContainer(raw)
	require.NoError(t, err)
	assert.Equal(t, alsatlv.Container{
		Entries: []alsatlv.Item{
			alsatlv.DbRange{
				Entries: []alsatlv.DbRangeEntry{
					{MinVal: 0, MaxVal: 10, Data: alsatlv.DbInterval{Min: 0, Max: 5}},
					{MinVal: 10, MaxVal: 20, Data: alsatlv.DbInterval{Min: 0, Max: 10}},
				},
			},
			alsatlv.DbRange{
				Entries: []alsatlv.DbRangeEntry{
					{MinVal: 0, MaxVal: 10, Data: alsatlv.DbInterval{Min: 0, Max: 5}},
					{MinVal: 10, MaxVal: 20, Data: alsatlv.DbInterval{Min: 5, Max: 10}},
					{MinVal: 20, MaxVal: 40, Data: alsatlv.DbInterval{Min: 10, Max: 20}},
				},
			},
		},
	}, container)
	assert.Equal(t, raw, container.Encode(), "encode should reproduce the original words")

	item, err := alsatlv.DecodeItem(raw)
	require.NoError(t, err)
	assert.Equal(t, container, item)
}

func TestContainerMixedEntries(t *testing.T) {
	container := alsatlv.Container{
		Entries: []alsatlv.Item{
			alsatlv.DbScale{Min: -9999, Step: 100, MuteAvail: true},
			alsatlv.Chmap{
				Mode: alsatlv.CHMAP_MODE_FIXED,
				Entries: []alsatlv.ChmapEntry{
					{Pos: alsatlv.SNDRV_CHMAP_FL},
					{Pos: alsatlv.SNDRV_CHMAP_FR},
				},
			},
			alsatlv.Unknown{0x2000, 4, 0xdeadbeef},
			alsatlv.Container{
				Entries: []alsatlv.Item{
					alsatlv.DbInterval{Min: 0, Max: 100},
				},
			},
		},
	}

	decoded, err := alsatlv.DecodeContainer(container.Encode())
	require.NoError(t, err)
	assert.Equal(t, container, decoded, "a mixed container should survive the round trip")
}

func TestContainerEmpty(t *testing.T) {
	container, err := alsatlv.DecodeContainer([]uint32{0, 0})
	require.NoError(t, err)
	assert.Empty(t, container.Entries)
	assert.Equal(t, []uint32{0, 0}, container.Encode())
}

func TestContainerErrors(t *testing.T) {
	_, err := alsatlv.DecodeContainer([]uint32{0})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidLength)

	_, err = alsatlv.DecodeContainer([]uint32{3, 0})
	assert.ErrorIs(t, err, alsatlv.ErrInvalidType)

	_, err = alsatlv.DecodeContainer([]uint32{0, 16, 1, 8})
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData, "value shorter than the declared length")

	// A remainder too short to hold a record header is rejected, not skipped.
	var de *alsatlv.DecodeError
	_, err = alsatlv.DecodeContainer([]uint32{0, 4, 7})
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 2, de.Offset, "the one-word remainder starts at word 2")

	// A record whose declared length overruns the value region is rejected.
	_, err = alsatlv.DecodeContainer([]uint32{0, 8, 1, 16})
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 3, de.Offset, "the record length field at word 3 is the violation")

	// A failure inside a nested record reports the outermost word offset.
	_, err = alsatlv.DecodeContainer([]uint32{0, 24, 1, 8, 0, 0, 1, 0})
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 7, de.Offset, "the nested length field at word 7 is the violation")
}

func TestContainerOversizedLeaf(t *testing.T) {
	// A dB scale declaring more than its two value words would re-encode shorter than the
	// input, so it must not decode at all.
	var de *alsatlv.DecodeError
	_, err := alsatlv.DecodeContainer([]uint32{0, 20, 1, 12, 0, 10, 0xdead})
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, alsatlv.ErrTruncatedData)
	assert.Equal(t, 3, de.Offset, "the leaf length field at word 3 is the violation")
}
