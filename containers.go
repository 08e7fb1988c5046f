package alsatlv

// DbRangeEntry maps one sub-range of raw control values to a dB descriptor. On the wire it is
// the raw minimum and maximum value followed by the full TLV record of the nested data; the
// entry itself carries no header of its own, the enclosing DbRange accounts for its length.
type DbRangeEntry struct {
	// MinVal is the minimum raw value of the control element covered by this entry.
	MinVal int32
	// MaxVal is the maximum raw value of the control element covered by this entry.
	MaxVal int32
	// Data is the dB descriptor for the covered sub-range: DbScale, DbInterval or DbRange.
	Data RangeData
}

// rawLength returns the number of words the entry occupies on the wire: min/max plus the
// nested record's header and value.
func (e DbRangeEntry) rawLength() int {
	return 2 + 2 + e.Data.ValueLength()
}

// Encode returns the wire representation of the entry.
func (e DbRangeEntry) Encode() []uint32 {
	raw := make([]uint32, 0, e.rawLength())
	raw = append(raw, uint32(e.MinVal), uint32(e.MaxVal))
	raw = append(raw, e.Data.Encode()...)

	return raw
}

// DecodeDbRangeEntry decodes one dB range entry from the beginning of raw.
func DecodeDbRangeEntry(raw []uint32) (DbRangeEntry, error) {
	if len(raw) < 4 {
		return DbRangeEntry{}, newDecodeError(0, len(raw), 4, ErrInvalidLength)
	}

	entry := DbRangeEntry{MinVal: int32(raw[0]), MaxVal: int32(raw[1])}

	data := raw[2:]
	dataValueLength := int(data[1] / 4)
	if len(data) < 2+dataValueLength {
		return DbRangeEntry{}, newDecodeError(3, len(data)-2, dataValueLength, ErrTruncatedData)
	}
	dataRaw := data[:2+dataValueLength]

	var err error
	switch dataRaw[0] {
	case SNDRV_CTL_TLVT_DB_SCALE:
		entry.Data, err = DecodeDbScale(dataRaw)
	case SNDRV_CTL_TLVT_DB_RANGE:
		entry.Data, err = DecodeDbRange(dataRaw)
	case SNDRV_CTL_TLVT_DB_LINEAR, SNDRV_CTL_TLVT_DB_MINMAX, SNDRV_CTL_TLVT_DB_MINMAX_MUTE:
		entry.Data, err = DecodeDbInterval(dataRaw)
	default:
		err = newTypeError(0, dataRaw[0],
			SNDRV_CTL_TLVT_DB_SCALE, SNDRV_CTL_TLVT_DB_RANGE,
			SNDRV_CTL_TLVT_DB_LINEAR, SNDRV_CTL_TLVT_DB_MINMAX, SNDRV_CTL_TLVT_DB_MINMAX_MUTE)
	}

	if err != nil {
		return DbRangeEntry{}, nestError(err, 2)
	}

	return entry, nil
}

// DbRange describes a piece-wise dB curve: an ordered list of entries, each valid over a
// sub-range of raw control values. It has SNDRV_CTL_TLVT_DB_RANGE (=3) in its type field and a
// variable number of entries in its value field.
type DbRange struct {
	Entries []DbRangeEntry
}

// ValueType returns SNDRV_CTL_TLVT_DB_RANGE.
func (d DbRange) ValueType() uint32 {
	return SNDRV_CTL_TLVT_DB_RANGE
}

// ValueLength returns the number of words in the value field.
func (d DbRange) ValueLength() int {
	length := 0
	for _, entry := range d.Entries {
		length += entry.rawLength()
	}

	return length
}

// Value returns the words of the value field: each entry's raw encoding in order.
func (d DbRange) Value() []uint32 {
	raw := make([]uint32, 0, d.ValueLength())
	for _, entry := range d.Entries {
		raw = append(raw, entry.Encode()...)
	}

	return raw
}

// Encode returns the full wire representation including the type and length header.
func (d DbRange) Encode() []uint32 {
	return encodeData(d)
}

func (DbRange) rangeData() {}

// DecodeDbRange decodes a dB range from the TLV record at the beginning of raw. The value
// region must be filled exactly by whole entries; a trailing remainder too short to hold an
// entry is rejected rather than skipped.
func DecodeDbRange(raw []uint32) (DbRange, error) {
	// Minimum: type and length fields plus one entry of four words.
	if len(raw) < 6 {
		return DbRange{}, newDecodeError(0, len(raw), 6, ErrInvalidLength)
	}

	if raw[0] != SNDRV_CTL_TLVT_DB_RANGE {
		return DbRange{}, newTypeError(0, raw[0], SNDRV_CTL_TLVT_DB_RANGE)
	}

	valueLength := int(raw[1] / 4)
	value := raw[2:]
	if len(value) < valueLength {
		return DbRange{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}
	value = value[:valueLength]

	var entries []DbRangeEntry

	pos := 0
	for pos < valueLength {
		if valueLength-pos < 4 {
			return DbRange{}, newDecodeError(2+pos, valueLength-pos, 4, ErrTruncatedData)
		}

		entryLength := 4 + int(value[pos+3]/4)
		if pos+entryLength > valueLength {
			return DbRange{}, newDecodeError(2+pos+3, valueLength-pos-4, entryLength-4, ErrTruncatedData)
		}

		entry, err := DecodeDbRangeEntry(value[pos : pos+entryLength])
		if err != nil {
			return DbRange{}, nestError(err, 2+pos)
		}

		entries = append(entries, entry)
		pos += entryLength
	}

	return DbRange{Entries: entries}, nil
}

// Container aggregates multiple TLV records under one control element. It has
// SNDRV_CTL_TLVT_CONTAINER (=0) in its type field and a variable number of self-describing
// records in its value field; a container may nest further containers.
type Container struct {
	Entries []Item
}

// itemRawLength returns the number of words an item occupies on the wire, header included.
func itemRawLength(item Item) int {
	switch d := item.(type) {
	case Unknown:
		return len(d)
	case Data:
		return 2 + d.ValueLength()
	default:
		return len(item.Encode())
	}
}

// ValueType returns SNDRV_CTL_TLVT_CONTAINER.
func (c Container) ValueType() uint32 {
	return SNDRV_CTL_TLVT_CONTAINER
}

// ValueLength returns the number of words in the value field.
func (c Container) ValueLength() int {
	length := 0
	for _, entry := range c.Entries {
		length += itemRawLength(entry)
	}

	return length
}

// Value returns the words of the value field: each entry's full encoding in order.
func (c Container) Value() []uint32 {
	raw := make([]uint32, 0, c.ValueLength())
	for _, entry := range c.Entries {
		raw = append(raw, entry.Encode()...)
	}

	return raw
}

// Encode returns the full wire representation including the type and length header.
func (c Container) Encode() []uint32 {
	return encodeData(c)
}

// DecodeContainer decodes a container from the TLV record at the beginning of raw. The value
// region must be filled exactly by whole records; a trailing remainder too short to hold a
// header is rejected rather than skipped.
func DecodeContainer(raw []uint32) (Container, error) {
	if len(raw) < 2 {
		return Container{}, newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	if raw[0] != SNDRV_CTL_TLVT_CONTAINER {
		return Container{}, newTypeError(0, raw[0], SNDRV_CTL_TLVT_CONTAINER)
	}

	valueLength := int(raw[1] / 4)
	value := raw[2:]
	if len(value) < valueLength {
		return Container{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}
	value = value[:valueLength]

	var entries []Item

	pos := 0
	for pos < valueLength {
		if valueLength-pos < 2 {
			return Container{}, newDecodeError(2+pos, valueLength-pos, 2, ErrTruncatedData)
		}

		itemLength := 2 + int(value[pos+1]/4)
		if pos+itemLength > valueLength {
			return Container{}, newDecodeError(2+pos+1, valueLength-pos-2, itemLength-2, ErrTruncatedData)
		}

		item, err := DecodeItem(value[pos : pos+itemLength])
		if err != nil {
			return Container{}, nestError(err, 2+pos)
		}

		entries = append(entries, item)
		pos += itemLength
	}

	return Container{Entries: entries}, nil
}
