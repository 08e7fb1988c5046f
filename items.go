package alsatlv

// DbScale describes a linear mapping from raw control values to decibels.
// It has SNDRV_CTL_TLVT_DB_SCALE (=1) in its type field and two words in its value field.
type DbScale struct {
	// Min is the dB value (in 0.01 dB unit) of the minimum raw value of the control element.
	Min int32
	// Step is the dB increase (in 0.01 dB unit) for one step of the raw value.
	Step uint16
	// MuteAvail reports whether the minimum raw value mutes the control element explicitly.
	MuteAvail bool
}

// ValueType returns SNDRV_CTL_TLVT_DB_SCALE.
func (d DbScale) ValueType() uint32 {
	return SNDRV_CTL_TLVT_DB_SCALE
}

// ValueLength returns the number of words in the value field.
func (d DbScale) ValueLength() int {
	return 2
}

// Value returns the words of the value field.
func (d DbScale) Value() []uint32 {
	step := uint32(d.Step)
	if d.MuteAvail {
		step |= SNDRV_CTL_TLVD_DB_SCALE_MUTE
	}

	return []uint32{uint32(d.Min), step}
}

// Encode returns the full wire representation including the type and length header.
func (d DbScale) Encode() []uint32 {
	return encodeData(d)
}

func (DbScale) rangeData() {}

// DecodeDbScale decodes a dB scale from the TLV record at the beginning of raw.
func DecodeDbScale(raw []uint32) (DbScale, error) {
	if len(raw) < 2 {
		return DbScale{}, newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	if raw[0] != SNDRV_CTL_TLVT_DB_SCALE {
		return DbScale{}, newTypeError(0, raw[0], SNDRV_CTL_TLVT_DB_SCALE)
	}

	valueLength := int(raw[1] / 4)
	if valueLength != 2 {
		return DbScale{}, newExactLengthError(1, valueLength, 2)
	}

	value := raw[2:]
	if len(value) < valueLength {
		return DbScale{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}

	return DbScale{
		Min:       int32(value[0]),
		Step:      uint16(value[1] & SNDRV_CTL_TLVD_DB_SCALE_MASK),
		MuteAvail: value[1]&SNDRV_CTL_TLVD_DB_SCALE_MUTE > 0,
	}, nil
}

// DbInterval describes a min/max bounded mapping from raw control values to decibels.
//
// It covers three wire types:
//   - SNDRV_CTL_TLVT_DB_LINEAR (=2)
//   - SNDRV_CTL_TLVT_DB_MINMAX (=4)
//   - SNDRV_CTL_TLVT_DB_MINMAX_MUTE (=5)
//
// All of them have two words in their value field.
type DbInterval struct {
	// Min is the dB value (in 0.01 dB unit) of the minimum raw value of the control element.
	Min int32
	// Max is the dB value (in 0.01 dB unit) of the maximum raw value of the control element.
	Max int32
	// Linear reports that the raw value changes the amplitude linearly, so the dB value follows
	// 20*log10(raw/length) rather than a linear interpolation between Min and Max.
	Linear bool
	// MuteAvail reports whether CTL_VALUE_MUTE mutes the control element explicitly.
	MuteAvail bool
}

// ValueType returns the wire type matching the Linear and MuteAvail flags.
func (d DbInterval) ValueType() uint32 {
	if d.Linear {
		return SNDRV_CTL_TLVT_DB_LINEAR
	}

	if d.MuteAvail {
		return SNDRV_CTL_TLVT_DB_MINMAX_MUTE
	}

	return SNDRV_CTL_TLVT_DB_MINMAX
}

// ValueLength returns the number of words in the value field.
func (d DbInterval) ValueLength() int {
	return 2
}

// Value returns the words of the value field.
func (d DbInterval) Value() []uint32 {
	return []uint32{uint32(d.Min), uint32(d.Max)}
}

// Encode returns the full wire representation including the type and length header.
func (d DbInterval) Encode() []uint32 {
	return encodeData(d)
}

func (DbInterval) rangeData() {}

// DecodeDbInterval decodes a dB interval from the TLV record at the beginning of raw.
func DecodeDbInterval(raw []uint32) (DbInterval, error) {
	if len(raw) < 2 {
		return DbInterval{}, newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	valueLength := int(raw[1] / 4)
	if valueLength != 2 {
		return DbInterval{}, newExactLengthError(1, valueLength, 2)
	}

	value := raw[2:]
	if len(value) < valueLength {
		return DbInterval{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}

	interval := DbInterval{Min: int32(value[0]), Max: int32(value[1])}

	switch raw[0] {
	case SNDRV_CTL_TLVT_DB_LINEAR:
		interval.Linear = true
		interval.MuteAvail = true
	case SNDRV_CTL_TLVT_DB_MINMAX:
	case SNDRV_CTL_TLVT_DB_MINMAX_MUTE:
		interval.MuteAvail = true
	default:
		return DbInterval{}, newTypeError(0, raw[0],
			SNDRV_CTL_TLVT_DB_LINEAR, SNDRV_CTL_TLVT_DB_MINMAX, SNDRV_CTL_TLVT_DB_MINMAX_MUTE)
	}

	return interval, nil
}

// ChmapMode describes how the entries of a channel map may be rearranged.
type ChmapMode int32

const (
	// CHMAP_MODE_FIXED: the map is fixed (SNDRV_CTL_TLVT_CHMAP_FIXED).
	CHMAP_MODE_FIXED ChmapMode = 0
	// CHMAP_MODE_VAR: entries are exchangeable arbitrarily (SNDRV_CTL_TLVT_CHMAP_VAR).
	CHMAP_MODE_VAR ChmapMode = 1
	// CHMAP_MODE_PAIRED: stereo pairs of entries are exchangeable (SNDRV_CTL_TLVT_CHMAP_PAIRED).
	CHMAP_MODE_PAIRED ChmapMode = 2
)

// String returns a human-readable name for the mode.
func (m ChmapMode) String() string {
	switch m {
	case CHMAP_MODE_FIXED:
		return "FIXED"
	case CHMAP_MODE_VAR:
		return "VAR"
	case CHMAP_MODE_PAIRED:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

// ChmapEntry describes the channel assigned to one position of a PCM substream.
type ChmapEntry struct {
	// Pos is the channel position code: one of the SNDRV_CHMAP_* constants, or a
	// driver-programmed value when DriverSpec is set.
	Pos uint16
	// DriverSpec marks a driver-specific position (SNDRV_CHMAP_DRIVER_SPEC).
	DriverSpec bool
	// PhaseInverse marks a channel with inverted phase (SNDRV_CHMAP_PHASE_INVERSE).
	PhaseInverse bool
}

// decodeChmapEntry unpacks one channel-map entry word.
func decodeChmapEntry(val uint32) ChmapEntry {
	return ChmapEntry{
		Pos:          uint16(val & SNDRV_CHMAP_POSITION_MASK),
		DriverSpec:   val&SNDRV_CHMAP_DRIVER_SPEC > 0,
		PhaseInverse: val&SNDRV_CHMAP_PHASE_INVERSE > 0,
	}
}

// encode packs the entry into one channel-map word.
func (e ChmapEntry) encode() uint32 {
	val := uint32(e.Pos)
	if e.DriverSpec {
		val |= SNDRV_CHMAP_DRIVER_SPEC
	}
	if e.PhaseInverse {
		val |= SNDRV_CHMAP_PHASE_INVERSE
	}

	return val
}

// Chmap describes the channel map of a PCM substream.
// The length of its value field varies with the number of channels.
type Chmap struct {
	Mode    ChmapMode
	Entries []ChmapEntry
}

// ValueType returns the wire type matching the mode.
func (c Chmap) ValueType() uint32 {
	switch c.Mode {
	case CHMAP_MODE_VAR:
		return SNDRV_CTL_TLVT_CHMAP_VAR
	case CHMAP_MODE_PAIRED:
		return SNDRV_CTL_TLVT_CHMAP_PAIRED
	default:
		return SNDRV_CTL_TLVT_CHMAP_FIXED
	}
}

// ValueLength returns the number of words in the value field.
func (c Chmap) ValueLength() int {
	return len(c.Entries)
}

// Value returns the words of the value field.
func (c Chmap) Value() []uint32 {
	raw := make([]uint32, 0, len(c.Entries))
	for _, entry := range c.Entries {
		raw = append(raw, entry.encode())
	}

	return raw
}

// Encode returns the full wire representation including the type and length header.
func (c Chmap) Encode() []uint32 {
	return encodeData(c)
}

// DecodeChmap decodes a channel map from the TLV record at the beginning of raw.
func DecodeChmap(raw []uint32) (Chmap, error) {
	if len(raw) < 2 {
		return Chmap{}, newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	var mode ChmapMode
	switch raw[0] {
	case SNDRV_CTL_TLVT_CHMAP_FIXED:
		mode = CHMAP_MODE_FIXED
	case SNDRV_CTL_TLVT_CHMAP_VAR:
		mode = CHMAP_MODE_VAR
	case SNDRV_CTL_TLVT_CHMAP_PAIRED:
		mode = CHMAP_MODE_PAIRED
	default:
		return Chmap{}, newTypeError(0, raw[0],
			SNDRV_CTL_TLVT_CHMAP_FIXED, SNDRV_CTL_TLVT_CHMAP_VAR, SNDRV_CTL_TLVT_CHMAP_PAIRED)
	}

	valueLength := int(raw[1] / 4)
	value := raw[2:]
	if len(value) < valueLength {
		return Chmap{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}

	// A paired map carries whole stereo pairs.
	if mode == CHMAP_MODE_PAIRED && valueLength%2 > 0 {
		return Chmap{}, newDecodeError(1, len(value), valueLength, ErrTruncatedData)
	}

	entries := make([]ChmapEntry, valueLength)
	for i, val := range value[:valueLength] {
		entries[i] = decodeChmapEntry(val)
	}

	return Chmap{Mode: mode, Entries: entries}, nil
}

// ChmapPositionNames provides human-readable names for generic channel positions.
// The key corresponds to the SNDRV_CHMAP_* value.
var ChmapPositionNames = map[uint16]string{
	SNDRV_CHMAP_UNKNOWN: "UNKNOWN",
	SNDRV_CHMAP_NA:      "NA",
	SNDRV_CHMAP_MONO:    "MONO",
	SNDRV_CHMAP_FL:      "FL",
	SNDRV_CHMAP_FR:      "FR",
	SNDRV_CHMAP_RL:      "RL",
	SNDRV_CHMAP_RR:      "RR",
	SNDRV_CHMAP_FC:      "FC",
	SNDRV_CHMAP_LFE:     "LFE",
	SNDRV_CHMAP_SL:      "SL",
	SNDRV_CHMAP_SR:      "SR",
	SNDRV_CHMAP_RC:      "RC",
	SNDRV_CHMAP_FLC:     "FLC",
	SNDRV_CHMAP_FRC:     "FRC",
	SNDRV_CHMAP_RLC:     "RLC",
	SNDRV_CHMAP_RRC:     "RRC",
	SNDRV_CHMAP_FLW:     "FLW",
	SNDRV_CHMAP_FRW:     "FRW",
	SNDRV_CHMAP_FLH:     "FLH",
	SNDRV_CHMAP_FCH:     "FCH",
	SNDRV_CHMAP_FRH:     "FRH",
	SNDRV_CHMAP_TC:      "TC",
	SNDRV_CHMAP_TFL:     "TFL",
	SNDRV_CHMAP_TFR:     "TFR",
	SNDRV_CHMAP_TFC:     "TFC",
	SNDRV_CHMAP_TRL:     "TRL",
	SNDRV_CHMAP_TRR:     "TRR",
	SNDRV_CHMAP_TRC:     "TRC",
	SNDRV_CHMAP_TFLC:    "TFLC",
	SNDRV_CHMAP_TFRC:    "TFRC",
	SNDRV_CHMAP_TSL:     "TSL",
	SNDRV_CHMAP_TSR:     "TSR",
	SNDRV_CHMAP_LLFE:    "LLFE",
	SNDRV_CHMAP_RLFE:    "RLFE",
	SNDRV_CHMAP_BC:      "BC",
	SNDRV_CHMAP_BLC:     "BLC",
	SNDRV_CHMAP_BRC:     "BRC",
}
