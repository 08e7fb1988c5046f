// Package alsatlv encodes and decodes the TLV (Type-Length-Value) metadata of the ALSA control
// interface, as exchanged with the kernel through the SNDRV_CTL_IOCTL_TLV_READ and
// SNDRV_CTL_IOCTL_TLV_WRITE ioctls.
//
// The wire format is a flat sequence of 32-bit words: a type tag, a byte length (always a
// multiple of 4) and length/4 words of value. Containers and dB ranges nest further TLV
// records inside their value region. All types in this package are plain value types; decoding
// never keeps references into the input buffer and encoding always produces a fresh slice.
package alsatlv

// TlvType identifies the type field of a TLV record.
// These values correspond to the SNDRV_CTL_TLVT_* constants in the ALSA kernel headers.
type TlvType = uint32

const (
	SNDRV_CTL_TLVT_CONTAINER      TlvType = 0
	SNDRV_CTL_TLVT_DB_SCALE       TlvType = 1
	SNDRV_CTL_TLVT_DB_LINEAR      TlvType = 2
	SNDRV_CTL_TLVT_DB_RANGE       TlvType = 3
	SNDRV_CTL_TLVT_DB_MINMAX      TlvType = 4
	SNDRV_CTL_TLVT_DB_MINMAX_MUTE TlvType = 5

	SNDRV_CTL_TLVT_CHMAP_FIXED  TlvType = 0x101
	SNDRV_CTL_TLVT_CHMAP_VAR    TlvType = 0x102
	SNDRV_CTL_TLVT_CHMAP_PAIRED TlvType = 0x103
)

const (
	// SNDRV_CTL_TLVD_DB_SCALE_MASK extracts the step from the second value word of a dB scale.
	SNDRV_CTL_TLVD_DB_SCALE_MASK uint32 = 0xffff
	// SNDRV_CTL_TLVD_DB_SCALE_MUTE marks that the minimum value of a dB scale mutes the element.
	SNDRV_CTL_TLVD_DB_SCALE_MUTE uint32 = 0x10000

	// SNDRV_CTL_TLVD_DB_GAIN_MUTE is the dB value (in 0.01 dB unit) reserved for explicit mute.
	SNDRV_CTL_TLVD_DB_GAIN_MUTE int32 = -9999999
)

// CTL_VALUE_MUTE is the raw dB value that mutes a control element when the metadata reports
// mute availability.
const CTL_VALUE_MUTE = SNDRV_CTL_TLVD_DB_GAIN_MUTE

// DB_VALUE_MULTIPLIER converts between the 0.01 dB unit used on the wire and whole decibels.
const DB_VALUE_MULTIPLIER = 100

// Channel position codes for channel-map TLV entries.
// These values correspond to the SNDRV_CHMAP_* constants in the ALSA kernel headers.
const (
	SNDRV_CHMAP_UNKNOWN uint16 = 0
	SNDRV_CHMAP_NA      uint16 = 1
	SNDRV_CHMAP_MONO    uint16 = 2
	SNDRV_CHMAP_FL      uint16 = 3
	SNDRV_CHMAP_FR      uint16 = 4
	SNDRV_CHMAP_RL      uint16 = 5
	SNDRV_CHMAP_RR      uint16 = 6
	SNDRV_CHMAP_FC      uint16 = 7
	SNDRV_CHMAP_LFE     uint16 = 8
	SNDRV_CHMAP_SL      uint16 = 9
	SNDRV_CHMAP_SR      uint16 = 10
	SNDRV_CHMAP_RC      uint16 = 11
	SNDRV_CHMAP_FLC     uint16 = 12
	SNDRV_CHMAP_FRC     uint16 = 13
	SNDRV_CHMAP_RLC     uint16 = 14
	SNDRV_CHMAP_RRC     uint16 = 15
	SNDRV_CHMAP_FLW     uint16 = 16
	SNDRV_CHMAP_FRW     uint16 = 17
	SNDRV_CHMAP_FLH     uint16 = 18
	SNDRV_CHMAP_FCH     uint16 = 19
	SNDRV_CHMAP_FRH     uint16 = 20
	SNDRV_CHMAP_TC      uint16 = 21
	SNDRV_CHMAP_TFL     uint16 = 22
	SNDRV_CHMAP_TFR     uint16 = 23
	SNDRV_CHMAP_TFC     uint16 = 24
	SNDRV_CHMAP_TRL     uint16 = 25
	SNDRV_CHMAP_TRR     uint16 = 26
	SNDRV_CHMAP_TRC     uint16 = 27
	SNDRV_CHMAP_TFLC    uint16 = 28
	SNDRV_CHMAP_TFRC    uint16 = 29
	SNDRV_CHMAP_TSL     uint16 = 30
	SNDRV_CHMAP_TSR     uint16 = 31
	SNDRV_CHMAP_LLFE    uint16 = 32
	SNDRV_CHMAP_RLFE    uint16 = 33
	SNDRV_CHMAP_BC      uint16 = 34
	SNDRV_CHMAP_BLC     uint16 = 35
	SNDRV_CHMAP_BRC     uint16 = 36
)

const (
	// SNDRV_CHMAP_POSITION_MASK extracts the channel position from a channel-map entry word.
	SNDRV_CHMAP_POSITION_MASK uint32 = 0x0000ffff
	// SNDRV_CHMAP_PHASE_INVERSE marks a channel whose phase is inverted.
	SNDRV_CHMAP_PHASE_INVERSE uint32 = 0x00010000
	// SNDRV_CHMAP_DRIVER_SPEC marks a driver-specific (non-generic) channel position.
	SNDRV_CHMAP_DRIVER_SPEC uint32 = 0x00020000
)

// Item is any decoded TLV entity. Encode returns the full wire representation, including the
// type and length header for self-describing entities. The concrete types are Container,
// DbRange, DbScale, DbInterval, Chmap and Unknown.
type Item interface {
	Encode() []uint32
}

// Data is a TLV entity with a known type tag and value region. ValueLength reports the number
// of 32-bit words in the value region; the length field on the wire is 4*ValueLength().
type Data interface {
	Item

	ValueType() uint32
	ValueLength() int
	Value() []uint32
}

// RangeData is implemented by the entity types allowed as the nested data of a dB range entry:
// DbScale, DbInterval and DbRange.
type RangeData interface {
	Data

	rangeData()
}

// encodeData prepends the type and length header to the value region of d.
func encodeData(d Data) []uint32 {
	raw := make([]uint32, 0, 2+d.ValueLength())
	raw = append(raw, d.ValueType(), uint32(4*d.ValueLength()))
	raw = append(raw, d.Value()...)

	return raw
}

// DecodeItem decodes the TLV record at the beginning of raw, dispatching on its type tag.
// Records with a type this package does not understand decode to Unknown, preserving the raw
// words of exactly the declared (type, length, value) span so that vendor-private metadata
// survives a decode/encode round trip.
func DecodeItem(raw []uint32) (Item, error) {
	if len(raw) < 2 {
		return nil, newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	switch raw[0] {
	case SNDRV_CTL_TLVT_CONTAINER:
		return DecodeContainer(raw)
	case SNDRV_CTL_TLVT_DB_RANGE:
		return DecodeDbRange(raw)
	case SNDRV_CTL_TLVT_DB_SCALE:
		return DecodeDbScale(raw)
	case SNDRV_CTL_TLVT_DB_LINEAR, SNDRV_CTL_TLVT_DB_MINMAX, SNDRV_CTL_TLVT_DB_MINMAX_MUTE:
		return DecodeDbInterval(raw)
	case SNDRV_CTL_TLVT_CHMAP_FIXED, SNDRV_CTL_TLVT_CHMAP_VAR, SNDRV_CTL_TLVT_CHMAP_PAIRED:
		return DecodeChmap(raw)
	default:
		valueLength := int(raw[1] / 4)
		if len(raw) < 2+valueLength {
			return nil, newDecodeError(1, len(raw)-2, valueLength, ErrTruncatedData)
		}

		u := make(Unknown, 2+valueLength)
		copy(u, raw[:2+valueLength])

		return u, nil
	}
}

// Unknown holds the raw words of a TLV record with an unrecognized type tag, including its
// type and length header.
type Unknown []uint32

// Encode returns a copy of the preserved raw words.
func (u Unknown) Encode() []uint32 {
	raw := make([]uint32, len(u))
	copy(raw, u)

	return raw
}
