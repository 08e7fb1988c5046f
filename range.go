package alsatlv

import (
	"fmt"
	"math"
)

// ValueRange describes the raw values a control element accepts: minimum, maximum and the step
// between adjacent values, as reported by the element's integer metadata.
type ValueRange struct {
	Min  int32
	Max  int32
	Step int32
}

// Length returns the distance between the minimum and maximum.
func (r ValueRange) Length() int32 {
	length := r.Max - r.Min
	if length < 0 {
		return -length
	}

	return length
}

// Contains reports whether val lies between the minimum and maximum.
func (r ValueRange) Contains(val int32) bool {
	return val >= r.Min && val <= r.Max
}

// Length returns the distance between the minimum and maximum dB values, in 0.01 dB unit.
func (d DbInterval) Length() int32 {
	length := d.Max - d.Min
	if length < 0 {
		return -length
	}

	return length
}

// Contains reports whether the dB value (in 0.01 dB unit) lies between the minimum and maximum.
func (d DbInterval) Contains(db int32) bool {
	return db >= d.Min && db <= d.Max
}

// ToValueRange returns the raw value range covered by the scale; a dB scale covers the whole
// range of the element.
func (d DbScale) ToValueRange(r ValueRange) (ValueRange, bool) {
	return r, true
}

// ToValueRange returns the raw value range covered by the interval; a dB interval covers the
// whole range of the element.
func (d DbInterval) ToValueRange(r ValueRange) (ValueRange, bool) {
	return r, true
}

// ToValueRange returns the raw value range covered by the entry.
func (e DbRangeEntry) ToValueRange(r ValueRange) (ValueRange, bool) {
	return ValueRange{Min: e.MinVal, Max: e.MaxVal, Step: r.Step}, true
}

// ToValueRange returns the raw value range covered by all entries of the dB range. It reports
// false when the range holds no entries.
func (d DbRange) ToValueRange(r ValueRange) (ValueRange, bool) {
	merged := ValueRange{Min: math.MaxInt32, Max: math.MinInt32, Step: r.Step}
	for _, entry := range d.Entries {
		if !merged.Contains(entry.MinVal) {
			merged.Min = entry.MinVal
		}
		if !merged.Contains(entry.MaxVal) {
			merged.Max = entry.MaxVal
		}
	}

	if merged.Min == math.MaxInt32 || merged.Max == math.MinInt32 {
		return ValueRange{}, false
	}

	return merged, true
}

// ToValueRange returns the raw value range covered by all entries of the container. It reports
// false when no entry carries range information.
func (c Container) ToValueRange(r ValueRange) (ValueRange, bool) {
	merged := ValueRange{Min: math.MaxInt32, Max: math.MinInt32, Step: r.Step}
	for _, entry := range c.Entries {
		sub, ok := ItemValueRange(entry, r)
		if !ok {
			continue
		}
		if !merged.Contains(sub.Min) {
			merged.Min = sub.Min
		}
		if !merged.Contains(sub.Max) {
			merged.Max = sub.Max
		}
	}

	if merged.Min == math.MaxInt32 || merged.Max == math.MinInt32 {
		return ValueRange{}, false
	}

	return merged, true
}

// ItemValueRange returns the raw value range covered by a decoded item. It reports false for
// items without range information (channel maps, unknown records).
func ItemValueRange(item Item, r ValueRange) (ValueRange, bool) {
	switch d := item.(type) {
	case DbRange:
		return d.ToValueRange(r)
	case Container:
		return d.ToValueRange(r)
	case DbScale, DbInterval:
		return r, true
	default:
		return ValueRange{}, false
	}
}

// ToDbInterval flattens the scale into the dB interval it spans over the given value range.
func (d DbScale) ToDbInterval(r ValueRange) (DbInterval, error) {
	return DbInterval{
		Min:       d.Min,
		Max:       d.Min + r.Length()*int32(d.Step),
		Linear:    false,
		MuteAvail: d.MuteAvail,
	}, nil
}

// ToDbInterval returns the interval itself; it already carries its dB bounds.
func (d DbInterval) ToDbInterval(_ ValueRange) (DbInterval, error) {
	return d, nil
}

// ToDbInterval flattens the entry's nested data into a dB interval over the entry's own
// sub-range of raw values.
func (e DbRangeEntry) ToDbInterval(r ValueRange) (DbInterval, error) {
	sub := ValueRange{Min: e.MinVal, Max: e.MaxVal, Step: r.Step}

	switch d := e.Data.(type) {
	case DbScale:
		return d.ToDbInterval(sub)
	case DbInterval:
		return d, nil
	case DbRange:
		return d.ToDbInterval(sub)
	default:
		return DbInterval{}, fmt.Errorf("dB range entry holds no dB information")
	}
}

// ToDbInterval flattens the whole piece-wise curve into one dB interval. Every entry must lie
// inside the given value range, and all entries must agree on linearity.
func (d DbRange) ToDbInterval(r ValueRange) (DbInterval, error) {
	if len(d.Entries) == 0 {
		return DbInterval{}, fmt.Errorf("dB range holds no entry with dB information")
	}

	intervals := make([]DbInterval, 0, len(d.Entries))
	for _, entry := range d.Entries {
		if !r.Contains(entry.MinVal) || !r.Contains(entry.MaxVal) {
			return DbInterval{}, fmt.Errorf("dB range entry covers %d:%d, outside value range %d:%d",
				entry.MinVal, entry.MaxVal, r.Min, r.Max)
		}

		sub := ValueRange{Min: entry.MinVal, Max: entry.MaxVal, Step: r.Step}
		interval, err := entry.ToDbInterval(sub)
		if err != nil {
			return DbInterval{}, err
		}

		intervals = append(intervals, interval)
	}

	return mergeDbIntervals(intervals, "dB range")
}

// ToDbInterval flattens every entry of the container into one dB interval. All entries must
// carry dB information and agree on linearity.
func (c Container) ToDbInterval(r ValueRange) (DbInterval, error) {
	if len(c.Entries) == 0 {
		return DbInterval{}, fmt.Errorf("container holds no entry with dB information")
	}

	intervals := make([]DbInterval, 0, len(c.Entries))
	for _, entry := range c.Entries {
		interval, err := ItemDbInterval(entry, r)
		if err != nil {
			return DbInterval{}, err
		}

		intervals = append(intervals, interval)
	}

	return mergeDbIntervals(intervals, "container")
}

// ItemDbInterval flattens any decoded item into the dB interval it spans over the given value
// range. Items without dB information (channel maps, unknown records) yield an error.
func ItemDbInterval(item Item, r ValueRange) (DbInterval, error) {
	switch d := item.(type) {
	case Container:
		return d.ToDbInterval(r)
	case DbRange:
		return d.ToDbInterval(r)
	case DbScale:
		return d.ToDbInterval(r)
	case DbInterval:
		return d, nil
	default:
		return DbInterval{}, fmt.Errorf("item holds no dB information")
	}
}

// mergeDbIntervals widens the first interval with the bounds of the rest. The mute flag
// follows whichever interval supplies the minimum.
func mergeDbIntervals(intervals []DbInterval, what string) (DbInterval, error) {
	merged := intervals[0]
	for _, interval := range intervals[1:] {
		if interval.Linear != merged.Linear {
			return DbInterval{}, fmt.Errorf("%s mixes linear and non-linear dB entries", what)
		}

		if !merged.Contains(interval.Min) {
			merged.Min = interval.Min
			merged.MuteAvail = interval.MuteAvail
		}
		if !merged.Contains(interval.Max) {
			merged.Max = interval.Max
		}
	}

	return merged, nil
}
