package alsatlv

import (
	"fmt"
	"math"
)

// dbReference is the factor of the decibel definition for amplitude ratios: dB = 20*log10(ratio).
const dbReference = 20.0

func (d DbInterval) minDb() float64 {
	return float64(d.Min) / DB_VALUE_MULTIPLIER
}

func (d DbInterval) maxDb() float64 {
	return float64(d.Max) / DB_VALUE_MULTIPLIER
}

// ValToDb converts a raw control value into decibels according to the interval. When the
// interval reports mute availability, CTL_VALUE_MUTE converts to negative infinity.
func (d DbInterval) ValToDb(val int32, r ValueRange) (float64, error) {
	if val == CTL_VALUE_MUTE && d.MuteAvail {
		return math.Inf(-1), nil
	}

	if !r.Contains(val) {
		return 0, fmt.Errorf("value %d is not between %d and %d", val, r.Min, r.Max)
	}

	switch val {
	case r.Min:
		return d.minDb(), nil
	case r.Max:
		return d.maxDb(), nil
	}

	if d.Linear {
		// The raw value scales the amplitude, so interpolate in the linear domain.
		linearMin := math.Pow(10, d.minDb()/dbReference)
		linearMax := math.Pow(10, d.maxDb()/dbReference)
		linearLength := math.Abs(linearMin - linearMax)
		linearVal := linearMin + linearLength*float64(val-r.Min)/float64(r.Length())

		return dbReference * math.Log10(linearVal), nil
	}

	dbLength := math.Abs(d.maxDb() - d.minDb())

	return d.minDb() + dbLength*float64(val-r.Min)/float64(r.Length()), nil
}

// ValFromDb converts decibels back into the raw control value according to the interval.
// Negative infinity converts to CTL_VALUE_MUTE when the interval reports mute availability.
func (d DbInterval) ValFromDb(db float64, r ValueRange) (int32, error) {
	if math.IsInf(db, -1) {
		if d.MuteAvail {
			return CTL_VALUE_MUTE, nil
		}

		return 0, fmt.Errorf("mute is not supported by this interval")
	}

	min, max := d.minDb(), d.maxDb()
	if db < min || db > max {
		return 0, fmt.Errorf("%g dB is not between %g and %g", db, min, max)
	}

	if db == min {
		return r.Min, nil
	}
	if db >= max {
		return r.Max, nil
	}

	if d.Linear {
		linearVal := math.Pow(10, db/dbReference)
		linearMin := math.Pow(10, min/dbReference)
		linearMax := math.Pow(10, max/dbReference)
		linearLength := math.Abs(linearMax - linearMin)

		return r.Min + int32(float64(r.Length())*(linearVal-linearMin)/linearLength), nil
	}

	dbLength := math.Abs(max - min)

	return r.Min + int32(float64(r.Length())*(db-min)/dbLength), nil
}

// ValToDb converts a raw control value into decibels according to the scale.
func (d DbScale) ValToDb(val int32, r ValueRange) (float64, error) {
	interval, err := d.ToDbInterval(r)
	if err != nil {
		return 0, err
	}

	return interval.ValToDb(val, r)
}

// ValFromDb converts decibels back into the raw control value according to the scale.
func (d DbScale) ValFromDb(db float64, r ValueRange) (int32, error) {
	interval, err := d.ToDbInterval(r)
	if err != nil {
		return 0, err
	}

	return interval.ValFromDb(db, r)
}

// ValToDb converts a raw control value into decibels using the entry's nested data over the
// entry's own sub-range.
func (e DbRangeEntry) ValToDb(val int32, r ValueRange) (float64, error) {
	sub := ValueRange{Min: e.MinVal, Max: e.MaxVal, Step: r.Step}

	switch d := e.Data.(type) {
	case DbScale:
		return d.ValToDb(val, sub)
	case DbInterval:
		return d.ValToDb(val, sub)
	case DbRange:
		return d.ValToDb(val, sub)
	default:
		return 0, fmt.Errorf("dB range entry holds no dB information")
	}
}

// ValFromDb converts decibels back into a raw control value using the entry's nested data over
// the entry's own sub-range.
func (e DbRangeEntry) ValFromDb(db float64, r ValueRange) (int32, error) {
	sub := ValueRange{Min: e.MinVal, Max: e.MaxVal, Step: r.Step}

	switch d := e.Data.(type) {
	case DbScale:
		return d.ValFromDb(db, sub)
	case DbInterval:
		return d.ValFromDb(db, sub)
	case DbRange:
		return d.ValFromDb(db, sub)
	default:
		return 0, fmt.Errorf("dB range entry holds no dB information")
	}
}

// ValToDb converts a raw control value into decibels using the entry whose sub-range covers
// the value.
func (d DbRange) ValToDb(val int32, r ValueRange) (float64, error) {
	for _, entry := range d.Entries {
		if val >= entry.MinVal && val <= entry.MaxVal {
			return entry.ValToDb(val, r)
		}
	}

	return 0, fmt.Errorf("value %d is outside every entry of the dB range", val)
}

// ValFromDb converts decibels back into a raw control value, trying each entry of the range in
// order and returning the first that covers the dB value.
func (d DbRange) ValFromDb(db float64, r ValueRange) (int32, error) {
	for _, entry := range d.Entries {
		val, err := entry.ValFromDb(db, r)
		if err == nil {
			return val, nil
		}
	}

	return 0, fmt.Errorf("%g dB is outside every entry of the dB range", db)
}

// ItemValToDb converts a raw control value into decibels according to a decoded item.
func ItemValToDb(item Item, val int32, r ValueRange) (float64, error) {
	switch d := item.(type) {
	case Container:
		for _, entry := range d.Entries {
			if db, err := ItemValToDb(entry, val, r); err == nil {
				return db, nil
			}
		}

		return 0, fmt.Errorf("container holds no entry covering value %d", val)
	case DbRange:
		return d.ValToDb(val, r)
	case DbScale:
		return d.ValToDb(val, r)
	case DbInterval:
		return d.ValToDb(val, r)
	default:
		return 0, fmt.Errorf("item holds no dB information")
	}
}

// ItemValFromDb converts decibels back into a raw control value according to a decoded item.
func ItemValFromDb(item Item, db float64, r ValueRange) (int32, error) {
	switch d := item.(type) {
	case Container:
		for _, entry := range d.Entries {
			if val, err := ItemValFromDb(entry, db, r); err == nil {
				return val, nil
			}
		}

		return 0, fmt.Errorf("container holds no entry covering %g dB", db)
	case DbRange:
		return d.ValFromDb(db, r)
	case DbScale:
		return d.ValFromDb(db, r)
	case DbInterval:
		return d.ValFromDb(db, r)
	default:
		return 0, fmt.Errorf("item holds no dB information")
	}
}
