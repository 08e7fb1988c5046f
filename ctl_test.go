package alsatlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gen2brain/alsatlv"
)

// To run the hardware tests, at least one sound card must be present. The 'snd-dummy'
// kernel module provides a virtual one:
//
// sudo modprobe snd-dummy

// TestCtlHardware runs all hardware-related tests sequentially to avoid race conditions.
func TestCtlHardware(t *testing.T) {
	t.Run("OpenAndClose", testCtlOpenAndClose)
	t.Run("Elements", testCtlElements)
	t.Run("Tlv", testCtlTlv)
}

// TestCtlInvalidParameters can run in parallel as it does not access hardware.
func TestCtlInvalidParameters(t *testing.T) {
	var nilCtl *alsatlv.Ctl
	var nilElem *alsatlv.Elem

	assert.NotPanics(t, func() {
		err := nilCtl.Close()
		assert.NoError(t, err)
	}, "Close on nil ctl should not panic")

	assert.Equal(t, "", nilCtl.Name(), "Name on nil ctl should be empty string")
	assert.Equal(t, 0, nilCtl.NumElems(), "NumElems on nil ctl should be 0")

	_, err := nilCtl.Elem(0)
	assert.Error(t, err, "Elem on nil ctl should return an error")

	_, err = nilCtl.ElemByIndex(0)
	assert.Error(t, err, "ElemByIndex on nil ctl should return an error")

	_, err = nilCtl.ElemByName("test")
	assert.Error(t, err, "ElemByName on nil ctl should return an error")

	err = nilCtl.AddNewElems()
	assert.Error(t, err, "AddNewElems on nil ctl should return an error")

	err = nilCtl.SubscribeEvents(true)
	assert.Error(t, err, "SubscribeEvents on nil ctl should return an error")

	_, err = nilCtl.WaitEvent(0)
	assert.Error(t, err, "WaitEvent on nil ctl should return an error")

	_, err = nilCtl.ReadEvent()
	assert.Error(t, err, "ReadEvent on nil ctl should return an error")

	assert.Equal(t, "", nilElem.Name(), "Name on nil elem should be empty string")
	assert.NotEqual(t, uint32(0), nilElem.ID(), "ID on nil elem should be max_uint")
	assert.Equal(t, alsatlv.SNDRV_CTL_ELEM_TYPE_UNKNOWN, nilElem.Type(), "Type on nil elem should be UNKNOWN")
	assert.Equal(t, "UNKNOWN", nilElem.TypeString(), "TypeString on nil elem should be UNKNOWN")
	assert.Equal(t, uint32(0), nilElem.NumValues(), "NumValues on nil elem should be 0")
	assert.False(t, nilElem.TlvReadable(), "TlvReadable on nil elem should be false")
	assert.False(t, nilElem.TlvWritable(), "TlvWritable on nil elem should be false")

	err = nilElem.Update()
	assert.Error(t, err, "Update on nil elem should return an error")

	_, err = nilElem.ValueRange()
	assert.Error(t, err, "ValueRange on nil elem should return an error")

	_, err = nilElem.ReadTlvRaw()
	assert.Error(t, err, "ReadTlvRaw on nil elem should return an error")

	_, err = nilElem.ReadTlv()
	assert.Error(t, err, "ReadTlv on nil elem should return an error")

	err = nilElem.WriteTlvRaw([]uint32{1, 8, 0, 0})
	assert.Error(t, err, "WriteTlvRaw on nil elem should return an error")

	err = nilElem.WriteTlv(alsatlv.DbScale{})
	assert.Error(t, err, "WriteTlv on nil elem should return an error")

	err = nilElem.WriteTlv(nil)
	assert.Error(t, err, "WriteTlv with nil item should return an error")
}

func testCtlOpenAndClose(t *testing.T) {
	ctl, err := alsatlv.CtlOpen(0)
	if err != nil {
		t.Skipf("Skipping test, no control device available: %v", err)
	}

	assert.NotEmpty(t, ctl.Name(), "an open card should report a name")
	assert.NotEqual(t, ^uintptr(0), ctl.Fd())

	err = ctl.Close()
	assert.NoError(t, err)

	// Closing twice must be harmless.
	err = ctl.Close()
	assert.NoError(t, err)

	_, err = alsatlv.CtlOpen(4095)
	assert.Error(t, err, "opening a nonexistent card should fail")
}

func testCtlElements(t *testing.T) {
	ctl, err := alsatlv.CtlOpen(0)
	if err != nil {
		t.Skipf("Skipping test, no control device available: %v", err)
	}
	defer ctl.Close()

	if ctl.NumElems() == 0 {
		t.Skip("Skipping test, card has no control elements")
	}

	for i := 0; i < ctl.NumElems(); i++ {
		elem, err := ctl.ElemByIndex(uint(i))
		require.NoError(t, err)

		byID, err := ctl.Elem(elem.ID())
		require.NoError(t, err)
		assert.Equal(t, elem, byID, "lookup by numid should find the same element")

		byName, err := ctl.ElemByNameAndIndex(elem.Name(), 0)
		require.NoError(t, err)
		assert.Equal(t, elem.Name(), byName.Name())
	}

	_, err = ctl.ElemByIndex(uint(ctl.NumElems()))
	assert.Error(t, err, "an index past the end should fail")

	_, err = ctl.ElemByName("No Such Control Exists")
	assert.Error(t, err)

	err = ctl.AddNewElems()
	assert.NoError(t, err, "rescanning without new elements should succeed")
}

func testCtlTlv(t *testing.T) {
	ctl, err := alsatlv.CtlOpen(0)
	if err != nil {
		t.Skipf("Skipping test, no control device available: %v", err)
	}
	defer ctl.Close()

	found := false
	for i := 0; i < ctl.NumElems(); i++ {
		elem, err := ctl.ElemByIndex(uint(i))
		require.NoError(t, err)

		if !elem.TlvReadable() {
			continue
		}
		found = true

		raw, err := elem.ReadTlvRaw()
		require.NoError(t, err, "element %s", elem.Name())
		require.GreaterOrEqual(t, len(raw), 2, "element %s", elem.Name())

		item, err := elem.ReadTlv()
		require.NoError(t, err, "element %s", elem.Name())
		assert.Equal(t, raw, item.Encode(),
			"element %s: re-encoding the decoded metadata should reproduce the raw words", elem.Name())

		if elem.Type() == alsatlv.SNDRV_CTL_ELEM_TYPE_INTEGER {
			vr, err := elem.ValueRange()
			require.NoError(t, err)

			if interval, err := alsatlv.ItemDbInterval(item, vr); err == nil {
				db, err := alsatlv.ItemValToDb(item, vr.Max, vr)
				require.NoError(t, err)
				assert.LessOrEqual(t, db, float64(interval.Max)/alsatlv.DB_VALUE_MULTIPLIER+0.01,
					"element %s: no raw value should map above the interval maximum", elem.Name())
				assert.GreaterOrEqual(t, db, float64(interval.Min)/alsatlv.DB_VALUE_MULTIPLIER-0.01,
					"element %s: no raw value should map below the interval minimum", elem.Name())
			}
		}
	}

	if !found {
		t.Skip("Skipping test, card has no element with readable TLV metadata")
	}
}
