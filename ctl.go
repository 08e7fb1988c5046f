package alsatlv

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// ElemType defines the value type of a control element.
type ElemType int32

const (
	SNDRV_CTL_ELEM_TYPE_NONE       ElemType = 0
	SNDRV_CTL_ELEM_TYPE_BOOLEAN    ElemType = 1
	SNDRV_CTL_ELEM_TYPE_INTEGER    ElemType = 2
	SNDRV_CTL_ELEM_TYPE_ENUMERATED ElemType = 3
	SNDRV_CTL_ELEM_TYPE_BYTES      ElemType = 4
	SNDRV_CTL_ELEM_TYPE_IEC958     ElemType = 5
	SNDRV_CTL_ELEM_TYPE_INTEGER64  ElemType = 6
	SNDRV_CTL_ELEM_TYPE_UNKNOWN    ElemType = -1
)

// ElemAccessFlag defines the access permissions for a control element.
type ElemAccessFlag uint32

const (
	// If set, the element's value is readable.
	SNDRV_CTL_ELEM_ACCESS_READ ElemAccessFlag = 1 << 0
	// If set, the element's value is writable.
	SNDRV_CTL_ELEM_ACCESS_WRITE ElemAccessFlag = 1 << 1
	// If set, the element's TLV metadata can be read.
	SNDRV_CTL_ELEM_ACCESS_TLV_READ ElemAccessFlag = 1 << 4
	// If set, the element's TLV metadata can be written.
	SNDRV_CTL_ELEM_ACCESS_TLV_WRITE ElemAccessFlag = 1 << 5
	// If set, the element accepts driver-specific TLV commands.
	SNDRV_CTL_ELEM_ACCESS_TLV_COMMAND ElemAccessFlag = 1 << 6

	SNDRV_CTL_ELEM_ACCESS_TLV_READWRITE = SNDRV_CTL_ELEM_ACCESS_TLV_READ | SNDRV_CTL_ELEM_ACCESS_TLV_WRITE
)

// CtlEventMask defines the kind of change reported by a control-interface event.
type CtlEventMask uint32

const (
	SNDRV_CTL_EVENT_ELEM = 0

	// Indicates that a control element's value has changed.
	SNDRV_CTL_EVENT_MASK_VALUE CtlEventMask = 1 << 0
	// Indicates that a control element's metadata (e.g., range) has changed.
	SNDRV_CTL_EVENT_MASK_INFO CtlEventMask = 1 << 1
	// Indicates that a control element has been added.
	SNDRV_CTL_EVENT_MASK_ADD CtlEventMask = 1 << 2
	// Indicates that a control element's TLV metadata has changed.
	SNDRV_CTL_EVENT_MASK_TLV CtlEventMask = 1 << 3
	// Indicates that a control element has been removed.
	SNDRV_CTL_EVENT_MASK_REMOVE CtlEventMask = 0xffffffff
)

// CtlEvent represents a notification from the ALSA control interface.
type CtlEvent struct {
	Mask      CtlEventMask
	ControlID uint32 // The numid of the element that changed.
}

// maxTlvBytes is the buffer size offered to the kernel for a TLV read. The kernel rejects
// element TLV data larger than 128 KiB, and practical metadata stays far below this.
const maxTlvBytes = 128 * 1024

// Elem represents an individual control element handle.
type Elem struct {
	ctl  *Ctl
	info sndCtlElemInfo
}

// Ctl represents an open ALSA control device handle.
type Ctl struct {
	file     *os.File
	cardInfo sndCtlCardInfo
	Elems    []*Elem
	elemMap  map[string][]*Elem // Maps a name to one or more elements
	idMap    map[uint32]*Elem   // Maps a numid to its element for O(1) access
}

// CtlOpen opens the ALSA control device for a given sound card and enumerates its elements.
// Note: This implementation does not support the ALSA plugin architecture and will only open
// direct hardware control devices (e.g., /dev/snd/controlC0).
func CtlOpen(card uint) (*Ctl, error) {
	path := fmt.Sprintf("/dev/snd/controlC%d", card)

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open control device %s: %w", path, err)
	}

	ctl := &Ctl{
		file:    file,
		elemMap: make(map[string][]*Elem),
		idMap:   make(map[uint32]*Elem),
	}

	// Get card info
	if err := ioctl(ctl.file.Fd(), SNDRV_CTL_IOCTL_CARD_INFO, uintptr(unsafe.Pointer(&ctl.cardInfo))); err != nil {
		_ = ctl.Close()

		return nil, fmt.Errorf("ioctl CARD_INFO failed: %w", err)
	}

	if err := ctl.enumerateAllElems(); err != nil {
		_ = ctl.Close()

		return nil, fmt.Errorf("failed to enumerate elements: %w", err)
	}

	return ctl, nil
}

// Close closes the control device handle.
func (c *Ctl) Close() error {
	if c == nil || c.file == nil {
		return nil
	}

	err := c.file.Close()
	c.file = nil

	return err
}

// Name returns the name of the sound card.
func (c *Ctl) Name() string {
	if c == nil {
		return ""
	}

	return cString(c.cardInfo.Name[:])
}

// NumElems returns the total number of elements found on the control device.
func (c *Ctl) NumElems() int {
	if c == nil {
		return 0
	}

	return len(c.Elems)
}

// Elem returns a control element by its numeric ID.
func (c *Ctl) Elem(id uint32) (*Elem, error) {
	if c == nil {
		return nil, fmt.Errorf("ctl is nil")
	}

	elem, ok := c.idMap[id]
	if !ok {
		return nil, fmt.Errorf("element with id %d not found", id)
	}

	return elem, nil
}

// ElemByIndex returns a control element by its 0-based index in the enumerated list.
// The index is valid from 0 to NumElems() - 1.
func (c *Ctl) ElemByIndex(index uint) (*Elem, error) {
	if c == nil {
		return nil, fmt.Errorf("ctl is nil")
	}

	if index >= uint(c.NumElems()) {
		return nil, fmt.Errorf("index %d is out of bounds (number of elements: %d)", index, c.NumElems())
	}

	return c.Elems[index], nil
}

// ElemByName returns the first control element found with the given name.
func (c *Ctl) ElemByName(name string) (*Elem, error) {
	if c == nil {
		return nil, fmt.Errorf("ctl is nil")
	}

	return c.ElemByNameAndIndex(name, 0)
}

// ElemByNameAndIndex returns a specific control element handle by name and index.
func (c *Ctl) ElemByNameAndIndex(name string, index uint) (*Elem, error) {
	if c == nil {
		return nil, fmt.Errorf("ctl is nil")
	}

	elems, ok := c.elemMap[name]
	if !ok {
		return nil, fmt.Errorf("element not found: %s", name)
	}

	if index >= uint(len(elems)) {
		return nil, fmt.Errorf("index %d out of bounds for element %s", index, name)
	}

	return elems[index], nil
}

// AddNewElems scans for and adds any new elements that have appeared since the device was
// opened.
func (c *Ctl) AddNewElems() error {
	if c == nil {
		return fmt.Errorf("ctl is nil")
	}

	list := &sndCtlElemList{}
	if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_LIST, uintptr(unsafe.Pointer(list))); err != nil {
		return fmt.Errorf("ioctl ELEM_LIST (get count) failed: %w", err)
	}

	currentCount := uint32(len(c.Elems))
	kernelCount := list.Count

	if kernelCount <= currentCount {
		return nil // No new elements
	}

	numToAdd := kernelCount - currentCount
	ids := make([]sndCtlElemId, numToAdd)
	list.Space = numToAdd
	list.Offset = currentCount // Start enumerating from the first new element.
	list.Pids = uintptr(unsafe.Pointer(&ids[0]))

	if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_LIST, uintptr(unsafe.Pointer(list))); err != nil {
		return fmt.Errorf("ioctl ELEM_LIST (get new ids) failed: %w", err)
	}

	for i := uint32(0); i < list.Used; i++ {
		info := sndCtlElemInfo{}
		info.Id = ids[i]

		if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_INFO, uintptr(unsafe.Pointer(&info))); err != nil {
			continue
		}

		elem := &Elem{
			ctl:  c,
			info: info,
		}

		name := elem.Name()
		c.Elems = append(c.Elems, elem)
		c.elemMap[name] = append(c.elemMap[name], elem)
		c.idMap[elem.ID()] = elem
	}

	return nil
}

// SubscribeEvents enables or disables event generation for this control handle.
func (c *Ctl) SubscribeEvents(enable bool) error {
	if c == nil {
		return fmt.Errorf("ctl is nil")
	}

	var val int32
	if enable {
		val = 1
	}

	if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_SUBSCRIBE_EVENTS, uintptr(unsafe.Pointer(&val))); err != nil {
		return fmt.Errorf("ioctl SUBSCRIBE_EVENTS failed: %w", err)
	}

	return nil
}

// WaitEvent waits for a control event to occur.
// It returns true if an event is pending, false on timeout.
func (c *Ctl) WaitEvent(timeoutMs int) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("ctl is nil")
	}

	pfd := []unix.PollFd{
		{Fd: int32(c.file.Fd()), Events: unix.POLLIN},
	}

	n, err := unix.Poll(pfd, timeoutMs)
	if err != nil {
		return false, err
	}

	if n == 0 {
		return false, nil // Timeout
	}

	if (pfd[0].Revents & unix.POLLIN) != 0 {
		return true, nil
	}

	return false, fmt.Errorf("poll returned with unexpected revents: %d", pfd[0].Revents)
}

// ReadEvent reads a pending control event from the device.
func (c *Ctl) ReadEvent() (*CtlEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("ctl is nil")
	}

	var ev sndCtlEvent
	evSize := unsafe.Sizeof(ev)
	buffer := make([]byte, evSize)

	n, err := unix.Read(int(c.file.Fd()), buffer)
	if err != nil {
		return nil, err
	}

	if n < int(evSize) {
		return nil, fmt.Errorf("short read for event: got %d bytes, want %d", n, evSize)
	}

	ev = *(*sndCtlEvent)(unsafe.Pointer(&buffer[0]))

	// In ALSA, the `Typ` field identifies the event category. For control element changes
	// (the ones we care about), this type is SNDRV_CTL_EVENT_ELEM.
	if ev.Typ != SNDRV_CTL_EVENT_ELEM {
		return nil, fmt.Errorf("received non-element event type: %d", ev.Typ)
	}

	return &CtlEvent{
		Mask:      CtlEventMask(ev.Elem.Mask),
		ControlID: ev.Elem.Id.Numid,
	}, nil
}

// Fd returns the underlying file descriptor for the control device.
func (c *Ctl) Fd() uintptr {
	if c == nil {
		return ^uintptr(0) // Invalid FD
	}

	return c.file.Fd()
}

// enumerateAllElems gets the information for every element on the control device.
func (c *Ctl) enumerateAllElems() error {
	list := &sndCtlElemList{}

	// First call: get the count of elements
	if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_LIST, uintptr(unsafe.Pointer(list))); err != nil {
		return fmt.Errorf("ioctl ELEM_LIST (get count) failed: %w", err)
	}

	count := list.Count
	if count == 0 {
		return nil
	}

	c.Elems = make([]*Elem, 0, count)
	ids := make([]sndCtlElemId, count)

	// Second call: get the actual element IDs
	list.Space = count
	list.Pids = uintptr(unsafe.Pointer(&ids[0]))

	if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_LIST, uintptr(unsafe.Pointer(list))); err != nil {
		return fmt.Errorf("ioctl ELEM_LIST (get ids) failed: %w", err)
	}

	// Now enumerate each element by getting its detailed info
	for i := uint32(0); i < list.Used; i++ {
		info := sndCtlElemInfo{}
		info.Id = ids[i] // Copy the entire ID structure

		if err := ioctl(c.file.Fd(), SNDRV_CTL_IOCTL_ELEM_INFO, uintptr(unsafe.Pointer(&info))); err != nil {
			// Skip elements that we can't read info for
			continue
		}

		elem := &Elem{
			ctl:  c,
			info: info,
		}

		name := elem.Name()
		c.Elems = append(c.Elems, elem)
		c.elemMap[name] = append(c.elemMap[name], elem)
		c.idMap[elem.ID()] = elem
	}

	return nil
}

// Name returns the name of the control element.
func (e *Elem) Name() string {
	if e == nil {
		return ""
	}

	return cString(e.info.Id.Name[:])
}

// ID returns the numid of the control element.
func (e *Elem) ID() uint32 {
	if e == nil {
		return ^uint32(0)
	}

	return e.info.Id.Numid
}

// Device returns the device number of the control element.
func (e *Elem) Device() uint32 {
	if e == nil {
		return 0
	}

	return e.info.Id.Device
}

// Subdevice returns the subdevice number of the control element.
func (e *Elem) Subdevice() uint32 {
	if e == nil {
		return 0
	}

	return e.info.Id.Subdevice
}

// Index returns the index of the control element.
func (e *Elem) Index() uint32 {
	if e == nil {
		return 0
	}

	return e.info.Id.Index
}

// Type returns the value type of the control element.
func (e *Elem) Type() ElemType {
	if e == nil {
		return SNDRV_CTL_ELEM_TYPE_UNKNOWN
	}

	return ElemType(e.info.Typ)
}

// TypeString returns a human-readable name for the element's value type.
func (e *Elem) TypeString() string {
	switch e.Type() {
	case SNDRV_CTL_ELEM_TYPE_NONE:
		return "NONE"
	case SNDRV_CTL_ELEM_TYPE_BOOLEAN:
		return "BOOL"
	case SNDRV_CTL_ELEM_TYPE_INTEGER:
		return "INT"
	case SNDRV_CTL_ELEM_TYPE_ENUMERATED:
		return "ENUM"
	case SNDRV_CTL_ELEM_TYPE_BYTES:
		return "BYTES"
	case SNDRV_CTL_ELEM_TYPE_IEC958:
		return "IEC958"
	case SNDRV_CTL_ELEM_TYPE_INTEGER64:
		return "INT64"
	default:
		return "UNKNOWN"
	}
}

// NumValues returns the number of values held by the control element.
func (e *Elem) NumValues() uint32 {
	if e == nil {
		return 0
	}

	return e.info.Count
}

// Access returns the access flags of the control element.
func (e *Elem) Access() ElemAccessFlag {
	if e == nil {
		return 0
	}

	return ElemAccessFlag(e.info.Access)
}

// TlvReadable reports whether the element's TLV metadata can be read.
func (e *Elem) TlvReadable() bool {
	return e.Access()&SNDRV_CTL_ELEM_ACCESS_TLV_READ != 0
}

// TlvWritable reports whether the element's TLV metadata can be written.
func (e *Elem) TlvWritable() bool {
	return e.Access()&SNDRV_CTL_ELEM_ACCESS_TLV_WRITE != 0
}

// Update refreshes the cached metadata of the control element. Useful after an INFO or TLV
// event reported a change.
func (e *Elem) Update() error {
	if e == nil || e.ctl == nil {
		return fmt.Errorf("elem is nil")
	}

	if err := ioctl(e.ctl.file.Fd(), SNDRV_CTL_IOCTL_ELEM_INFO, uintptr(unsafe.Pointer(&e.info))); err != nil {
		return fmt.Errorf("ioctl ELEM_INFO failed: %w", err)
	}

	return nil
}

// ValueRange returns the raw value range of an integer control element, as needed to interpret
// its dB metadata.
func (e *Elem) ValueRange() (ValueRange, error) {
	if e == nil {
		return ValueRange{}, fmt.Errorf("elem is nil")
	}

	switch e.Type() {
	case SNDRV_CTL_ELEM_TYPE_INTEGER:
		v := (*integer)(unsafe.Pointer(&e.info.Value[0]))

		return ValueRange{Min: int32(v.Min), Max: int32(v.Max), Step: int32(v.Step)}, nil
	case SNDRV_CTL_ELEM_TYPE_INTEGER64:
		v := (*integer64)(unsafe.Pointer(&e.info.Value[0]))

		return ValueRange{Min: int32(v.Min), Max: int32(v.Max), Step: int32(v.Step)}, nil
	default:
		return ValueRange{}, fmt.Errorf("element %s is not an integer control", e.Name())
	}
}

// ReadTlvRaw reads the element's TLV metadata and returns its raw words, starting at the type
// field of the outermost record.
func (e *Elem) ReadTlvRaw() ([]uint32, error) {
	if e == nil || e.ctl == nil {
		return nil, fmt.Errorf("elem is nil")
	}

	if !e.TlvReadable() {
		return nil, fmt.Errorf("element %s has no readable TLV metadata", e.Name())
	}

	// Layout of sndCtlTlv: numid, length, then the TLV words.
	buf := make([]uint32, 2+maxTlvBytes/4)
	buf[0] = e.ID()
	buf[1] = maxTlvBytes

	if err := ioctl(e.ctl.file.Fd(), SNDRV_CTL_IOCTL_TLV_READ, uintptr(unsafe.Pointer(&buf[0]))); err != nil {
		return nil, fmt.Errorf("ioctl TLV_READ failed: %w", err)
	}

	tlv := buf[2:]
	length := 2 + int(tlv[1]/4)
	if length > len(tlv) {
		return nil, newDecodeError(1, len(tlv)-2, int(tlv[1]/4), ErrTruncatedData)
	}

	raw := make([]uint32, length)
	copy(raw, tlv[:length])

	return raw, nil
}

// ReadTlv reads and decodes the element's TLV metadata.
func (e *Elem) ReadTlv() (Item, error) {
	raw, err := e.ReadTlvRaw()
	if err != nil {
		return nil, err
	}

	return DecodeItem(raw)
}

// WriteTlvRaw writes raw TLV words as the element's metadata.
func (e *Elem) WriteTlvRaw(raw []uint32) error {
	if e == nil || e.ctl == nil {
		return fmt.Errorf("elem is nil")
	}

	if !e.TlvWritable() {
		return fmt.Errorf("element %s has no writable TLV metadata", e.Name())
	}

	if len(raw) < 2 {
		return newDecodeError(0, len(raw), 2, ErrInvalidLength)
	}

	buf := make([]uint32, 2+len(raw))
	buf[0] = e.ID()
	buf[1] = uint32(4 * len(raw))
	copy(buf[2:], raw)

	if err := ioctl(e.ctl.file.Fd(), SNDRV_CTL_IOCTL_TLV_WRITE, uintptr(unsafe.Pointer(&buf[0]))); err != nil {
		return fmt.Errorf("ioctl TLV_WRITE failed: %w", err)
	}

	return nil
}

// WriteTlv encodes an item and writes it as the element's metadata.
func (e *Elem) WriteTlv(item Item) error {
	if item == nil {
		return fmt.Errorf("item is nil")
	}

	return e.WriteTlvRaw(item.Encode())
}

// cString converts a C-style null-terminated byte array to a Go string.
func cString(b []byte) string {
	i := bytes.IndexByte(b, 0)
	if i == -1 {
		return string(b)
	}

	return string(b[:i])
}
