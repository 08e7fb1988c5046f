package alsatlv

// sndCtlCardInfo contains general information about a sound card.
type sndCtlCardInfo struct {
	Card       int32
	Pad        int32
	Id         [16]byte
	Driver     [16]byte
	Name       [32]byte
	Longname   [80]byte
	Reserved_  [16]byte
	Mixername  [80]byte
	Components [128]byte
}

// sndCtlElemId identifies a single control element.
type sndCtlElemId struct {
	Numid     uint32
	Iface     int32 // snd_ctl_elem_iface_t
	Device    uint32
	Subdevice uint32
	Name      [44]byte
	Index     uint32
}

// sndCtlElemInfo contains metadata about a control element.
type sndCtlElemInfo struct {
	Id     sndCtlElemId
	Typ    int32 // snd_ctl_elem_type_t
	Access uint32
	Count  uint32
	Owner  int32
	// This represents the C union, sized to the largest member.
	// The largest member is `unsigned char reserved[128]` for TLV.
	Value [128]byte
	// Reserved field size to match modern kernel expectations
	Reserved [64]byte
}

// sndCtlElemList is used to enumerate control elements.
type sndCtlElemList struct {
	Offset   uint32
	Space    uint32
	Used     uint32
	Count    uint32
	Pids     uintptr // *sndCtlElemId
	Reserved [50]byte
}

// sndCtlEvent represents a notification from the control interface.
type sndCtlEvent struct {
	Typ  int32
	Elem sndCtlEventElement
}

// sndCtlEventElement mirrors the C union member for element-related events.
type sndCtlEventElement struct {
	Mask uint32
	Id   sndCtlElemId
}

// integer mirrors the `integer` member of the `snd_ctl_elem_info.value` union: the minimum,
// maximum and step of an integer control element.
type integer struct {
	Min  clong
	Max  clong
	Step clong
}

// integer64 mirrors the `integer64` member of the `snd_ctl_elem_info.value` union.
type integer64 struct {
	Min  int64
	Max  int64
	Step int64
}

// sndCtlTlv represents the header for a Type-Length-Value data structure.
// The variable-length data follows this header in memory.
type sndCtlTlv struct {
	Numid  uint32
	Length uint32
	Tlv    [0]uint32 // Variable data part
}
