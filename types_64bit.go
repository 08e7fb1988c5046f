//go:build linux && (amd64 || arm64)

package alsatlv

// clong is a type alias for the C `long` type on 64-bit systems.
type clong = int64

// sndCtlElemValue holds the value of a control element.
type sndCtlElemValue struct {
	Id sndCtlElemId
	_  [8]byte
	// The value union on 64-bit systems is 1024 bytes (long value[128] = 8*128 = 1024)
	Value    [1024]byte
	Reserved [128]byte
}
