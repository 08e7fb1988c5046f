//go:build linux && (386 || arm)

package alsatlv

// clong is a type alias for the C `long` type on 32-bit systems.
type clong = int32

// sndCtlElemValue holds the value of a control element.
type sndCtlElemValue struct {
	Id sndCtlElemId
	// This represents the `unsigned int indirect:1;` field from the C struct.
	// On 32-bit architectures, the following `Value` union is only 4-byte aligned,
	// so no extra padding is needed after this 4-byte field.
	_ [4]byte
	// Represents a C union. The largest member on 32-bit is 'long long Value[64]' (512 bytes).
	Value    [512]byte
	Reserved [128]byte
}
