package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLittleEndianEngine(t *testing.T) {
	require := require.New(t)

	engine := GetLittleEndianEngine()
	require.True(IsLittleEndian(engine))

	// "MAM" signature with selector 4 and the checksum flag set.
	data := []byte{0x4D, 0x41, 0x4D, 0x84}
	require.Equal(uint32(0x844D414D), engine.Uint32(data))

	buf := engine.AppendUint32(nil, 0x0000_1000)
	require.Equal([]byte{0x00, 0x10, 0x00, 0x00}, buf)

	b := make([]byte, 2)
	engine.PutUint16(b, 0xB007)
	require.Equal([]byte{0x07, 0xB0}, b)
}
