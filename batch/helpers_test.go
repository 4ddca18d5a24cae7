package batch

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam/container"
	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/format"
)

// prefetch returns a buffer shaped like an uncompressed prefetch file.
func prefetch(name string, n int) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0x1E, 0, 0, 0, 'S', 'C', 'C', 'A'})
	for buf.Len() < n {
		buf.WriteString(name)
		buf.WriteByte(0)
		buf.Write([]byte{byte(buf.Len()), 0, 0, 0})
	}

	return buf.Bytes()[:n]
}

func encode(t *testing.T, alg format.Algorithm, withChecksum bool, plain []byte) []byte {
	t.Helper()

	enc, err := container.NewEncoder(alg, container.WithChecksum(withChecksum))
	require.NoError(t, err)

	data, err := enc.Encode(plain)
	require.NoError(t, err)

	return data
}

// understated returns a checksum-free stored container whose header declares extra
// more bytes than the payload holds.
func understated(t *testing.T, plain []byte, extra uint32) []byte {
	t.Helper()

	data := encode(t, format.AlgorithmNone, false, plain)
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(data[4:], engine.Uint32(data[4:])+extra)

	return data
}

func writeFile(t *testing.T, path string, data []byte) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}
