package compress

import (
	"bytes"
	"math/rand/v2"
)

type sample struct {
	name string
	data []byte
}

// samples returns inputs covering the shapes prefetch payloads take: empty, tiny,
// long zero runs, repeated path strings and incompressible noise.
func samples() []sample {
	rng := rand.New(rand.NewPCG(1, 2))

	noise := make([]byte, 70_000)
	for i := range noise {
		noise[i] = byte(rng.Uint32())
	}

	var paths bytes.Buffer
	for i := 0; paths.Len() < 150_000; i++ {
		paths.WriteString(`\VOLUME{01d7a1b2c3d4e5f6-1a2b3c4d}\WINDOWS\SYSTEM32\`)
		paths.WriteByte(byte('A' + i%26))
		paths.WriteString(".DLL\x00")
	}

	mixed := make([]byte, 0, 200_000)
	mixed = append(mixed, noise[:5000]...)
	mixed = append(mixed, make([]byte, 100_000)...)
	mixed = append(mixed, paths.Bytes()[:20_000]...)
	mixed = append(mixed, noise[5000:9000]...)

	return []sample{
		{"empty", []byte{}},
		{"single byte", []byte{'x'}},
		{"short text", []byte("abcabcabc")},
		{"zeros", make([]byte, 100_000)},
		{"one block", bytes.Repeat([]byte("SCCA"), xhBlockSize/4)},
		{"two blocks", bytes.Repeat([]byte{0x11, 0x22, 0x33}, 2*xhBlockSize/3+1)[:2*xhBlockSize]},
		{"paths", paths.Bytes()},
		{"noise", noise},
		{"mixed", mixed},
	}
}
