package container

import (
	"sync"

	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/format"
)

// lznt1Scenario is a 10-byte LZNT1 stream expanding to lznt1Plaintext: five literals
// followed by a match of 11 bytes at offset 5.
var (
	lznt1Scenario  = []byte{0x07, 0xB0, 0x20, 0x61, 0x62, 0x63, 0x64, 0x65, 0x08, 0x40}
	lznt1Plaintext = []byte("abcdeabcdeabcdea")
)

// recorder is an Observer that remembers every callback.
type recorder struct {
	mu          sync.Mutex
	verifies    int
	transitions [][2]State
}

func (r *recorder) OnTransition(from, to State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, [2]State{from, to})
}

func (r *recorder) OnVerify() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verifies++
}

// stubService is a compress.Service double with overridable behavior.
type stubService struct {
	workspaceSize func(alg format.Algorithm) (int, error)
	decompress    func(alg format.Algorithm, dst, src, workspace []byte) (int, error)

	mu    sync.Mutex
	calls int
}

var _ compress.Service = (*stubService)(nil)

func (s *stubService) WorkspaceSize(alg format.Algorithm) (int, error) {
	if s.workspaceSize == nil {
		return 16, nil
	}

	return s.workspaceSize(alg)
}

func (s *stubService) Decompress(alg format.Algorithm, dst, src, workspace []byte) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.decompress == nil {
		return copy(dst, src), nil
	}

	return s.decompress(alg, dst, src, workspace)
}

func mustEncode(alg format.Algorithm, withChecksum bool, plaintext []byte, opts ...EncoderOption) []byte {
	opts = append(opts, WithChecksum(withChecksum))
	enc, err := NewEncoder(alg, opts...)
	if err != nil {
		panic(err)
	}

	data, err := enc.Encode(plaintext)
	if err != nil {
		panic(err)
	}

	return data
}

func prefetchLike() []byte {
	var b []byte
	b = append(b, 0x1E, 0x00, 0x00, 0x00, 'S', 'C', 'C', 'A')
	for i := 0; i < 400; i++ {
		b = append(b, []byte(`\VOLUME{01d2f3e4a5b6c7d8-9e8f7a6b}\WINDOWS\SYSTEM32\NTDLL.DLL`)...)
		b = append(b, byte(i), 0, 0, 0, 0, 0, 0, 0)
	}

	return b
}
