package pool

import "sync"

// WorkspaceMaxThreshold bounds the workspaces kept for reuse. The largest built-in
// variant needs 66048 bytes; anything far beyond that came from an external service
// and is not worth retaining.
const WorkspaceMaxThreshold = 1024 * 1024 // 1MiB

var workspacePool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetWorkspace retrieves a decompression workspace of exactly size bytes.
//
// The returned slice is owned by the caller until the cleanup function is called and
// must not be handed to two concurrent decompress calls. Its contents are unspecified;
// decoders initialize whatever part of it they read.
//
// Example:
//
//	workspace, cleanup := pool.GetWorkspace(size)
//	defer cleanup()
//	n, err := svc.Decompress(alg, dst, payload, workspace)
func GetWorkspace(size int) ([]byte, func()) {
	ptr, _ := workspacePool.Get().(*[]byte)
	if cap(*ptr) < size {
		*ptr = make([]byte, size)
	}
	*ptr = (*ptr)[:size]

	return *ptr, func() {
		if cap(*ptr) > WorkspaceMaxThreshold {
			return
		}
		workspacePool.Put(ptr)
	}
}
