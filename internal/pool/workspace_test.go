package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetWorkspace(t *testing.T) {
	t.Run("returns slice with requested size", func(t *testing.T) {
		ws, cleanup := GetWorkspace(66048)
		defer cleanup()

		require.Len(t, ws, 66048)
	})

	t.Run("zero size", func(t *testing.T) {
		ws, cleanup := GetWorkspace(0)
		defer cleanup()

		require.Empty(t, ws)
	})

	t.Run("grows when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetWorkspace(10)
		cleanup1()

		ws, cleanup2 := GetWorkspace(4096)
		defer cleanup2()

		require.Len(t, ws, 4096)
	})

	t.Run("outstanding workspaces do not alias", func(t *testing.T) {
		a, cleanupA := GetWorkspace(64)
		defer cleanupA()
		b, cleanupB := GetWorkspace(64)
		defer cleanupB()

		a[0], b[0] = 1, 2
		require.NotEqual(t, a[0], b[0])
	})

	t.Run("oversized workspace is not retained", func(t *testing.T) {
		ws, cleanup := GetWorkspace(WorkspaceMaxThreshold + 1)
		require.Len(t, ws, WorkspaceMaxThreshold+1)

		// Should not panic
		cleanup()
	})
}
