package collision

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam/errs"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Targets())
}

func TestTracker_Claim_Success(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Claim("out/CMD.EXE-4A81B364.pf", "in/CMD.EXE-4A81B364.pf")
	require.NoError(t, err)
	require.Equal(t, 1, tracker.Count())

	err = tracker.Claim("out/NOTEPAD.EXE-D8414F97.pf", "in/NOTEPAD.EXE-D8414F97.pf")
	require.NoError(t, err)
	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{
		filepath.Clean("out/CMD.EXE-4A81B364.pf"),
		filepath.Clean("out/NOTEPAD.EXE-D8414F97.pf"),
	}, tracker.Targets())

	owner, ok := tracker.Owner("out/CMD.EXE-4A81B364.pf")
	require.True(t, ok)
	require.Equal(t, filepath.Clean("in/CMD.EXE-4A81B364.pf"), owner)
}

func TestTracker_Claim_EmptyTarget(t *testing.T) {
	tracker := NewTracker()

	require.Error(t, tracker.Claim("", "in/a.pf"))
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
}

func TestTracker_Claim_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Claim("out/A.pf", "in/x/A.pf"))

	err := tracker.Claim("out/A.pf", "in/y/A.pf")
	require.ErrorIs(t, err, errs.ErrOutputCollision)
	require.Contains(t, err.Error(), filepath.Clean("in/x/A.pf"))
	require.True(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Collisions())
	require.Equal(t, 1, tracker.Count(), "the first claim keeps the target")

	owner, _ := tracker.Owner("out/A.pf")
	require.Equal(t, filepath.Clean("in/x/A.pf"), owner)
}

func TestTracker_Claim_SameInputTwice(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Claim("out/A.pf", "in/A.pf"))
	require.NoError(t, tracker.Claim("out/./A.pf", "in/A.pf"))
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Concurrent(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = tracker.Claim(fmt.Sprintf("out/%d.pf", i%16), fmt.Sprintf("in/%d/%d.pf", i, i%16))
		}(i)
	}
	wg.Wait()

	require.Equal(t, 16, tracker.Count())
	require.Equal(t, 48, tracker.Collisions())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Claim("out/A.pf", "in/x/A.pf"))
	require.Error(t, tracker.Claim("out/A.pf", "in/y/A.pf"))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.NoError(t, tracker.Claim("out/A.pf", "in/y/A.pf"))
}
