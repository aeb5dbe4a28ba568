package collision

import (
	"testing"

	"github.com/arloliu/cindex/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
}

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("SIMPLE_TEXT_A_Z_SPACE", 0x1234567890abcdef))
	require.NoError(t, tracker.Track("PROGRAMMER_TEXT", 0xfedcba0987654321))

	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Equal(t, []string{"SIMPLE_TEXT_A_Z_SPACE", "PROGRAMMER_TEXT"}, tracker.Names())

	owner, ok := tracker.Owner(0xfedcba0987654321)
	require.True(t, ok)
	require.Equal(t, "PROGRAMMER_TEXT", owner)
}

func TestTracker_Track_EmptyName(t *testing.T) {
	tracker := NewTracker()

	err := tracker.Track("", 0x1)

	require.ErrorIs(t, err, errs.ErrInvalidInput)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("A", 0x1))
	err := tracker.Track("A", 0x1)

	require.ErrorIs(t, err, errs.ErrDuplicateAlphabet)
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Track_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("A", 0x1))
	require.NoError(t, tracker.Track("B", 0x1))

	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Count())

	owner, _ := tracker.Owner(0x1)
	require.Equal(t, "A", owner)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Track("A", 0x1))
	require.NoError(t, tracker.Track("B", 0x1))

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	_, ok := tracker.Owner(0x1)
	require.False(t, ok)
	require.NoError(t, tracker.Track("A", 0x1))
}
