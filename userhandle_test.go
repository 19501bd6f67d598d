package galois

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserContextCommitOrder(t *testing.T) {
	var u UserContext[int]
	var order []int
	u.RecordCommit(func() { order = append(order, 1) })
	u.RecordCommit(func() { order = append(order, 2) })
	u.RecordCommit(func() { order = append(order, 3) })
	u.commit()
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestUserContextRollbackIsReverseOrder(t *testing.T) {
	var u UserContext[int]
	var order []int
	u.RecordUndo(func() { order = append(order, 1) })
	u.RecordUndo(func() { order = append(order, 2) })
	u.RecordUndo(func() { order = append(order, 3) })
	u.rollback()
	require.Equal(t, []int{3, 2, 1}, order)
}

func TestUserContextResetClearsEverything(t *testing.T) {
	var u UserContext[int]
	u.Push(1)
	u.RecordUndo(func() {})
	u.RecordCommit(func() {})
	u.reset()
	require.Empty(t, u.PushBuffer())

	// commit/rollback after reset must be no-ops, not panics.
	u.commit()
	u.rollback()
}
