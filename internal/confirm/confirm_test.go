package confirm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []PendingAction
	err error
}

func (r *recorder) Dispatch(a PendingAction) error {
	r.got = append(r.got, a)
	return r.err
}

func TestGate_ConfirmRunsOnce(t *testing.T) {
	r := &recorder{}
	g := NewGate(r)

	g.Request(PendingAction{Effect: DeleteNote, Target: "n1", Tone: ToneDanger})
	p, ok := g.Pending()
	require.True(t, ok)
	assert.Equal(t, "n1", p.Target)

	require.NoError(t, g.Confirm())
	require.Len(t, r.got, 1)
	assert.Equal(t, DeleteNote, r.got[0].Effect)

	_, ok = g.Pending()
	assert.False(t, ok)
	assert.ErrorIs(t, g.Confirm(), ErrNothingPending)
	assert.Len(t, r.got, 1)
}

func TestGate_RequestReplaces(t *testing.T) {
	r := &recorder{}
	g := NewGate(r)

	g.Request(PendingAction{Effect: DeleteTransaction, Target: "t1"})
	g.Request(PendingAction{Effect: ClearPIN})
	require.NoError(t, g.Confirm())

	require.Len(t, r.got, 1)
	assert.Equal(t, ClearPIN, r.got[0].Effect)
}

func TestGate_CancelRunsNothing(t *testing.T) {
	r := &recorder{}
	g := NewGate(r)

	g.Request(PendingAction{Effect: ResetAll})
	g.Cancel()
	assert.ErrorIs(t, g.Confirm(), ErrNothingPending)
	assert.Empty(t, r.got)
}

func TestGate_DispatchErrorClosesRequest(t *testing.T) {
	boom := errors.New("boom")
	g := NewGate(&recorder{err: boom})

	g.Request(PendingAction{Effect: ResetAll})
	err := g.Confirm()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reset-all")
	_, ok := g.Pending()
	assert.False(t, ok)
}
