package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BasicSendAndFinish(t *testing.T) {
	ch := make(chan int, 1)

	h, err := Spawn(func() {
		ch <- 1
	})
	require.NoError(t, err)

	st := Run(h)
	assert.Equal(t, Finished, st.Kind)
	assert.Equal(t, 1, <-ch)
}

func TestRun_ThreeSignalHandshake(t *testing.T) {
	s0, p0 := New()
	s1, p1 := New()
	s2, p2 := New()

	h, err := Spawn(func() {
		p0.Pulse()
		require.NoError(t, Wait(s1))
		p2.Pulse()
	})
	require.NoError(t, err)

	assert.True(t, s0.IsPending())

	st := Run(h)
	assert.Equal(t, Pending, st.Kind)
	assert.False(t, s0.IsPending())

	assert.True(t, s2.IsPending())
	p1.Pulse()

	st = Run(h)
	assert.Equal(t, Finished, st.Kind)
	assert.False(t, s2.IsPending())
}

func TestRun_Panic(t *testing.T) {
	h, err := Spawn(func() {
		panic("fiber panic")
	})
	require.NoError(t, err)

	st := Run(h)
	assert.Equal(t, Panicked, st.Kind)
}

func TestRun_AfterFinished_Idempotent(t *testing.T) {
	h, err := Spawn(func() {})
	require.NoError(t, err)

	st := Run(h)
	assert.Equal(t, Finished, st.Kind)

	st = Run(h)
	assert.Equal(t, Finished, st.Kind)
}

func TestWait_DroppedSignalReturnsError(t *testing.T) {
	s, p := New()

	done := make(chan error, 1)
	h, err := Spawn(func() {
		done <- Wait(s)
	})
	require.NoError(t, err)

	Run(h) // enters Wait, parks pending

	p.Discard()

	Run(h)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSignalDropped)
	default:
		t.Fatal("fiber did not observe dropped signal")
	}
}
