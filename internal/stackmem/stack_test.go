package stackmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_GuardPageBelowUsableRange(t *testing.T) {
	s := New(64 * 1024)
	defer s.Release()

	assert.Equal(t, s.Guard(), s.Low()-uintptr(pageSize))
	assert.Greater(t, s.High(), s.Low())
	assert.GreaterOrEqual(t, s.Size(), 64*1024)
}

func TestNew_EnforcesMinSizeFloor(t *testing.T) {
	s := New(1)
	defer s.Release()
	assert.GreaterOrEqual(t, s.Size(), MinSize)
}

func TestPool_TakeGiveRoundTrip(t *testing.T) {
	p := NewPool()
	s := p.Take(64 * 1024)
	require.NotNil(t, s)
	assert.Equal(t, 0, p.Len())

	s.Release()
	assert.Equal(t, 1, p.Len())

	s2 := p.Take(32 * 1024)
	assert.Equal(t, 0, p.Len())
	s2.Release()
}

func TestPool_NeverExceedsCap(t *testing.T) {
	p := NewPool()
	for i := 0; i < poolCap+10; i++ {
		s := New(MinSize)
		s.pool = p
		p.give(s)
	}
	assert.LessOrEqual(t, p.Len(), poolCap)
}
