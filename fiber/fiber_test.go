package fiber

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn_BasicSendAndFinish(t *testing.T) {
	ch := make(chan int, 1)

	h, err := Spawn(func() {
		ch <- 1
	})
	require.NoError(t, err)

	require.NoError(t, h.Resume())

	assert.Equal(t, 1, <-ch)
	assert.Equal(t, Finished, h.State())
}

func TestYieldNow_Interleaving(t *testing.T) {
	ch := make(chan int, 2)

	h, err := Spawn(func() {
		ch <- 1
		Sched()
		ch <- 2
	})
	require.NoError(t, err)

	require.NoError(t, h.Resume())
	assert.Equal(t, 1, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("expected empty channel, got %d", v)
	default:
	}
	assert.Equal(t, Suspended, h.State())

	require.NoError(t, h.Resume())
	assert.Equal(t, 2, <-ch)
	assert.Equal(t, Finished, h.State())
}

func TestNestedSpawnJoin(t *testing.T) {
	var order []int

	outer, err := Spawn(func() {
		inner, err := Spawn(func() {
			order = append(order, 1)
		})
		require.NoError(t, err)
		require.NoError(t, inner.Join())
		order = append(order, 2)
	})
	require.NoError(t, err)

	require.NoError(t, outer.Join())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, Finished, outer.State())
}

func TestPanicPropagation(t *testing.T) {
	h, err := Spawn(func() {
		panic("boom")
	})
	require.NoError(t, err)

	joinErr := h.Join()
	require.Error(t, joinErr)

	var panicErr *PanicError
	require.ErrorAs(t, joinErr, &panicErr)
	assert.Contains(t, panicErr.Value, "boom")
	assert.Equal(t, Panicked, h.State())
}

func TestChildPanicIsolation(t *testing.T) {
	outer, err := Spawn(func() {
		inner, err := Spawn(func() {
			panic("child boom")
		})
		require.NoError(t, err)
		_ = inner.Join() // discarded, per spec scenario 5
	})
	require.NoError(t, err)

	require.NoError(t, outer.Join())
	assert.Equal(t, Finished, outer.State())
}

func TestResumeAfterFinished_Idempotent(t *testing.T) {
	h, err := Spawn(func() {})
	require.NoError(t, err)

	require.NoError(t, h.Resume())
	assert.Equal(t, Finished, h.State())
	require.NoError(t, h.Resume())
	assert.Equal(t, Finished, h.State())
}

func TestSelfResume(t *testing.T) {
	finished := false

	h, err := Spawn(func() {
		self := Current()
		require.NoError(t, self.Resume())
		finished = true
	})
	require.NoError(t, err)

	require.NoError(t, h.Resume())
	assert.True(t, finished)
	assert.Equal(t, Finished, h.State())
}

func TestSpawnOpts_NameAndStackSize(t *testing.T) {
	h, err := SpawnOpts(func() {}, []Option{WithName("worker"), WithStackSize(256 * 1024)})
	require.NoError(t, err)
	assert.Equal(t, "worker", h.Name())
	assert.Equal(t, "<worker>", h.String())
}

func TestSpawnOpts_RejectsInvalidStackSize(t *testing.T) {
	_, err := SpawnOpts(func() {}, []Option{WithStackSize(0)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestResume_NormalStateRejected(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})

	outer, err := Spawn(func() {
		inner, err := Spawn(func() {
			close(blocked)
			<-release
		})
		require.NoError(t, err)
		require.NoError(t, inner.Resume())
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = outer.Resume()
		close(done)
	}()

	<-blocked
	assert.Equal(t, Normal, outer.State())
	assert.ErrorIs(t, outer.Resume(), ErrResumeNormal)
	close(release)
	<-done
}

func TestResume_ForeignThreadRejected(t *testing.T) {
	h, err := Spawn(func() {
		Sched()
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- h.Resume()
	}()
	require.NoError(t, <-done)
	assert.Equal(t, Suspended, h.State())

	// h is now affine to the goroutine spawned above, not this one.
	assert.ErrorIs(t, h.Resume(), ErrForeignThread)
}

func TestPanicLine_MentionsNameOrUnnamed(t *testing.T) {
	h, err := Spawn(func() { panic("x") })
	require.NoError(t, err)
	_ = h.Join()
	assert.True(t, strings.Contains(h.String(), "unnamed") || h.Name() == "")
	// displayName is what the stderr panic line renders for the fiber.
	assert.Equal(t, "unnamed", h.displayName())
}
