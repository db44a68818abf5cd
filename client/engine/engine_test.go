package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoadable struct {
	id       string
	prepErr  error
	block    chan struct{}
	ready    chan error
	prepared bool
}

func newFakeLoadable(id string) *fakeLoadable {
	return &fakeLoadable{id: id, ready: make(chan error, 1)}
}

func (f *fakeLoadable) ID() string {
	return f.id
}

func (f *fakeLoadable) Prepare() error {
	if f.block != nil {
		<-f.block
	}
	f.prepared = true
	return f.prepErr
}

func (f *fakeLoadable) MarkReady(err error) {
	f.ready <- err
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Options{
		Surface:     Surface{ID: "test", Width: 640, Height: 480},
		LoadingText: "Loading",
	})
	require.NoError(t, err)
	return e
}

func TestNew_InvalidSurface(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
	}{
		{"missing id", Surface{Width: 10, Height: 10}},
		{"zero width", Surface{ID: "x", Height: 10}},
		{"negative height", Surface{ID: "x", Width: 10, Height: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Options{Surface: tt.surface})
			assert.Error(t, err)
		})
	}
}

func TestEngine_RegisterUnregister(t *testing.T) {
	e := newTestEngine(t)
	defer e.Dispose()

	require.NoError(t, e.Register("b"))
	require.NoError(t, e.Register("a"))
	assert.Error(t, e.Register("a"))
	assert.Equal(t, []string{"a", "b"}, e.LiveScenes())

	e.Unregister("a")
	assert.Equal(t, []string{"b"}, e.LiveScenes())
}

func TestEngine_Load(t *testing.T) {
	e := newTestEngine(t)
	defer e.Dispose()

	ok := newFakeLoadable("ok")
	failing := newFakeLoadable("failing")
	failing.prepErr = errors.New("boom")

	require.NoError(t, e.Load(ok))
	require.NoError(t, e.Load(failing))

	select {
	case err := <-ok.ready:
		assert.NoError(t, err)
		assert.True(t, ok.prepared)
	case <-time.After(5 * time.Second):
		t.Fatal("scene was never prepared")
	}

	select {
	case err := <-failing.ready:
		assert.EqualError(t, err, "boom")
	case <-time.After(5 * time.Second):
		t.Fatal("scene was never prepared")
	}
}

func TestEngine_LoadingUI(t *testing.T) {
	e := newTestEngine(t)
	defer e.Dispose()

	assert.False(t, e.IsLoadingUIVisible())
	e.DisplayLoadingUI()
	assert.True(t, e.IsLoadingUIVisible())
	e.HideLoadingUI()
	assert.False(t, e.IsLoadingUIVisible())
}

func TestEngine_Resize(t *testing.T) {
	e := newTestEngine(t)
	defer e.Dispose()

	w, h := e.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	e.Resize(1280, 720)
	w, h = e.Size()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestEngine_Dispose(t *testing.T) {
	e := newTestEngine(t)

	// occupy the only loader so the second scene stays queued
	blocking := newFakeLoadable("blocking")
	blocking.block = make(chan struct{})
	queued := newFakeLoadable("queued")
	require.NoError(t, e.Load(blocking))
	require.NoError(t, e.Load(queued))

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(blocking.block)
	}()
	require.NoError(t, e.Dispose())

	assert.NoError(t, <-blocking.ready)
	select {
	case err := <-queued.ready:
		// the queued scene was either prepared before the loader stopped or failed on dispose
		if err != nil {
			assert.ErrorIs(t, err, ErrEngineDisposed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("queued scene was never released")
	}

	assert.ErrorIs(t, e.Dispose(), ErrEngineDisposed)
	assert.ErrorIs(t, e.Register("late"), ErrEngineDisposed)
	assert.ErrorIs(t, e.Load(newFakeLoadable("late")), ErrEngineDisposed)
}
