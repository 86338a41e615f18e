package chat

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
	closed bool
}

func (f *fakeChannel) Enqueue(frame []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeChannel) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeChannel) received() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	ch := &fakeChannel{}

	reg.Register(ch)
	reg.Register(ch)
	assert.Equal(t, 1, reg.Count())

	reg.Unregister(ch)
	reg.Unregister(ch)
	assert.Equal(t, 0, reg.Count())

	reg.Unregister(&fakeChannel{})
	assert.Equal(t, 0, reg.Count())
}

func TestRegistryBroadcastDropsFailedChannels(t *testing.T) {
	reg := NewRegistry()
	a, b, c := &fakeChannel{}, &fakeChannel{fail: true}, &fakeChannel{}
	reg.Register(a)
	reg.Register(b)
	reg.Register(c)

	require.NoError(t, reg.Broadcast(map[string]string{"type": "message"}))

	assert.Equal(t, 1, a.received())
	assert.Equal(t, 1, c.received())
	assert.True(t, b.closed)
	assert.Equal(t, 2, reg.Count())

	require.NoError(t, reg.Broadcast(map[string]string{"type": "message"}))
	assert.Equal(t, 2, a.received())
	assert.Equal(t, 2, c.received())
}

func TestRegistryBroadcastEmpty(t *testing.T) {
	reg := NewRegistry()
	assert.NoError(t, reg.Broadcast(MessageEvent{Type: TypeMessage}))
}

func TestRegistryBroadcastMarshalError(t *testing.T) {
	reg := NewRegistry()
	ch := &fakeChannel{}
	reg.Register(ch)

	assert.Error(t, reg.Broadcast(make(chan int)))
	assert.Zero(t, ch.received())
	assert.Equal(t, 1, reg.Count())
}

func TestRegistryConcurrentUse(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := &fakeChannel{}
			reg.Register(ch)
			_ = reg.Broadcast(MessageEvent{Type: TypeMessage})
			reg.Unregister(ch)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, reg.Count())
}

func TestRegistryShutdown(t *testing.T) {
	reg := NewRegistry()
	a, b := &fakeChannel{}, &fakeChannel{}
	reg.Register(a)
	reg.Register(b)

	reg.Shutdown()

	assert.Equal(t, 0, reg.Count())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestClientEnqueue(t *testing.T) {
	c := &Client{send: make(chan []byte, 2)}

	require.NoError(t, c.Enqueue([]byte("1")))
	require.NoError(t, c.Enqueue([]byte("2")))
	assert.ErrorIs(t, c.Enqueue([]byte("3")), ErrSendQueueFull)

	c.Close()
	c.Close()
	assert.ErrorIs(t, c.Enqueue([]byte("4")), ErrChannelClosed)
}
