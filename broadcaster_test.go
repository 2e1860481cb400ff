package tmpchat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcasterFansOutToAllRegisteredSockets(t *testing.T) {
	registry := NewRegistry()
	s1, s2, s3 := &fakeSocket{}, &fakeSocket{}, &fakeSocket{}
	require.True(t, registry.TryBind(s1, "a"))
	require.True(t, registry.TryBind(s2, "b"))
	require.True(t, registry.TryBind(s3, "c"))

	queue := make(chan []byte, 4)
	bc := NewBroadcaster(queue, registry, nopLogger{})

	done := make(chan struct{})
	go func() {
		bc.Run()
		close(done)
	}()

	msg := MustBuild(KindChatMssg, "a", "hi everyone").Encode()
	queue <- []byte(msg)

	assert.Eventually(t, func() bool {
		return len(s1.writes) == 1 && len(s2.writes) == 1 && len(s3.writes) == 1
	}, time.Second, time.Millisecond)

	assert.Equal(t, []byte(msg), s1.writes[0])
	assert.Equal(t, []byte(msg), s2.writes[0])
	assert.Equal(t, []byte(msg), s3.writes[0])

	close(queue)
	<-done
}

func TestBroadcasterPreservesOrder(t *testing.T) {
	registry := NewRegistry()
	s := &fakeSocket{}
	require.True(t, registry.TryBind(s, "solo"))

	queue := make(chan []byte, 8)
	bc := NewBroadcaster(queue, registry, nopLogger{})

	go bc.Run()

	for i := 0; i < 5; i++ {
		body := string(rune('a' + i))
		queue <- []byte(MustBuild(KindChatMssg, "solo", body).Encode())
	}

	assert.Eventually(t, func() bool { return len(s.writes) == 5 }, time.Second, time.Millisecond)

	for i := 0; i < 5; i++ {
		f, err := Parse(string(s.writes[i]), Client)
		require.NoError(t, err)
		assert.Equal(t, string(rune('a'+i)), f.Body)
	}

	close(queue)
}
