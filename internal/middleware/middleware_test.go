package middleware

import (
	"fmt"
	"sync"
	"testing"

	"weathercat/internal/domain"
	"weathercat/internal/testutil"
	"weathercat/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func newTestContext(t *testing.T, userID int64, text string) tele.Context {
	t.Helper()
	bot, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)

	return bot.NewContext(tele.Update{
		Message: &tele.Message{
			Sender: &tele.User{ID: userID},
			Chat:   &tele.Chat{ID: userID},
			Text:   text,
		},
	})
}

func TestLogging_SetsRequestID(t *testing.T) {
	tests := []struct {
		name      string
		handleErr error
	}{
		{name: "success", handleErr: nil},
		{name: "unrecognized", handleErr: domain.ErrUnrecognizedInput},
		{name: "failure", handleErr: fmt.Errorf("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, 5, "hi")
			var seen interface{}

			h := Logging(testutil.NewTestLogger())(func(c tele.Context) error {
				seen = c.Get(RequestIDKey)
				return tt.handleErr
			})
			err := h(c)

			assert.Equal(t, tt.handleErr, err)
			id, ok := seen.(string)
			require.True(t, ok)
			assert.Len(t, id, 36)
		})
	}
}

func TestSerialize_RunsOnWorkerInOrder(t *testing.T) {
	pool := worker.NewSerial(4, 16, testutil.NewTestLogger())

	var mu sync.Mutex
	var got []string
	h := Serialize(pool, testutil.NewTestLogger())(func(c tele.Context) error {
		mu.Lock()
		got = append(got, c.Text())
		mu.Unlock()
		return nil
	})

	for i := 0; i < 20; i++ {
		require.NoError(t, h(newTestContext(t, 9, fmt.Sprintf("m%d", i))))
	}
	pool.Stop()

	require.Len(t, got, 20)
	for i, text := range got {
		assert.Equal(t, fmt.Sprintf("m%d", i), text)
	}
}

func TestSerialize_StoppedPool(t *testing.T) {
	pool := worker.NewSerial(1, 1, testutil.NewTestLogger())
	pool.Stop()

	called := false
	h := Serialize(pool, testutil.NewTestLogger())(func(c tele.Context) error {
		called = true
		return nil
	})

	assert.NoError(t, h(newTestContext(t, 1, "x")))
	assert.False(t, called)
}
