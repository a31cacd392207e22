package pubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/escrow-network/escrowd/internal/infrastructure/pubsub"
)

func TestSubscribeAndList(t *testing.T) {
	t.Parallel()

	svc := pubsub.NewService()

	id, err := svc.Subscribe("deal_created", "http://localhost:8080/hook", "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	anyID, err := svc.Subscribe("*", "http://localhost:8080/any", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, anyID)

	subs := svc.ListSubscriptionsForTopic("deal_created")
	require.Len(t, subs, 2)

	subs = svc.ListSubscriptionsForTopic("deal_refund_issued")
	require.Len(t, subs, 1)
	require.Equal(t, anyID, subs[0].Id())
	require.True(t, subs[0].IsSecured())

	err = svc.Unsubscribe("deal_created", id)
	require.NoError(t, err)
	require.Len(t, svc.ListSubscriptionsForTopic("deal_created"), 1)
}

func TestFailingSubscribe(t *testing.T) {
	t.Parallel()

	svc := pubsub.NewService()

	_, err := svc.Subscribe("unknown_topic", "http://localhost:8080/hook", "")
	require.Error(t, err)

	_, err = svc.Subscribe("deal_created", "not a url", "")
	require.Error(t, err)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	var locker sync.Mutex
	received := make([]string, 0)
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			buf, _ := io.ReadAll(r.Body)
			locker.Lock()
			received = append(received, string(buf))
			locker.Unlock()
			w.WriteHeader(http.StatusOK)
		},
	))
	defer server.Close()

	svc := pubsub.NewService()
	_, err := svc.Subscribe("deal_created", server.URL, "")
	require.NoError(t, err)

	message := `{"deal_id":1}`
	err = svc.Publish("deal_created", message)
	require.NoError(t, err)

	locker.Lock()
	defer locker.Unlock()
	require.Len(t, received, 1)
	require.True(t, strings.Contains(received[0], `"deal_id":1`))
}

func TestTopics(t *testing.T) {
	t.Parallel()

	svc := pubsub.NewService()

	byCode := svc.TopicsByCode()
	byLabel := svc.TopicsByLabel()
	require.Len(t, byCode, 7)
	require.Len(t, byLabel, 7)

	for _, topic := range byCode {
		require.Equal(t, topic, byLabel[topic.Label()])
	}
}
