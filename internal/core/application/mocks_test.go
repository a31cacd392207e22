package application_test

import (
	"context"
	"sync"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

// **** PubSub ****

// mockPubSub records every published message so tests can assert on the
// notification flow without doing any real delivery.
type mockPubSub struct {
	locker    sync.Mutex
	published map[string][]string
}

type mockTopic struct {
	code  int
	label string
}

func (t mockTopic) Code() int     { return t.code }
func (t mockTopic) Label() string { return t.label }

var mockTopics = map[int]mockTopic{
	0: {0, "deal_created"},
	1: {1, "deal_payment_completed"},
	2: {2, "buyer_refund_approved"},
	3: {3, "seller_refund_approved"},
	4: {4, "deal_refund_issued"},
	5: {5, "arbitration_fee_withdrawn"},
	6: {6, "arbitration_fee_rate_updated"},
}

func newMockPubSub() *mockPubSub {
	return &mockPubSub{published: map[string][]string{}}
}

func (m *mockPubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	return "", nil
}

func (m *mockPubSub) Unsubscribe(topic, id string) error { return nil }

func (m *mockPubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return nil
}

func (m *mockPubSub) Publish(topic string, message string) error {
	m.locker.Lock()
	defer m.locker.Unlock()

	m.published[topic] = append(m.published[topic], message)
	return nil
}

func (m *mockPubSub) TopicsByCode() map[int]ports.Topic {
	topics := make(map[int]ports.Topic, len(mockTopics))
	for code, topic := range mockTopics {
		topics[code] = topic
	}
	return topics
}

func (m *mockPubSub) TopicsByLabel() map[string]ports.Topic {
	topics := make(map[string]ports.Topic, len(mockTopics))
	for _, topic := range mockTopics {
		topics[topic.label] = topic
	}
	return topics
}

func (m *mockPubSub) publishedForTopic(topic string) []string {
	m.locker.Lock()
	defer m.locker.Unlock()

	return m.published[topic]
}

// **** Wallet ****

// reentrantWallet wraps a Wallet and invokes the configured hook during
// TransferOut, simulating a recipient taking back control while the
// transfer is in flight.
type reentrantWallet struct {
	ports.Wallet
	onTransferOut func()
}

func (w *reentrantWallet) TransferOut(
	ctx context.Context, asset, to string, amount uint64,
) error {
	if w.onTransferOut != nil {
		w.onTransferOut()
	}
	return w.Wallet.TransferOut(ctx, asset, to, amount)
}
