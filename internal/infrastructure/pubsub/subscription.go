package pubsub

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

type Subscription struct {
	ID       string `json:"id"`
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

type subscriptions []*Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	subs := make([]ports.Subscription, 0, len(s))
	for i := range s {
		subs = append(subs, s[i])
	}
	return subs
}

func NewSubscription(event, endpoint, secret string) (*Subscription, error) {
	if !isValidTopic(event) {
		return nil, fmt.Errorf("unknown topic %s", event)
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid webhook endpoint, must be a valid URI")
	}
	id := uuid.New().String()
	return &Subscription{id, event, endpoint, secret}, nil
}

func (h *Subscription) Topic() string {
	return h.Event
}

func (h *Subscription) Id() string {
	return h.ID
}

func (h *Subscription) NotifyAt() string {
	return h.Endpoint
}

func (h *Subscription) IsSecured() bool {
	return len(h.Secret) > 0
}
