package pubsub

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

// service delivers the engine notifications to the registered webhook
// endpoints. Every message is POSTed as-is to each endpoint subscribed for
// the topic, with a signed bearer token when the subscription carries a
// secret.
type service struct {
	locker      sync.RWMutex
	subsByID    map[string]*Subscription
	subsByTopic map[string]subscriptions

	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook SecurePubSub with an empty subscription
// registry.
func NewService() ports.SecurePubSub {
	return &service{
		subsByID:    map[string]*Subscription{},
		subsByTopic: map[string]subscriptions{},
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		cb:          newCircuitBreaker(),
	}
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	ws.locker.Lock()
	defer ws.locker.Unlock()

	ws.subsByID[sub.ID] = sub
	ws.subsByTopic[sub.Event] = append(ws.subsByTopic[sub.Event], sub)
	return sub.ID, nil
}

func (ws *service) Unsubscribe(_, id string) error {
	ws.locker.Lock()
	defer ws.locker.Unlock()

	sub, ok := ws.subsByID[id]
	if !ok {
		return fmt.Errorf("subscription not found")
	}

	delete(ws.subsByID, id)

	subs := ws.subsByTopic[sub.Event]
	for i := range subs {
		if subs[i].ID == id {
			ws.subsByTopic[sub.Event] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	return nil
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	ws.locker.RLock()
	defer ws.locker.RUnlock()

	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	ws.locker.RLock()
	subs := ws.listSubscriptionsForTopic(topic)
	ws.locker.RUnlock()

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) TopicsByCode() map[int]ports.Topic {
	topics := make(map[int]ports.Topic, len(topicsByCode))
	for code, t := range topicsByCode {
		topics[code] = t
	}
	return topics
}

func (ws *service) TopicsByLabel() map[string]ports.Topic {
	topics := make(map[string]ports.Topic, len(topicsByLabel))
	for label, t := range topicsByLabel {
		topics[label] = t
	}
	return topics
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	subs := make(subscriptions, 0, len(ws.subsByTopic[topic]))
	subs = append(subs, ws.subsByTopic[topic]...)
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subs = append(subs, ws.subsByTopic[ports.AnyTopic]...)
	}
	return subs
}

func (ws *service) doRequest(sub *Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequest(
			http.MethodPost, sub.Endpoint, bytes.NewBufferString(payload),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		if sub.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			tokenString, _ := token.SignedString([]byte(sub.Secret))
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", tokenString))
		}

		resp, err := ws.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("endpoint answered with status %d", resp.StatusCode)
		}
		return nil, nil
	})

	return err
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "webhook",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests > 20 && failureRatio >= 0.7
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				log.Warn("webhook endpoints seem down, stop allowing requests")
			}
			if from == gobreaker.StateOpen && to == gobreaker.StateHalfOpen {
				log.Info("checking webhook endpoints status")
			}
			if from == gobreaker.StateHalfOpen && to == gobreaker.StateClosed {
				log.Info("webhook endpoints seem ok, restart allowing requests")
			}
		},
	})
}
