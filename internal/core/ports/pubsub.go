package ports

const AnyTopic = "*"
const UnspecifiedTopic = ""

// Topic identifies a class of notifications published by the escrow engine.
type Topic interface {
	Code() int
	Label() string
}

// Subscription is the info of a client subscribed for a topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// SecurePubSub defines the methods of the notification service. All the
// notifications of the escrow engine are fire-and-forget, a failing delivery
// never fails the publishing operation.
type SecurePubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes some client defined by its id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed
	// for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients
	// subscribed for such topic will receive the message.
	Publish(topic string, message string) error
	// TopicsByCode returns all the topics supported by the service mapped by
	// their code.
	TopicsByCode() map[int]Topic
	// TopicsByLabel returns all the topics supported by the service mapped
	// by their label.
	TopicsByLabel() map[string]Topic
}
