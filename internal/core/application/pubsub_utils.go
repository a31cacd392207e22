package application

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

// All notifications are fire-and-forget: a publish failure is logged and
// never fails the operation that raised it.

func publishDealCreatedTopic(
	pubsub ports.SecurePubSub, dealId uint64, buyer, seller string, amount uint64,
) {
	payload := map[string]interface{}{
		"deal_id": dealId,
		"buyer":   buyer,
		"seller":  seller,
		"amount":  amount,
	}
	publishTopic(pubsub, DealCreated, payload)
}

func publishDealPaymentCompletedTopic(
	pubsub ports.SecurePubSub, dealId, payoutAmount uint64, seller string,
) {
	payload := map[string]interface{}{
		"deal_id":       dealId,
		"payout_amount": payoutAmount,
		"seller":        seller,
	}
	publishTopic(pubsub, DealPaymentCompleted, payload)
}

func publishBuyerRefundApprovedTopic(
	pubsub ports.SecurePubSub, dealId, amount uint64,
) {
	payload := map[string]interface{}{
		"deal_id": dealId,
		"amount":  amount,
	}
	publishTopic(pubsub, BuyerRefundApproved, payload)
}

func publishSellerRefundApprovedTopic(
	pubsub ports.SecurePubSub, dealId, amount uint64,
) {
	payload := map[string]interface{}{
		"deal_id": dealId,
		"amount":  amount,
	}
	publishTopic(pubsub, SellerRefundApproved, payload)
}

func publishDealRefundIssuedTopic(
	pubsub ports.SecurePubSub, dealId, refundAmount uint64, recipient string,
) {
	payload := map[string]interface{}{
		"deal_id":       dealId,
		"refund_amount": refundAmount,
		"recipient":     recipient,
	}
	publishTopic(pubsub, DealRefundIssued, payload)
}

func publishArbitrationFeeWithdrawnTopic(
	pubsub ports.SecurePubSub, arbiter string, feeAmount uint64,
) {
	payload := map[string]interface{}{
		"arbiter":    arbiter,
		"fee_amount": feeAmount,
	}
	publishTopic(pubsub, ArbitrationFeeWithdrawn, payload)
}

func publishArbitrationFeeRateUpdatedTopic(
	pubsub ports.SecurePubSub, percentFee uint32,
) {
	payload := map[string]interface{}{
		"percent_fee": percentFee,
	}
	publishTopic(pubsub, ArbitrationFeeRateUpdated, payload)
}

func publishTopic(
	pubsub ports.SecurePubSub, topicCode int, payload map[string]interface{},
) {
	if pubsub == nil {
		return
	}

	topic, ok := pubsub.TopicsByCode()[topicCode]
	if !ok {
		return
	}

	message, _ := json.Marshal(payload)
	if err := pubsub.Publish(topic.Label(), string(message)); err != nil {
		log.WithError(err).Warnf(
			"an error occured while publishing message for topic %s",
			topic.Label(),
		)
	}
}
