package pubsub

import (
	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// topic binds one of the application topic codes to its wire label.
type topic struct {
	code  int
	label string
}

func (t topic) Code() int     { return t.code }
func (t topic) Label() string { return t.label }

var topicsByCode = map[int]topic{
	application.DealCreated: {
		application.DealCreated, "deal_created",
	},
	application.DealPaymentCompleted: {
		application.DealPaymentCompleted, "deal_payment_completed",
	},
	application.BuyerRefundApproved: {
		application.BuyerRefundApproved, "buyer_refund_approved",
	},
	application.SellerRefundApproved: {
		application.SellerRefundApproved, "seller_refund_approved",
	},
	application.DealRefundIssued: {
		application.DealRefundIssued, "deal_refund_issued",
	},
	application.ArbitrationFeeWithdrawn: {
		application.ArbitrationFeeWithdrawn, "arbitration_fee_withdrawn",
	},
	application.ArbitrationFeeRateUpdated: {
		application.ArbitrationFeeRateUpdated, "arbitration_fee_rate_updated",
	},
}

var topicsByLabel = func() map[string]topic {
	topics := make(map[string]topic, len(topicsByCode))
	for _, t := range topicsByCode {
		topics[t.label] = t
	}
	return topics
}()

func isValidTopic(label string) bool {
	if label == ports.AnyTopic {
		return true
	}
	_, ok := topicsByLabel[label]
	return ok
}
