package application

import "github.com/escrow-network/escrowd/internal/core/domain"

// Config groups the construction-time parameters of the escrow service.
// They are fixed at startup and never change for the whole lifetime of the
// engine.
type Config struct {
	// ArbiterAddress is the identity allowed to approve refunds, change the
	// fee rate and withdraw the accumulated fees.
	ArbiterAddress string
	// BaseAsset and QuoteAsset are the only two assets deals can be
	// denominated in.
	BaseAsset  string
	QuoteAsset string
}

func (c Config) validate() error {
	if len(c.ArbiterAddress) <= 0 {
		return ErrNullArbiterAddress
	}
	if len(c.BaseAsset) <= 0 || len(c.QuoteAsset) <= 0 ||
		c.BaseAsset == c.QuoteAsset {
		return ErrInvalidAssetPair
	}
	return nil
}

// DealInfo is the read-only projection of a deal returned to clients.
type DealInfo struct {
	DealId       uint64
	Asset        string
	Buyer        string
	Seller       string
	Amount       uint64
	Status       string
	RefundStatus string
	CreatedAt    int64
	ClosedAt     int64
}

var dealStatusLabels = map[int]string{
	domain.DealStatusCodePending:   "pending",
	domain.DealStatusCodeCompleted: "completed",
	domain.DealStatusCodeRefunded:  "refunded",
}

var refundStatusLabels = map[int]string{
	domain.RefundStatusCodeNoRefundAllowed:        "no_refund_allowed",
	domain.RefundStatusCodeRefundToBuyerAllowed:   "refund_to_buyer_allowed",
	domain.RefundStatusCodeRefundToSellerAllowed:  "refund_to_seller_allowed",
	domain.RefundStatusCodeRefundToBuyerExecuted:  "refund_to_buyer_executed",
	domain.RefundStatusCodeRefundToSellerExecuted: "refund_to_seller_executed",
}

func dealInfoFromDeal(deal *domain.Deal) DealInfo {
	return DealInfo{
		DealId:       deal.Id,
		Asset:        deal.Asset,
		Buyer:        deal.Buyer,
		Seller:       deal.Seller,
		Amount:       deal.Amount,
		Status:       dealStatusLabels[deal.Status],
		RefundStatus: refundStatusLabels[deal.RefundStatus],
		CreatedAt:    deal.CreatedAt,
		ClosedAt:     deal.ClosedAt,
	}
}
