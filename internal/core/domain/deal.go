package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Deal is the data structure representing an escrow agreement between a
// buyer and a seller for a fixed amount of one asset. A deal is identified
// by a sequential id assigned by the repository; id 0 is reserved and means
// the deal does not exist.
type Deal struct {
	Id           uint64
	Asset        string
	Buyer        string
	Seller       string
	Amount       uint64
	Status       int
	RefundStatus int
	CreatedAt    int64
	ClosedAt     int64
}

// NewDeal returns a pending deal with no refund authorization after
// validating the provided parties.
func NewDeal(asset, buyer, seller string, amount uint64) (*Deal, error) {
	if len(seller) <= 0 {
		return nil, ErrNullSellerAddress
	}
	if buyer == seller {
		return nil, ErrSelfDealingNotAllowed
	}

	return &Deal{
		Asset:        asset,
		Buyer:        buyer,
		Seller:       seller,
		Amount:       amount,
		Status:       DealStatusCodePending,
		RefundStatus: RefundStatusCodeNoRefundAllowed,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// Complete brings the deal from the Pending to the Completed status. The
// Completed status is terminal, a completed deal can never be refunded.
func (d *Deal) Complete() error {
	if !d.IsPending() {
		return ErrInvalidDealStatus
	}

	d.Status = DealStatusCodeCompleted
	d.ClosedAt = time.Now().Unix()
	return nil
}

// AllowRefundForBuyer grants the buyer a one-time refund authorization.
// It requires the deal to be pending with no authorization granted yet.
func (d *Deal) AllowRefundForBuyer() error {
	if err := d.validateRefundGrant(); err != nil {
		return err
	}

	d.RefundStatus = RefundStatusCodeRefundToBuyerAllowed
	return nil
}

// AllowRefundForSeller grants the seller a one-time refund authorization.
// It requires the deal to be pending with no authorization granted yet.
func (d *Deal) AllowRefundForSeller() error {
	if err := d.validateRefundGrant(); err != nil {
		return err
	}

	d.RefundStatus = RefundStatusCodeRefundToSellerAllowed
	return nil
}

// RefundRecipient returns the address entitled to claim the refund per the
// current refund status. It does not mutate the deal, callers use it to
// issue the transfer before committing the refund with ExecuteRefund.
func (d *Deal) RefundRecipient() (string, error) {
	if !d.IsPending() {
		return "", ErrRefundNotAllowed
	}

	switch d.RefundStatus {
	case RefundStatusCodeRefundToBuyerAllowed:
		if len(d.Buyer) <= 0 {
			return "", ErrRefundRecipientMissing
		}
		return d.Buyer, nil
	case RefundStatusCodeRefundToSellerAllowed:
		if len(d.Seller) <= 0 {
			return "", ErrRefundRecipientMissing
		}
		return d.Seller, nil
	case RefundStatusCodeNoRefundAllowed:
		return "", ErrRefundNotAuthorized
	default:
		return "", ErrRefundNotAllowed
	}
}

// ExecuteRefund consumes the granted refund authorization by bringing the
// deal to the Refunded status and the refund status to the Executed value
// matching the granted one. Refunded is terminal.
func (d *Deal) ExecuteRefund() error {
	if !d.IsPending() {
		return ErrRefundNotAllowed
	}

	switch d.RefundStatus {
	case RefundStatusCodeRefundToBuyerAllowed:
		d.RefundStatus = RefundStatusCodeRefundToBuyerExecuted
	case RefundStatusCodeRefundToSellerAllowed:
		d.RefundStatus = RefundStatusCodeRefundToSellerExecuted
	case RefundStatusCodeNoRefundAllowed:
		return ErrRefundNotAuthorized
	default:
		return ErrRefundNotAllowed
	}

	d.Status = DealStatusCodeRefunded
	d.ClosedAt = time.Now().Unix()
	return nil
}

// FeeSplit splits the deal amount into the payout for the counterparty and
// the arbitration fee for the given rate. The fee is truncated toward zero,
// therefore payout+fee always equals the deal amount and small amounts can
// legitimately yield a zero fee.
func (d *Deal) FeeSplit(percentFee uint32) (payout, fee uint64) {
	amount := decimal.NewFromBigInt(new(big.Int).SetUint64(d.Amount), 0)
	feeDec := amount.
		Mul(decimal.NewFromInt(int64(percentFee))).
		Div(oneHundred).
		Truncate(0)

	fee = feeDec.BigInt().Uint64()
	payout = d.Amount - fee
	return
}

// IsPending returns whether the deal is in Pending status.
func (d *Deal) IsPending() bool {
	return d.Status == DealStatusCodePending
}

// IsCompleted returns whether the deal is in Completed status.
func (d *Deal) IsCompleted() bool {
	return d.Status == DealStatusCodeCompleted
}

// IsRefunded returns whether the deal is in Refunded status.
func (d *Deal) IsRefunded() bool {
	return d.Status == DealStatusCodeRefunded
}

func (d *Deal) validateRefundGrant() error {
	if !d.IsPending() {
		return ErrInvalidDealStatus
	}
	if d.RefundStatus != RefundStatusCodeNoRefundAllowed {
		return ErrRefundNotAllowed
	}
	return nil
}
