package domain

import "errors"

var (
	// ErrDealNotFound is thrown when the requested deal id was never assigned.
	ErrDealNotFound = errors.New("deal does not exist")
	// ErrInvalidDealStatus is thrown when attempting a transition on a deal
	// that already left the Pending status.
	ErrInvalidDealStatus = errors.New("deal is not in a valid status for this operation")
	// ErrRefundNotAllowed is thrown when granting or executing a refund is not
	// permitted by the deal's current refund status.
	ErrRefundNotAllowed = errors.New("refund is not allowed for the deal")
	// ErrRefundNotAuthorized is thrown when executing a refund that the
	// arbiter never approved.
	ErrRefundNotAuthorized = errors.New("no refund authorization granted for the deal")
	// ErrRefundRecipientMissing is thrown when the authorized refund recipient
	// resolves to a null address.
	ErrRefundRecipientMissing = errors.New("refund recipient address must not be null")
	// ErrNullSellerAddress ...
	ErrNullSellerAddress = errors.New("seller address must not be null")
	// ErrSelfDealingNotAllowed ...
	ErrSelfDealingNotAllowed = errors.New("buyer and seller addresses must not coincide")
	// ErrAssetNotSupported is thrown when the asset is not one of the two
	// assets configured at startup.
	ErrAssetNotSupported = errors.New("asset is not supported")
	// ErrFeeTooHigh is thrown when setting an arbitration fee rate above the
	// maximum allowed percentage.
	ErrFeeTooHigh = errors.New("fee percent must be in range [0, 10]")
	// ErrNoArbitrationFees is thrown when withdrawing fees for an asset with
	// an empty accumulator.
	ErrNoArbitrationFees = errors.New("no arbitration fees to withdraw")
)
