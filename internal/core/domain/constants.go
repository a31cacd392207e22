package domain

// Deal status codes. Pending is the initial status, Completed and Refunded
// are terminal and mutually exclusive.
const (
	DealStatusCodePending = iota
	DealStatusCodeCompleted
	DealStatusCodeRefunded
)

// Refund status codes. An Allowed status is granted by the arbiter while the
// deal is still pending and is consumed exactly once by the matching
// Executed status.
const (
	RefundStatusCodeNoRefundAllowed = iota
	RefundStatusCodeRefundToBuyerAllowed
	RefundStatusCodeRefundToSellerAllowed
	RefundStatusCodeRefundToBuyerExecuted
	RefundStatusCodeRefundToSellerExecuted
)

// MaxPercentFee is the upper bound for the arbitration fee rate.
const MaxPercentFee = 10
