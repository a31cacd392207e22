package application

// Topics to be published
const (
	DealCreated = iota
	DealPaymentCompleted
	BuyerRefundApproved
	SellerRefundApproved
	DealRefundIssued
	ArbitrationFeeWithdrawn
	ArbitrationFeeRateUpdated
)

// db types
const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)
