package application

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// EscrowService is the deal state machine. It validates the caller identity
// and the deal state, orders the external transfers against the local state
// mutations and keeps the arbitration fee ledger up to date.
type EscrowService interface {
	CreateDeal(
		ctx context.Context, caller, asset, seller string, amount uint64,
	) (uint64, error)
	CompleteDeal(ctx context.Context, caller string, dealId uint64) error
	ApproveRefundForBuyer(ctx context.Context, caller string, dealId uint64) error
	ApproveRefundForSeller(ctx context.Context, caller string, dealId uint64) error
	RefundDeal(ctx context.Context, caller string, dealId uint64) error
	WithdrawArbiterFees(
		ctx context.Context, caller, asset string,
	) (uint64, error)
	UpdateArbitrationFeePercent(
		ctx context.Context, caller string, percentFee uint32,
	) error
	GetDealStatus(ctx context.Context, dealId uint64) (string, error)
	GetRefundStatus(ctx context.Context, dealId uint64) (string, error)
	GetArbitrationFeePercent(ctx context.Context) (uint32, error)
	GetArbitrationFeeBalance(ctx context.Context, asset string) (uint64, error)
	ListDeals(ctx context.Context) ([]DealInfo, error)
	ListDealsForParty(ctx context.Context, address string) ([]DealInfo, error)
}

type escrowService struct {
	arbiterAddress string
	baseAsset      string
	quoteAsset     string
	repoManager    ports.RepoManager
	wallet         ports.Wallet
	pubsub         ports.SecurePubSub

	// guard serializes the transfer-issuing operations against re-entrant
	// calls. It is never held across operations, only across the single
	// in-flight one.
	guard sync.Mutex
}

// NewEscrowService returns an EscrowService backed by the given repositories,
// wallet and optional pubsub service.
func NewEscrowService(
	config Config,
	repoManager ports.RepoManager,
	wallet ports.Wallet,
	pubsub ports.SecurePubSub,
) (EscrowService, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &escrowService{
		arbiterAddress: config.ArbiterAddress,
		baseAsset:      config.BaseAsset,
		quoteAsset:     config.QuoteAsset,
		repoManager:    repoManager,
		wallet:         wallet,
		pubsub:         pubsub,
	}, nil
}

// CreateDeal locks the given amount of asset into custody and stores a new
// pending deal between the caller and the seller.
func (s *escrowService) CreateDeal(
	ctx context.Context, caller, asset, seller string, amount uint64,
) (uint64, error) {
	if err := s.validateAsset(asset); err != nil {
		return 0, err
	}

	deal, err := domain.NewDeal(asset, caller, seller, amount)
	if err != nil {
		return 0, err
	}

	if err := s.wallet.TransferIn(ctx, asset, caller, amount); err != nil {
		return 0, err
	}

	dealId, err := s.repoManager.DealRepository().AddDeal(ctx, deal)
	if err != nil {
		return 0, err
	}

	log.Infof("deal %d created for %d of asset %s", dealId, amount, asset)
	publishDealCreatedTopic(s.pubsub, dealId, deal.Buyer, deal.Seller, amount)

	return dealId, nil
}

// CompleteDeal pays the seller out of the escrowed amount, net of the
// arbitration fee in effect at execution time. Only the buyer of a pending
// deal can complete it.
func (s *escrowService) CompleteDeal(
	ctx context.Context, caller string, dealId uint64,
) error {
	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return err
	}
	if err := s.requireBuyer(caller, deal); err != nil {
		return err
	}

	if !s.guard.TryLock() {
		return ErrServiceUnavailable
	}
	defer s.guard.Unlock()

	if !deal.IsPending() {
		return domain.ErrInvalidDealStatus
	}

	ledger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return err
	}
	payout, fee := deal.FeeSplit(ledger.PercentFee)

	// The transfer is issued before the local state mutation on purpose, the
	// guard is what protects the pending status from being consumed twice.
	if err := s.wallet.TransferOut(ctx, deal.Asset, deal.Seller, payout); err != nil {
		return err
	}

	if err := s.accrueFee(ctx, deal.Asset, fee); err != nil {
		return err
	}

	if err := s.repoManager.DealRepository().UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			if err := d.Complete(); err != nil {
				return nil, err
			}
			return d, nil
		},
	); err != nil {
		return err
	}

	log.Infof("deal %d completed, paid %d to seller %s", dealId, payout, deal.Seller)
	publishDealPaymentCompletedTopic(s.pubsub, dealId, payout, deal.Seller)

	return nil
}

// ApproveRefundForBuyer grants the buyer of a pending deal a one-time
// refund authorization. Arbiter-only.
func (s *escrowService) ApproveRefundForBuyer(
	ctx context.Context, caller string, dealId uint64,
) error {
	if err := s.requireArbiter(caller); err != nil {
		return err
	}

	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return err
	}

	if err := s.repoManager.DealRepository().UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			if err := d.AllowRefundForBuyer(); err != nil {
				return nil, err
			}
			return d, nil
		},
	); err != nil {
		return err
	}

	log.Infof("refund to buyer approved for deal %d", dealId)
	publishBuyerRefundApprovedTopic(s.pubsub, dealId, deal.Amount)

	return nil
}

// ApproveRefundForSeller grants the seller of a pending deal a one-time
// refund authorization. Arbiter-only.
func (s *escrowService) ApproveRefundForSeller(
	ctx context.Context, caller string, dealId uint64,
) error {
	if err := s.requireArbiter(caller); err != nil {
		return err
	}

	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return err
	}

	if err := s.repoManager.DealRepository().UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			if err := d.AllowRefundForSeller(); err != nil {
				return nil, err
			}
			return d, nil
		},
	); err != nil {
		return err
	}

	log.Infof("refund to seller approved for deal %d", dealId)
	publishSellerRefundApprovedTopic(s.pubsub, dealId, deal.Amount)

	return nil
}

// RefundDeal sends the escrowed amount, net of the arbitration fee, to the
// party the arbiter authorized. Any participant of the deal can trigger the
// refund once the authorization is granted.
func (s *escrowService) RefundDeal(
	ctx context.Context, caller string, dealId uint64,
) error {
	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(caller, deal); err != nil {
		return err
	}

	if !s.guard.TryLock() {
		return ErrServiceUnavailable
	}
	defer s.guard.Unlock()

	recipient, err := deal.RefundRecipient()
	if err != nil {
		return err
	}

	ledger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return err
	}
	refundAmount, fee := deal.FeeSplit(ledger.PercentFee)

	// Same ordering as CompleteDeal: transfer first, then accrue the fee and
	// flip the status under the guard.
	if err := s.wallet.TransferOut(ctx, deal.Asset, recipient, refundAmount); err != nil {
		return err
	}

	if err := s.accrueFee(ctx, deal.Asset, fee); err != nil {
		return err
	}

	if err := s.repoManager.DealRepository().UpdateDeal(
		ctx, dealId, func(d *domain.Deal) (*domain.Deal, error) {
			if err := d.ExecuteRefund(); err != nil {
				return nil, err
			}
			return d, nil
		},
	); err != nil {
		return err
	}

	log.Infof("deal %d refunded, sent %d to %s", dealId, refundAmount, recipient)
	publishDealRefundIssuedTopic(s.pubsub, dealId, refundAmount, recipient)

	return nil
}

// WithdrawArbiterFees empties the fee accumulator of the given asset and
// transfers the collected amount to the arbiter. Arbiter-only.
func (s *escrowService) WithdrawArbiterFees(
	ctx context.Context, caller, asset string,
) (uint64, error) {
	if err := s.requireArbiter(caller); err != nil {
		return 0, err
	}
	if err := s.validateAsset(asset); err != nil {
		return 0, err
	}

	if !s.guard.TryLock() {
		return 0, ErrServiceUnavailable
	}
	defer s.guard.Unlock()

	// The accumulator reset and the transfer commit or fail together: the
	// transfer is issued within the ledger update so that a failed transfer
	// discards the reset.
	var feeAmount uint64
	if err := s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			amount, err := l.Withdraw(asset)
			if err != nil {
				return nil, err
			}
			if err := s.wallet.TransferOut(
				ctx, asset, s.arbiterAddress, amount,
			); err != nil {
				return nil, err
			}
			feeAmount = amount
			return l, nil
		},
	); err != nil {
		return 0, err
	}

	log.Infof("withdrawn %d of asset %s in arbitration fees", feeAmount, asset)
	publishArbitrationFeeWithdrawnTopic(s.pubsub, s.arbiterAddress, feeAmount)

	return feeAmount, nil
}

// UpdateArbitrationFeePercent replaces the arbitration fee rate applied to
// deals completed or refunded from now on. Arbiter-only.
func (s *escrowService) UpdateArbitrationFeePercent(
	ctx context.Context, caller string, percentFee uint32,
) error {
	if err := s.requireArbiter(caller); err != nil {
		return err
	}

	if err := s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			if err := l.UpdatePercentFee(percentFee); err != nil {
				return nil, err
			}
			return l, nil
		},
	); err != nil {
		return err
	}

	log.Infof("arbitration fee rate updated to %d%%", percentFee)
	publishArbitrationFeeRateUpdatedTopic(s.pubsub, percentFee)

	return nil
}

func (s *escrowService) GetDealStatus(
	ctx context.Context, dealId uint64,
) (string, error) {
	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return "", err
	}
	return dealStatusLabels[deal.Status], nil
}

func (s *escrowService) GetRefundStatus(
	ctx context.Context, dealId uint64,
) (string, error) {
	deal, err := s.repoManager.DealRepository().GetDeal(ctx, dealId)
	if err != nil {
		return "", err
	}
	return refundStatusLabels[deal.RefundStatus], nil
}

func (s *escrowService) GetArbitrationFeePercent(
	ctx context.Context,
) (uint32, error) {
	ledger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.PercentFee, nil
}

func (s *escrowService) GetArbitrationFeeBalance(
	ctx context.Context, asset string,
) (uint64, error) {
	if err := s.validateAsset(asset); err != nil {
		return 0, err
	}

	ledger, err := s.repoManager.FeeRepository().GetFeeLedger(ctx)
	if err != nil {
		return 0, err
	}
	return ledger.Balance(asset), nil
}

func (s *escrowService) ListDeals(ctx context.Context) ([]DealInfo, error) {
	deals, err := s.repoManager.DealRepository().GetAllDeals(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]DealInfo, 0, len(deals))
	for i := range deals {
		infos = append(infos, dealInfoFromDeal(&deals[i]))
	}
	return infos, nil
}

func (s *escrowService) ListDealsForParty(
	ctx context.Context, address string,
) ([]DealInfo, error) {
	deals, err := s.repoManager.DealRepository().GetDealsForParty(ctx, address)
	if err != nil {
		return nil, err
	}

	infos := make([]DealInfo, 0, len(deals))
	for i := range deals {
		infos = append(infos, dealInfoFromDeal(&deals[i]))
	}
	return infos, nil
}

func (s *escrowService) requireArbiter(caller string) error {
	if caller != s.arbiterAddress {
		return ErrArbiterOnly
	}
	return nil
}

func (s *escrowService) requireBuyer(caller string, deal *domain.Deal) error {
	if caller != deal.Buyer {
		return ErrBuyerOnly
	}
	return nil
}

func (s *escrowService) requireParticipant(
	caller string, deal *domain.Deal,
) error {
	if caller != deal.Buyer && caller != deal.Seller &&
		caller != s.arbiterAddress {
		return ErrUnauthorizedParticipant
	}
	return nil
}

func (s *escrowService) validateAsset(asset string) error {
	if asset != s.baseAsset && asset != s.quoteAsset {
		return domain.ErrAssetNotSupported
	}
	return nil
}

func (s *escrowService) accrueFee(
	ctx context.Context, asset string, feeAmount uint64,
) error {
	return s.repoManager.FeeRepository().UpdateFeeLedger(
		ctx, func(l *domain.FeeLedger) (*domain.FeeLedger, error) {
			l.Accrue(asset, feeAmount)
			return l, nil
		},
	)
}
