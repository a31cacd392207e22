package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/ports"
)

// custodyAccount is the account holding the escrowed funds.
const custodyAccount = "custody"

var (
	// ErrInsufficientBalance is thrown when the sender does not hold enough
	// funds to cover a transfer.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrNullAccountAddress ...
	ErrNullAccountAddress = errors.New("account address must not be null")
)

// Service is the reference implementation of the transfer capability: a
// per-account, per-asset balance ledger with a dedicated custody account.
// Both transfers are atomic, either both legs apply or none does.
type Service interface {
	ports.Wallet
	// Fund credits the given account out of thin air. Meant for seeding
	// local setups and tests.
	Fund(ctx context.Context, asset, account string, amount uint64) error
	// Balance returns the funds the account holds for the asset.
	Balance(ctx context.Context, asset, account string) (uint64, error)
}

type balance struct {
	Account string
	Asset   string
	Amount  uint64
}

type service struct {
	locker   sync.Mutex
	balances map[string]uint64
	store    *badgerhold.Store
}

// NewService returns a volatile wallet Service.
func NewService() Service {
	return &service{balances: map[string]uint64{}}
}

// NewServiceWithStore returns a wallet Service persisting every balance in
// the given badgerhold store, so that funds survive restarts.
func NewServiceWithStore(store *badgerhold.Store) (Service, error) {
	svc := &service{
		balances: map[string]uint64{},
		store:    store,
	}

	var records []balance
	if err := store.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("loading wallet balances: %w", err)
	}
	for _, record := range records {
		svc.balances[balanceKey(record.Account, record.Asset)] = record.Amount
	}

	return svc, nil
}

func (s *service) TransferIn(
	_ context.Context, asset, from string, amount uint64,
) error {
	if len(from) <= 0 {
		return ErrNullAccountAddress
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	return s.transfer(asset, from, custodyAccount, amount)
}

func (s *service) TransferOut(
	_ context.Context, asset, to string, amount uint64,
) error {
	if len(to) <= 0 {
		return ErrNullAccountAddress
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	return s.transfer(asset, custodyAccount, to, amount)
}

func (s *service) Fund(
	_ context.Context, asset, account string, amount uint64,
) error {
	if len(account) <= 0 {
		return ErrNullAccountAddress
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	credited := s.balances[balanceKey(account, asset)] + amount
	if err := s.persist(asset, account, credited); err != nil {
		return err
	}
	s.balances[balanceKey(account, asset)] = credited
	return nil
}

func (s *service) Balance(
	_ context.Context, asset, account string,
) (uint64, error) {
	if len(account) <= 0 {
		return 0, ErrNullAccountAddress
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	return s.balances[balanceKey(account, asset)], nil
}

func (s *service) transfer(asset, from, to string, amount uint64) error {
	fromBalance := s.balances[balanceKey(from, asset)]
	if fromBalance < amount {
		return ErrInsufficientBalance
	}

	debited := fromBalance - amount
	credited := s.balances[balanceKey(to, asset)] + amount

	if err := s.persist(asset, from, debited); err != nil {
		return err
	}
	if err := s.persist(asset, to, credited); err != nil {
		return err
	}

	s.balances[balanceKey(from, asset)] = debited
	s.balances[balanceKey(to, asset)] = credited
	return nil
}

func (s *service) persist(asset, account string, amount uint64) error {
	if s.store == nil {
		return nil
	}

	key := balanceKey(account, asset)
	record := balance{Account: account, Asset: asset, Amount: amount}
	return s.store.Upsert(key, record)
}

func balanceKey(account, asset string) string {
	return fmt.Sprintf("%s:%s", account, asset)
}
