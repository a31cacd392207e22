package dbbadger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/escrow-network/escrowd/internal/core/domain"
	"github.com/escrow-network/escrowd/internal/core/ports"
)

// RepoManager holds the badgerhold store backing all the repositories of
// the escrow engine.
type RepoManager struct {
	store *badgerhold.Store

	dealRepository domain.DealRepository
	feeRepository  domain.FeeRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk
// and seeds the fee ledger with the given rate in case it does not exist
// yet.
func NewRepoManager(
	baseDbDir string, logger badger.Logger, percentFee uint32,
) (ports.RepoManager, error) {
	store, err := createDb(filepath.Join(baseDbDir, "escrow"), logger)
	if err != nil {
		return nil, fmt.Errorf("opening escrow db: %w", err)
	}

	feeRepository, err := NewFeeRepositoryImpl(store, percentFee)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &RepoManager{
		store:          store,
		dealRepository: NewDealRepositoryImpl(store),
		feeRepository:  feeRepository,
	}, nil
}

func (d *RepoManager) DealRepository() domain.DealRepository {
	return d.dealRepository
}

func (d *RepoManager) FeeRepository() domain.FeeRepository {
	return d.feeRepository
}

func (d *RepoManager) Close() {
	d.store.Close()
}

// NewStore opens (or creates if not exists) a standalone badgerhold store,
// for collaborators needing their own persistence besides the repositories.
func NewStore(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	return createDb(dbDir, logger)
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}

func isNotFound(err error) bool {
	return errors.Is(err, badgerhold.ErrNotFound)
}
