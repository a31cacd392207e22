package main

import (
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/config"
	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/ports"
	"github.com/escrow-network/escrowd/internal/infrastructure/pubsub"
	dbbadger "github.com/escrow-network/escrowd/internal/infrastructure/storage/db/badger"
	"github.com/escrow-network/escrowd/internal/infrastructure/storage/db/inmemory"
	"github.com/escrow-network/escrowd/internal/infrastructure/wallet"
)

// engine groups everything a command needs to operate the escrow service.
type engine struct {
	service application.EscrowService
	wallet  wallet.Service
	pubsub  ports.SecurePubSub

	close func()
}

// getEngine builds the escrow service from the environment config, with the
// webhooks registered through the CLI re-subscribed on the pubsub service.
func getEngine() (*engine, error) {
	if err := config.InitConfig(); err != nil {
		return nil, err
	}

	percentFee := config.GetUint32(config.FeePercentKey)
	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)

	var repoManager ports.RepoManager
	var walletSvc wallet.Service
	var err error

	switch config.GetString(config.DBTypeKey) {
	case application.DBInMemory:
		repoManager, err = inmemory.NewRepoManager(percentFee)
		if err != nil {
			return nil, err
		}
		walletSvc = wallet.NewService()
	default:
		repoManager, err = dbbadger.NewRepoManager(dbDir, nil, percentFee)
		if err != nil {
			return nil, err
		}

		walletStore, err := dbbadger.NewStore(
			filepath.Join(dbDir, "wallet"), nil,
		)
		if err != nil {
			repoManager.Close()
			return nil, err
		}
		walletSvc, err = wallet.NewServiceWithStore(walletStore)
		if err != nil {
			walletStore.Close()
			repoManager.Close()
			return nil, err
		}
	}

	pubsubSvc := pubsub.NewService()
	state, err := getState()
	if err != nil {
		repoManager.Close()
		return nil, err
	}
	for _, hook := range state.Webhooks {
		if _, err := pubsubSvc.Subscribe(
			hook.Topic, hook.Endpoint, hook.Secret,
		); err != nil {
			repoManager.Close()
			return nil, err
		}
	}

	service, err := application.NewEscrowService(
		application.Config{
			ArbiterAddress: config.GetString(config.ArbiterAddressKey),
			BaseAsset:      config.GetString(config.BaseAssetKey),
			QuoteAsset:     config.GetString(config.QuoteAssetKey),
		},
		repoManager, walletSvc, pubsubSvc,
	)
	if err != nil {
		repoManager.Close()
		return nil, err
	}

	return &engine{
		service: service,
		wallet:  walletSvc,
		pubsub:  pubsubSvc,
		close:   repoManager.Close,
	}, nil
}

func callerFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "caller",
		Usage:    "address of the account invoking the operation",
		Required: true,
	}
}

func dealFlag() *cli.Uint64Flag {
	return &cli.Uint64Flag{
		Name:     "deal",
		Usage:    "id of the deal",
		Required: true,
	}
}

func assetFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "asset",
		Usage:    "hash of the asset",
		Required: true,
	}
}
