package config

import (
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/escrow-network/escrowd/internal/core/application"
	"github.com/escrow-network/escrowd/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of
	// the escrow engine.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported.
	DBTypeKey = "DB_TYPE"
	// ArbiterAddressKey is the identity allowed to approve refunds, change
	// the fee rate and withdraw the accumulated fees. Fixed for the whole
	// lifetime of the engine.
	ArbiterAddressKey = "ARBITER_ADDRESS"
	// BaseAssetKey and QuoteAssetKey are the only two assets deals can be
	// denominated in. Fixed for the whole lifetime of the engine.
	BaseAssetKey  = "BASE_ASSET"
	QuoteAssetKey = "QUOTE_ASSET"
	// FeePercentKey is the arbitration fee rate the ledger is seeded with at
	// the first startup. The arbiter can change it at runtime.
	FeePercentKey = "FEE_PERCENT"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("escrowd", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("ESCROW")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(FeePercentKey, 0)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	log.SetLevel(log.Level(GetInt(LogLevelKey)))

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint32(key string) uint32 {
	return vip.GetUint32(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	dbType := GetString(DBTypeKey)
	if dbType != application.DBBadger && dbType != application.DBInMemory {
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	if len(GetString(ArbiterAddressKey)) <= 0 {
		return fmt.Errorf("%s must be defined", ArbiterAddressKey)
	}

	baseAsset, quoteAsset := GetString(BaseAssetKey), GetString(QuoteAssetKey)
	if len(baseAsset) <= 0 || len(quoteAsset) <= 0 || baseAsset == quoteAsset {
		return fmt.Errorf(
			"%s and %s must be defined as two distinct assets",
			BaseAssetKey, QuoteAssetKey,
		)
	}

	if GetUint32(FeePercentKey) > domain.MaxPercentFee {
		return fmt.Errorf(
			"%s must be in range [0, %d]", FeePercentKey, domain.MaxPercentFee,
		)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		return os.MkdirAll(datadir, 0755)
	}
	return nil
}
