package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var walletcmd = cli.Command{
	Name:  "wallet",
	Usage: "manage the reference custody wallet",
	Subcommands: []*cli.Command{
		{
			Name:  "fund",
			Usage: "credit an account with funds, for local setups",
			Flags: []cli.Flag{
				assetFlag(),
				&cli.StringFlag{
					Name:     "account",
					Usage:    "address of the account to credit",
					Required: true,
				},
				&cli.Uint64Flag{
					Name:     "amount",
					Usage:    "amount of asset to credit",
					Required: true,
				},
			},
			Action: walletFundAction,
		},
		{
			Name:  "balance",
			Usage: "print the funds an account holds for an asset",
			Flags: []cli.Flag{
				assetFlag(),
				&cli.StringFlag{
					Name:     "account",
					Usage:    "address of the account",
					Required: true,
				},
			},
			Action: walletBalanceAction,
		},
	},
}

func walletFundAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	asset, account := ctx.String("asset"), ctx.String("account")
	if err := eng.wallet.Fund(
		context.Background(), asset, account, ctx.Uint64("amount"),
	); err != nil {
		return err
	}

	funds, err := eng.wallet.Balance(context.Background(), asset, account)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"account": account,
		"asset":   asset,
		"balance": funds,
	})
	return nil
}

func walletBalanceAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	asset, account := ctx.String("asset"), ctx.String("account")
	funds, err := eng.wallet.Balance(context.Background(), asset, account)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"account": account,
		"asset":   asset,
		"balance": funds,
	})
	return nil
}
