package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var createdeal = cli.Command{
	Name:  "createdeal",
	Usage: "lock funds into custody and open a new deal with a seller",
	Flags: []cli.Flag{
		callerFlag(),
		assetFlag(),
		&cli.StringFlag{
			Name:     "seller",
			Usage:    "address of the seller",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "amount of asset to lock into custody",
			Required: true,
		},
	},
	Action: createDealAction,
}

func createDealAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	dealId, err := eng.service.CreateDeal(
		context.Background(),
		ctx.String("caller"),
		ctx.String("asset"),
		ctx.String("seller"),
		ctx.Uint64("amount"),
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{"deal_id": dealId})
	return nil
}
