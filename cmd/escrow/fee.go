package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var feebalance = cli.Command{
	Name:  "feebalance",
	Usage: "print the arbitration fee rate and the accumulated fees for an asset",
	Flags: []cli.Flag{
		assetFlag(),
	},
	Action: feeBalanceAction,
}

var withdrawfees = cli.Command{
	Name:  "withdrawfees",
	Usage: "withdraw the accumulated arbitration fees for an asset, arbiter only",
	Flags: []cli.Flag{
		callerFlag(),
		assetFlag(),
	},
	Action: withdrawFeesAction,
}

var updatefeepercent = cli.Command{
	Name:  "updatefeepercent",
	Usage: "update the arbitration fee rate, arbiter only",
	Flags: []cli.Flag{
		callerFlag(),
		&cli.UintFlag{
			Name:     "percent",
			Usage:    "new arbitration fee rate, in range [0, 10]",
			Required: true,
		},
	},
	Action: updateFeePercentAction,
}

func feeBalanceAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	asset := ctx.String("asset")

	percentFee, err := eng.service.GetArbitrationFeePercent(context.Background())
	if err != nil {
		return err
	}
	balance, err := eng.service.GetArbitrationFeeBalance(context.Background(), asset)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"asset":            asset,
		"percent_fee":      percentFee,
		"accumulated_fees": balance,
	})
	return nil
}

func withdrawFeesAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	asset := ctx.String("asset")
	feeAmount, err := eng.service.WithdrawArbiterFees(
		context.Background(), ctx.String("caller"), asset,
	)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"asset":      asset,
		"fee_amount": feeAmount,
	})
	return nil
}

func updateFeePercentAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	percentFee := uint32(ctx.Uint("percent"))
	if err := eng.service.UpdateArbitrationFeePercent(
		context.Background(), ctx.String("caller"), percentFee,
	); err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{"percent_fee": percentFee})
	return nil
}
