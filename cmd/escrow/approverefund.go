package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var approverefund = cli.Command{
	Name:  "approverefund",
	Usage: "grant a one-time refund authorization on a pending deal, arbiter only",
	Flags: []cli.Flag{
		callerFlag(),
		dealFlag(),
		&cli.StringFlag{
			Name:     "to",
			Usage:    "recipient of the refund, either 'buyer' or 'seller'",
			Required: true,
		},
	},
	Action: approveRefundAction,
}

func approveRefundAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	caller, dealId := ctx.String("caller"), ctx.Uint64("deal")

	switch to := ctx.String("to"); to {
	case "buyer":
		err = eng.service.ApproveRefundForBuyer(context.Background(), caller, dealId)
	case "seller":
		err = eng.service.ApproveRefundForSeller(context.Background(), caller, dealId)
	default:
		err = fmt.Errorf("invalid refund recipient %s, must be 'buyer' or 'seller'", to)
	}
	if err != nil {
		return err
	}

	refundStatus, err := eng.service.GetRefundStatus(context.Background(), dealId)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"deal_id":       dealId,
		"refund_status": refundStatus,
	})
	return nil
}
