package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var refund = cli.Command{
	Name:  "refund",
	Usage: "claim the authorized refund on a pending deal, participants only",
	Flags: []cli.Flag{
		callerFlag(),
		dealFlag(),
	},
	Action: refundAction,
}

func refundAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	dealId := ctx.Uint64("deal")
	if err := eng.service.RefundDeal(
		context.Background(), ctx.String("caller"), dealId,
	); err != nil {
		return err
	}

	refundStatus, err := eng.service.GetRefundStatus(context.Background(), dealId)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"deal_id":       dealId,
		"status":        "refunded",
		"refund_status": refundStatus,
	})
	return nil
}
