package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var status = cli.Command{
	Name:  "status",
	Usage: "print the lifecycle and refund status of a deal",
	Flags: []cli.Flag{
		dealFlag(),
	},
	Action: statusAction,
}

func statusAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	dealId := ctx.Uint64("deal")

	dealStatus, err := eng.service.GetDealStatus(context.Background(), dealId)
	if err != nil {
		return err
	}
	refundStatus, err := eng.service.GetRefundStatus(context.Background(), dealId)
	if err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{
		"deal_id":       dealId,
		"status":        dealStatus,
		"refund_status": refundStatus,
	})
	return nil
}
