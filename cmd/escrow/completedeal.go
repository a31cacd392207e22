package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var completedeal = cli.Command{
	Name:  "completedeal",
	Usage: "pay the seller out of a pending deal, buyer only",
	Flags: []cli.Flag{
		callerFlag(),
		dealFlag(),
	},
	Action: completeDealAction,
}

func completeDealAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	dealId := ctx.Uint64("deal")
	if err := eng.service.CompleteDeal(
		context.Background(), ctx.String("caller"), dealId,
	); err != nil {
		return err
	}

	printRespJSON(map[string]interface{}{"deal_id": dealId, "status": "completed"})
	return nil
}
