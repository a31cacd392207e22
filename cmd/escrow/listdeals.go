package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listdeals = cli.Command{
	Name:  "listdeals",
	Usage: "list all deals, or those of a single party",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "party",
			Usage: "only list deals having this address as buyer or seller",
		},
	},
	Action: listDealsAction,
}

func listDealsAction(ctx *cli.Context) error {
	eng, err := getEngine()
	if err != nil {
		return err
	}
	defer eng.close()

	party := ctx.String("party")

	if len(party) > 0 {
		deals, err := eng.service.ListDealsForParty(context.Background(), party)
		if err != nil {
			return err
		}
		printRespJSON(deals)
		return nil
	}

	deals, err := eng.service.ListDeals(context.Background())
	if err != nil {
		return err
	}
	printRespJSON(deals)
	return nil
}
