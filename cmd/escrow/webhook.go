package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/config"
	"github.com/escrow-network/escrowd/internal/infrastructure/pubsub"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "manage the webhook endpoints notified on deal events",
	Subcommands: []*cli.Command{
		{
			Name:  "add",
			Usage: "register an endpoint for a topic, '*' for all topics",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "topic",
					Usage:    "topic label to subscribe for",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "endpoint",
					Usage:    "URL to be POSTed the notification payloads",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "secret",
					Usage: "optional secret for signing the deliveries",
				},
			},
			Action: webhookAddAction,
		},
		{
			Name:   "remove",
			Usage:  "unregister an endpoint",
			Flags:  []cli.Flag{&cli.StringFlag{Name: "endpoint", Required: true}},
			Action: webhookRemoveAction,
		},
		{
			Name:   "list",
			Usage:  "list the registered endpoints",
			Action: webhookListAction,
		},
	},
}

func webhookAddAction(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}

	state, err := getState()
	if err != nil {
		return err
	}

	hook := webhookState{
		Topic:    ctx.String("topic"),
		Endpoint: ctx.String("endpoint"),
		Secret:   ctx.String("secret"),
	}
	// Dry-run the subscription so invalid topics or endpoints never make it
	// to the state file.
	if _, err := pubsub.NewService().Subscribe(
		hook.Topic, hook.Endpoint, hook.Secret,
	); err != nil {
		return err
	}
	for _, hh := range state.Webhooks {
		if hh.Endpoint == hook.Endpoint && hh.Topic == hook.Topic {
			return fmt.Errorf("endpoint already registered for topic %s", hook.Topic)
		}
	}

	state.Webhooks = append(state.Webhooks, hook)
	if err := setState(state); err != nil {
		return err
	}

	printRespJSON(state.Webhooks)
	return nil
}

func webhookRemoveAction(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}

	state, err := getState()
	if err != nil {
		return err
	}

	endpoint := ctx.String("endpoint")
	hooks := make([]webhookState, 0, len(state.Webhooks))
	for _, hook := range state.Webhooks {
		if hook.Endpoint != endpoint {
			hooks = append(hooks, hook)
		}
	}
	state.Webhooks = hooks

	if err := setState(state); err != nil {
		return err
	}

	printRespJSON(state.Webhooks)
	return nil
}

func webhookListAction(ctx *cli.Context) error {
	if err := config.InitConfig(); err != nil {
		return err
	}

	state, err := getState()
	if err != nil {
		return err
	}

	printRespJSON(state.Webhooks)
	return nil
}
