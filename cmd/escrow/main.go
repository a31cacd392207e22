package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/escrow-network/escrowd/internal/config"
)

var statePath = func() string {
	return filepath.Join(config.GetDatadir(), "state.json")
}

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "escrow CLI"
	app.Usage = "Command line interface for operating the escrowd engine"
	app.Commands = append(
		app.Commands,
		&createdeal,
		&completedeal,
		&approverefund,
		&refund,
		&status,
		&listdeals,
		&feebalance,
		&withdrawfees,
		&updatefeepercent,
		&walletcmd,
		&webhook,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

type cliState struct {
	Webhooks []webhookState `json:"webhooks"`
}

type webhookState struct {
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

func getState() (*cliState, error) {
	state := &cliState{}

	file, err := os.ReadFile(statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(file, state); err != nil {
		return nil, fmt.Errorf("malformed state file: %w", err)
	}
	return state, nil
}

func setState(state *cliState) error {
	buf, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath(), buf, 0644); err != nil {
		return fmt.Errorf("writing to state file: %w", err)
	}
	return nil
}

func printRespJSON(resp interface{}) {
	buf, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(buf))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[escrow] %v\n", err)
	os.Exit(1)
}
