// SPDX-License-Identifier: MIT

// Command orgchart resolves & renders tenant org charts from an employee directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitConfig  = 2
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := exitSuccess
	if err = newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		code = exitFailure
	}
	stop()

	os.Exit(code)
}
