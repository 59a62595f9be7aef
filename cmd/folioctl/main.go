// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Folioctl is the operator command line for Folio.

It checks the compiled content registry and reads or deletes entries through
the REST API. API settings come from FOLIO_API_URL, FOLIO_API_TIMEOUT and
FOLIO_API_TOKEN.

	folioctl schemas lint
	folioctl schemas export sector
	folioctl content list product --status published --all
	folioctl site single contact_info
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
