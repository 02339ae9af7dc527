// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command portalctl is the operator CLI for CivicPortal: schema migrations
// and bootstrap accounts.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
