//go:build tools
// +build tools

// Package tools pins the code generators run through go generate, so that
// mockgen resolves from go.mod on a fresh checkout.
package plainchat

import (
	_ "go.uber.org/mock/mockgen"
)
