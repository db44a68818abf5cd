//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the client with the debug overlay and the default config.
func (Run) Client() error {
	fmt.Println("Run client...")
	_, err := executeCmd("go", withArgs("run", "./cmd/client", "-debug", "-log-level", "debug", "-config", "configs/client.toml"), withStream())
	return err
}
