//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the client binary into bin/.
func (Build) Client() error {
	_, err := executeCmd("go", withArgs("build", "-ldflags", ldflags(), "-o", "bin/sceneflow", "./cmd/client"), withStream())
	return err
}

// Regenerates the testify mocks.
func (Build) Mocks() error {
	_, err := executeCmd("mockery", withStream())
	return err
}

type Test mg.Namespace

// Runs the unit tests with the race detector.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
	return err
}
