//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var binaries = []string{"objview", "objconv"}

// All builds every command into ./bin.
func (Build) All() error {
	for _, name := range binaries {
		if err := buildBinary(name); err != nil {
			return err
		}
	}
	return nil
}

// Viewer builds the terminal viewer into ./bin.
func (Build) Viewer() error {
	return buildBinary("objview")
}

// Converter builds the converter into ./bin.
func (Build) Converter() error {
	return buildBinary("objconv")
}

func buildBinary(name string) error {
	out := filepath.Join("bin", name)
	_, err := executeCmd("go", withArgs("build", "-o", out, "./cmd/"+name), withStream())
	return err
}
