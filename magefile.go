//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "storefront-api"
)

var Default = Build

// Run starts the API with the development configuration
func Run() error {
	fmt.Println("Running (go run) on :8080 ...")
	return sh.RunWithV(map[string]string{"GO_ENV": "development"}, "go", "run", ".")
}

func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	out := filepath.Join(binDir, appName+exeSuffix())
	fmt.Println("Building:", out)

	env := map[string]string{"CGO_ENABLED": "1"} // sqlite driver needs cgo
	return sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, ".")
}

// Test runs every package except the container-backed tests
func Test() error {
	fmt.Println("Testing...")
	return sh.RunWithV(map[string]string{"GO_ENV": "test"}, "go", "test", "./...", "-short", "-count=1")
}

// TestIntegration also runs the Postgres container tests; needs Docker
func TestIntegration() error {
	fmt.Println("Testing with Postgres container...")
	return sh.RunWithV(map[string]string{"GO_ENV": "test"}, "go", "test", "./tests/...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	return sh.RunWithV(map[string]string{"GO_ENV": "test"}, "go", "test", "./...", "-short", "-race", "-count=1")
}

func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", ".")
}

func Lint() error {
	fmt.Println("Linting (golangci-lint)...")
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		return fmt.Errorf("golangci-lint not found. Install with: go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint@latest")
	}
	return sh.RunV("golangci-lint", "run", "--timeout=3m", "./...")
}

func Check() error {
	mg.Deps(Fmt, Lint, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	fmt.Println("Tidying go.mod/go.sum...")
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
