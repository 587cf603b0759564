// Package main implements greeter-client, a one-shot caller of the Greeter service.
package main

import (
	"fmt"
	"os"
)

// go build -ldflags "-X main.Version=x.y.z"
var Version string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
