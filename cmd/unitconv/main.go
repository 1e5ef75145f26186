package main

import (
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/unitconv/internal/logger"
)

func main() {
	opts := logger.Options{Level: "info", HumanReadable: true, Writer: os.Stderr, Component: "cli"}
	log, err := logger.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	setAppLogger(log, opts)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
