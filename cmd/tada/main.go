package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags override config files and env for every subcommand.
	config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() { cli.PrintHelp(os.Stderr) }
	flag.Parse()

	cfg, err := config.Load(flag.CommandLine)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(2)
	}

	code := cli.Run(flag.Args(), cli.Options{Config: cfg})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
