// Example program demonstrating the CLI console host
//
// Without a command it runs a small echo loop; with one, the command's
// input and output are wired to the console.
//
// Controls:
//   - Up/Down, PageUp/PageDown: recall history
//   - Ctrl+A: select the input line, again for the whole buffer
//   - Ctrl+C / Ctrl+V: copy / paste
//   - Ctrl+Q: quit
//
// Usage:
//
//	go run main.go                          # Echo loop
//	go run main.go -config console.toml     # With a configuration file
//	go run main.go -- python3 -i            # Run a line-oriented program
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phroun/purfectconsole"
	"github.com/phroun/purfectconsole/cli"
	"github.com/phroun/purfectconsole/config"
)

func main() {
	configPath := flag.String("config", "", "TOML or YAML configuration file")
	flag.Parse()

	consoleOpts := purfectconsole.DefaultOptions()
	if *configPath != "" {
		var err error
		consoleOpts, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if consoleOpts.Title == "Console" {
		consoleOpts.Title = "PurfecConsole CLI"
	}
	consoleOpts.UsePTY = true

	opts := cli.Options{
		Console:       consoleOpts,
		AutoSize:      true,
		BorderStyle:   cli.BorderRounded,
		ShowStatusBar: true,
	}

	term, err := cli.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create console: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		term.Stop()
		os.Exit(0)
	}()

	if err := term.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start console: %v\n", err)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		proc, err := term.RunCommand(args[0], args[1:]...)
		if err != nil {
			term.Stop()
			fmt.Fprintf(os.Stderr, "Failed to run command: %v\n", err)
			os.Exit(1)
		}
		go func() {
			code, _ := proc.Wait()
			fmt.Fprintf(term.Output(), "\n[process exited with code %d, Ctrl+Q quits]\n", code)
		}()
	} else {
		go echo(term)
	}

	term.Wait()
	term.Stop()
}

func echo(term *cli.Terminal) {
	out := term.Output()
	fmt.Fprint(out, "Type something and press Enter.\n> ")
	scanner := bufio.NewScanner(term.Input())
	for scanner.Scan() {
		fmt.Fprintf(out, "you said: %s\n> ", scanner.Text())
	}
}
