// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/hollows/main.go
// Summary: Entrypoint for the device runtime simulator.
// Usage: Run `hollows` to boot the device against a persistent store;
// `-simulate` provisions fresh key material on first boot, `-factory-
// reset` wipes the store first, `-tui` drives the keypad and display
// from the calling terminal instead of the idle simulator.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/firefly/hollows/device"
	"github.com/firefly/hollows/infopanel"
	"github.com/firefly/hollows/internal/runtime"
	"github.com/firefly/hollows/io"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("hollows", flag.ContinueOnError)

	storePath := fs.String("store", "", "Path to the device's sqlite store (default: ~/.hollows/device.db)")
	simulate := fs.Bool("simulate", false, "Provision fresh sealed key material on first boot instead of requiring a factory-provisioned store")
	factoryReset := fs.Bool("factory-reset", false, "Delete the store before booting (requires confirmation)")
	model := fs.Uint("model", 0x484F, "Fuse block 3 word 1: device model number")
	serial := fs.Uint("serial", 0x0001, "Fuse block 3 word 2: device serial number")
	useTUI := fs.Bool("tui", false, "Drive the keypad and display from this terminal instead of the idle simulator")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("resolve config paths: %w", err)
	}
	if *storePath == "" {
		*storePath = paths.StorePath
	}
	if err := paths.EnsureConfigDir(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if *factoryReset {
		if err := handleFactoryReset(*storePath); err != nil {
			return err
		}
	}

	var (
		keypad io.PinReader  = simulatedPins{}
		led    io.LEDDriver  = simulatedLED{}
		render infopanel.Render
	)
	if *useTUI {
		term, err := newTUI()
		if err != nil {
			return fmt.Errorf("start tui: %w", err)
		}
		defer term.Close()
		keypad, led, render = term, term, term.Render
	}

	rt, err := runtime.Boot(runtime.Options{
		StorePath: *storePath,
		Fuses: device.Fuses{
			Version: 1,
			Model:   uint32(*model),
			Serial:  uint32(*serial),
		},
		Keypad:   keypad,
		LED:      led,
		Render:   render,
		Simulate: *simulate,
	})
	if err != nil {
		return fmt.Errorf("boot runtime: %w", err)
	}
	defer rt.Shutdown()

	log.Printf("hollows: booted, status=%s, store=%s", rt.Device.Status(), *storePath)

	go func() {
		<-rt.ResetRequested()
		log.Printf("hollows: reset requested, exiting")
		os.Exit(0)
	}()

	rt.Run(nil)
	return nil
}

func handleFactoryReset(storePath string) error {
	if storePath == ":memory:" {
		return nil
	}
	fmt.Printf("WARNING: this deletes all provisioned key material at %s\n", storePath)
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" {
		return fmt.Errorf("factory reset aborted")
	}

	if err := os.Remove(storePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove store: %w", err)
	}
	return nil
}
