// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/runtime.go
// Summary: Boot sequencing and task wiring: opens the store, provisions
// or loads the device identity, builds the panel/radio/IO singletons,
// and starts the IO, radio, and logger-drain goroutines that stand in
// for the source's five FreeRTOS tasks (§5 "Scheduling model").
// Usage: Boot(Options) returns a running *Runtime; call Shutdown when
// the process exits (tests and cmd/hollows both do this).

package runtime

import (
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/firefly/hollows/apps/deviceinfo"
	"github.com/firefly/hollows/apps/home"
	"github.com/firefly/hollows/apps/pair"
	"github.com/firefly/hollows/device"
	"github.com/firefly/hollows/device/rsaseal"
	"github.com/firefly/hollows/infopanel"
	"github.com/firefly/hollows/internal/attrlink"
	"github.com/firefly/hollows/internal/config"
	"github.com/firefly/hollows/internal/logring"
	"github.com/firefly/hollows/internal/store"
	"github.com/firefly/hollows/io"
	"github.com/firefly/hollows/panel"
	"github.com/firefly/hollows/panelapps"
	"github.com/firefly/hollows/radio"
)

const appDeviceInfo = "deviceinfo"

const (
	attestKeyCipherdata = "cipherdata"
	attestKeyProof      = "attest"
	attestKeyPubkeyN    = "pubkey-n"
)

// Options configures one Boot call. Fuses and the I/O collaborators are
// supplied by the caller (cmd/hollows wires real fuse words and GPIO
// drivers; tests wire fakes).
type Options struct {
	StorePath string
	Fuses     device.Fuses

	Keypad io.PinReader
	LED    io.LEDDriver

	// Render draws each built-in panel's Scene; nil in tests, which never
	// call Run and so never need a display.
	Render infopanel.Render

	// Simulate provisions a fresh sealed key and factory proof on first
	// boot if the store has none yet, rather than leaving the device in
	// StatusMissingStore. Real hardware provisions cipherdata at the
	// factory, never at runtime.
	Simulate bool
}

// Runtime holds every long-lived singleton plus the goroutines spawned
// over them.
type Runtime struct {
	Store  *store.Store
	Device *device.Device
	Config config.Config

	Scheduler *panel.Scheduler
	Apps      *panelapps.Registry
	Keypad    *io.Keypad
	Loop      *io.Loop

	Message *radio.Message
	Conn    *radio.Connection
	Cmds    *radio.CommandQueue
	Task    *radio.Task

	Logs *logring.Ring
	Link *attrlink.Server

	resetCh chan struct{}
}

// Boot wires and starts a Runtime. The panel/radio/logger goroutines
// are running by the time Boot returns; Run blocks the calling
// goroutine on the IO task, the one task the source pins to the
// highest scheduling priority.
func Boot(opts Options) (*Runtime, error) {
	st, err := store.Open(opts.StorePath)
	if err != nil {
		return nil, fmt.Errorf("runtime: open store: %w", err)
	}

	cipherdata, proof, pubkeyN, err := loadOrProvision(st, opts.Simulate)
	if err != nil {
		st.Close()
		return nil, err
	}

	dev := device.Boot(opts.Fuses, cipherdata, proof, pubkeyN)
	log.Printf("runtime: device booted, status=%s", dev.Status())
	if dev.Status() == device.StatusOk {
		// Prime task: derive and cache the account-0 key in the background.
		go func() {
			if _, err := device.AccountKey(dev, 0); err != nil {
				log.Printf("runtime: prime account 0: %v", err)
			}
		}()
	}

	cfg, err := loadConfig(st)
	if err != nil {
		st.Close()
		return nil, err
	}

	sched := panel.New()
	sched.SetTransitionDuration(time.Duration(cfg.GetInt("panel", "transition_ms", int(panel.TransitionDuration/time.Millisecond))) * time.Millisecond)

	keypad := io.NewKeypad(opts.Keypad)
	keypad.SetDebounceSamples(cfg.GetInt("keypad", "debounce_samples", 10))
	keypad.SetResetChordHold(time.Duration(cfg.GetFloat("keypad", "reset_chord_hold_s", 2.0) * float64(time.Second)))

	logs := logring.New()
	log.SetOutput(logring.NewWriter(logs))

	msg := radio.NewMessage()
	msg.SetChunkSize(cfg.GetInt("radio", "mtu", 506))

	rt := &Runtime{
		Store:     st,
		Device:    dev,
		Config:    cfg,
		Scheduler: sched,
		Keypad:    keypad,
		Message:   msg,
		Conn:      radio.NewConnection(),
		Cmds:      radio.NewCommandQueue(),
		Logs:      logs,
		resetCh:   make(chan struct{}, 1),
	}
	rt.Task = radio.NewTask(sched, rt.Message, rt.Conn, rt.Cmds, dev.Fuses().Model, dev.Fuses().Serial)
	rt.Loop = io.NewLoop(sched, keypad, opts.LED, rt.requestReset)
	rt.Link = attrlink.NewServer(rt.Task, rt.Conn, logs)

	rt.Apps = panelapps.New()
	rt.Apps.Register(panelapps.Manifest{Name: appDeviceInfo, DisplayName: "Device info", Category: "system"},
		func(s *panel.Scheduler, arg interface{}) int {
			return deviceinfo.Push(s, rt.Device, rt.factoryReset, opts.Render)
		})
	rt.Apps.Register(panelapps.Manifest{Name: "pair", DisplayName: "Pairing", Category: "system"},
		func(s *panel.Scheduler, arg interface{}) int {
			req, _ := arg.(pair.Request)
			return pair.Push(s, req, rt.onPairDecision, opts.Render)
		})

	go rt.Link.Run()
	go home.Push(sched, rt.Apps, opts.Render)

	return rt, nil
}

// RequestPairing surfaces a bonding request from the link layer on the
// panel stack and blocks until the holder accepts or rejects it.
func (rt *Runtime) RequestPairing(req pair.Request) int {
	status, _ := rt.Apps.Launch(rt.Scheduler, "pair", req)
	return status
}

func (rt *Runtime) onPairDecision(accept bool) {
	log.Printf("runtime: pairing request %s", map[bool]string{true: "accepted", false: "rejected"}[accept])
}

// factoryReset wipes the provisioned key material and requests a reset,
// mirroring cmd/hollows's -factory-reset flag but triggered from the
// device info panel instead of a process restart.
func (rt *Runtime) factoryReset() {
	if err := rt.Store.ClearAttestNamespace(); err != nil {
		log.Printf("runtime: factory reset: %v", err)
		return
	}
	log.Printf("runtime: factory reset complete, requesting restart")
	rt.requestReset()
}

// Run blocks the calling goroutine on the IO task's frame loop (the
// highest-priority task: display/keypad pacing). ready mirrors the source's wait for the display driver's
// first vsync.
func (rt *Runtime) Run(ready io.DisplayReady) {
	rt.Loop.Run(ready)
}

// ResetRequested signals when the keypad's hard-reset chord has fired or
// the device info panel's factory reset has completed. cmd/hollows waits
// on this to exit the process.
func (rt *Runtime) ResetRequested() <-chan struct{} { return rt.resetCh }

func (rt *Runtime) requestReset() {
	if err := rt.Task.RequestCommand(radio.OpDeviceRestarting); err != nil {
		log.Printf("runtime: queue restart notice: %v", err)
	}
	select {
	case rt.resetCh <- struct{}{}:
	default:
	}
}

// Shutdown flushes the config document and releases the store handle.
func (rt *Runtime) Shutdown() error {
	if err := saveConfig(rt.Store, rt.Config); err != nil {
		log.Printf("runtime: save config on shutdown: %v", err)
	}
	return rt.Store.Close()
}

func loadOrProvision(st *store.Store, simulate bool) (cipherdata, proof, pubkeyN []byte, err error) {
	cipherdata, hasCipher, err := st.GetAttestEntry(attestKeyCipherdata)
	if err != nil {
		return nil, nil, nil, err
	}
	proof, hasProof, err := st.GetAttestEntry(attestKeyProof)
	if err != nil {
		return nil, nil, nil, err
	}
	pubkeyN, hasPubkey, err := st.GetAttestEntry(attestKeyPubkeyN)
	if err != nil {
		return nil, nil, nil, err
	}

	if hasCipher && hasProof && hasPubkey {
		return cipherdata, proof, pubkeyN, nil
	}
	if !simulate {
		// Leave whatever subset is present; Boot will classify this as
		// StatusMissingStore.
		return cipherdata, proof, pubkeyN, nil
	}

	log.Printf("runtime: simulate mode, provisioning fresh sealed key material")
	signer, sealed, err := rsaseal.GenerateSealed()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("runtime: generate sealed key: %w", err)
	}
	proof = make([]byte, 64)
	if _, err := rand.Read(proof); err != nil {
		return nil, nil, nil, fmt.Errorf("runtime: generate factory proof: %w", err)
	}
	modulus := signer.Modulus()
	pubkeyN = modulus[:]

	if err := st.PutAttestEntry(attestKeyCipherdata, sealed); err != nil {
		return nil, nil, nil, err
	}
	if err := st.PutAttestEntry(attestKeyProof, proof); err != nil {
		return nil, nil, nil, err
	}
	if err := st.PutAttestEntry(attestKeyPubkeyN, pubkeyN); err != nil {
		return nil, nil, nil, err
	}
	return sealed, proof, pubkeyN, nil
}

func loadConfig(st *store.Store) (config.Config, error) {
	doc, ok, err := st.GetConfigDocument()
	if err != nil {
		return nil, fmt.Errorf("runtime: load config document: %w", err)
	}
	cfg := config.Config{}
	if ok {
		if err := config.Unmarshal([]byte(doc), &cfg); err != nil {
			return nil, fmt.Errorf("runtime: parse config document: %w", err)
		}
	}
	config.ApplyDefaults(cfg)
	if err := saveConfig(st, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func saveConfig(st *store.Store, cfg config.Config) error {
	doc, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("runtime: marshal config document: %w", err)
	}
	return st.PutConfigDocument(string(doc))
}
