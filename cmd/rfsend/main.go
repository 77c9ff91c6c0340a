// Command rfsend transmits a FLAMINGO-28 frame on a GPIO output pin.
// Argument shape and missing-rolling behavior follow spec section 6's
// transmitter CLI.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/jechtern/rf433d/internal/flamingo"
	"github.com/jechtern/rf433d/internal/pulse"
	"github.com/jechtern/rf433d/internal/xmit"
)

const usageExitCode = 2
const initFailedExitCode = 1

func main() {
	code, err := mainImpl()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rfsend:", err)
	}
	os.Exit(code)
}

func mainImpl() (int, error) {
	txPin := pflag.String("tx-pin", "GPIO17", "GPIO pin to transmit on")
	backend := pflag.String("backend", "", "GPIO backend: periph or gpiocdev (default: auto)")
	verbose := pflag.BoolP("verbose", "v", false, "verbose logging")
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	args := pflag.Args()
	if len(args) < 3 || len(args) > 4 {
		return usageExitCode, fmt.Errorf("usage: rfsend <remote 1..N> <channel A..D> <command 0|1> [rolling 0..3]")
	}

	remote, err := strconv.Atoi(args[0])
	if err != nil {
		return usageExitCode, fmt.Errorf("remote must be numeric: %w", err)
	}
	channel, err := parseChannel(args[1])
	if err != nil {
		return usageExitCode, err
	}
	command, err := strconv.Atoi(args[2])
	if err != nil || (command != 0 && command != 1) {
		return usageExitCode, fmt.Errorf("command must be 0 or 1")
	}

	pin, err := openPin(*txPin, *backend)
	if err != nil {
		return initFailedExitCode, fmt.Errorf("opening tx pin: %w", err)
	}
	defer pin.Halt()

	if len(args) == 4 {
		rolling, err := strconv.Atoi(args[3])
		if err != nil || rolling < 0 || rolling > 3 {
			return usageExitCode, fmt.Errorf("rolling must be 0..3")
		}
		if err := sendOne(pin, remote, channel, command, rolling, logger); err != nil {
			return initFailedExitCode, err
		}
		return 0, nil
	}

	for rolling := 0; rolling < 4; rolling++ {
		if err := sendOne(pin, remote, channel, command, rolling, logger); err != nil {
			return initFailedExitCode, err
		}
		if rolling < 3 {
			time.Sleep(time.Second)
		}
	}
	return 0, nil
}

func sendOne(pin pulse.Pin, remote, channel, command, rolling int, logger *log.Logger) error {
	f := flamingo.Frame28{
		Payload: 0,
		Xmitter: uint16(remote),
		Rolling: uint8(rolling),
		Command: uint8(command),
		Channel: uint8(channel),
	}
	code := flamingo.EncodeAndEncryptF28(f)
	logger.Debug("transmitting", "xmitter", f.Xmitter, "channel", f.Channel, "command", f.Command, "rolling", f.Rolling)
	return xmit.SendF28(pin, code)
}

func parseChannel(s string) (int, error) {
	if len(s) != 1 || s[0] < 'A' || s[0] > 'D' {
		return 0, fmt.Errorf("channel must be A..D")
	}
	return int(s[0]-'A') + 1, nil
}

func openPin(name, backend string) (pulse.Pin, error) {
	if backend == "" || backend == "periph" {
		if err := pulse.InitPeriphHost(); err == nil {
			if pin, err := pulse.OpenPeriphPin(name); err == nil {
				return pin, nil
			}
		}
		if backend == "periph" {
			return nil, fmt.Errorf("periph backend requested but unavailable for %s", name)
		}
	}
	chip, offset, err := pulse.ParsePinName(name)
	if err != nil {
		return nil, err
	}
	return pulse.OpenGpiocdevPin(chip, offset)
}
