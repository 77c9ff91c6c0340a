// Command rfsniffer listens on a GPIO input pin for 433 MHz OOK
// traffic, decodes FLAMINGO-28/24/32 and NEXUS frames (or runs the
// analyzer against an unknown protocol), and emits decoded events as
// JSON on stdout. Its main/mainImpl split follows
// google-periph/cmd/gpio-read's pattern for exit-code discipline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-colorable"
	"github.com/spf13/pflag"

	"github.com/jechtern/rf433d/internal/bus"
	"github.com/jechtern/rf433d/internal/config"
	"github.com/jechtern/rf433d/internal/decoder"
	"github.com/jechtern/rf433d/internal/dispatch"
	"github.com/jechtern/rf433d/internal/matrix"
	"github.com/jechtern/rf433d/internal/protocol"
	"github.com/jechtern/rf433d/internal/pulse"
	"github.com/jechtern/rf433d/internal/sysfssink"
)

const usageExitCode = 2
const initFailedExitCode = 1

func main() {
	code, err := mainImpl()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rfsniffer:", err)
	}
	os.Exit(code)
}

func mainImpl() (int, error) {
	var (
		decoderDelaySec = pflag.IntP("decoder-delay", "d", 1, "decoder delay, seconds")
		noRepeat        = pflag.BoolP("no-repeat", "e", false, "disable repeat coalescing")
		jsonOutput      = pflag.BoolP("json", "j", true, "emit JSON events on stdout")
		histogram       = pflag.BoolP("histogram", "c", false, "print a pulse-length histogram")
		analyzer        = pflag.BoolP("analyzer", "a", false, "analyzer mode for unknown protocols")
		bitsToSample    = pflag.IntP("bits", "b", 0, "bits to sample in analyzer mode (0 = until next sync)")
		syncOn          = pflag.IntP("sync-on", "s", 0, "sync polarity: 0=LOW 1=HIGH 2=EDGE")
		sampleOn        = pflag.IntP("sample-on", "S", 0, "sample polarity: 0=LOW 1=HIGH 2=EDGE")
		syncMinUs       = pflag.IntP("sync-min", "x", 2600, "analyzer sync window minimum, µs")
		syncMaxUs       = pflag.IntP("sync-max", "y", 10330, "analyzer sync window maximum, µs")
		dividerUs       = pflag.IntP("divider", "z", 660, "analyzer 0/1 divider, µs")
		rxPin           = pflag.String("rx-pin", "GPIO27", "GPIO pin to sample")
		backend         = pflag.String("backend", "", "GPIO backend: periph or gpiocdev (default: auto)")
		realtime        = pflag.Bool("realtime", true, "use the realtime sync-table state machine")
		sysfsRoot       = pflag.String("sysfs-root", "", "optional sysfs-like publication root")
		configFile      = pflag.StringP("config", "f", "", "optional YAML config file")
		validateIDs     = pflag.Bool("validate-ids", false, "drop frames from unknown transmitter ids")
		verbose         = pflag.BoolP("verbose", "v", false, "verbose logging")
		quiet           = pflag.BoolP("quiet", "q", false, "only log errors")
	)
	pflag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile, cfg)
		if err != nil {
			return usageExitCode, err
		}
	}
	cfg.RxPin = *rxPin
	cfg.Backend = *backend
	cfg.AnalyzerMode = *analyzer
	cfg.RealtimeMode = *realtime
	cfg.DecoderDelayMs = *decoderDelaySec * 1000
	cfg.BitsToSample = *bitsToSample
	cfg.CollectIdenticalCodes = !*noRepeat
	cfg.JSONOutput = *jsonOutput
	cfg.Histogram = *histogram
	cfg.SyncMinUs = *syncMinUs
	cfg.SyncMaxUs = *syncMaxUs
	cfg.BitDividerUs = *dividerUs
	cfg.SysfsRoot = *sysfsRoot
	cfg.ValidateTransmitterIDs = *validateIDs
	cfg.Verbose = *verbose
	cfg.Quiet = *quiet
	cfg.SyncOnLow, cfg.SyncOnHigh = polarity(*syncOn)
	cfg.SampleOnLow, cfg.SampleOnHigh = polarity(*sampleOn)

	logger := log.New(colorable.NewColorableStderr())
	switch {
	case cfg.Quiet:
		logger.SetLevel(log.ErrorLevel)
	case cfg.Verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	pin, err := openPin(cfg)
	if err != nil {
		return initFailedExitCode, fmt.Errorf("opening rx pin: %w", err)
	}
	defer pin.Halt()

	store := matrix.New(4096, cfg.CollectIdenticalCodes)

	var handlers []bus.Handler
	if cfg.JSONOutput {
		handlers = append(handlers, jsonHandler(os.Stdout))
	}
	if cfg.SysfsRoot != "" {
		handlers = append(handlers, sysfssink.New(cfg.SysfsRoot).Handler())
	}
	b := bus.New(bus.Multi(handlers...))

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	ring := pulse.NewRing(pulse.DefaultRingSize)

	var sm *pulse.StateMachine
	if cfg.RealtimeMode {
		sm = pulse.NewStateMachine(cfg.AnalyzerMode,
			time.Duration(cfg.SyncMinUs)*time.Microsecond,
			time.Duration(cfg.SyncMaxUs)*time.Microsecond,
			time.Duration(cfg.BitDividerUs)*time.Microsecond,
			cfg.BitsToSample,
			func(f pulse.Frame) {
				store.Store(f.Protocol, f.Raw, time.Now())
			})
	}

	sampler := pulse.NewSampler(pin, ring, cfg.NoiseThresholdUs, cfg.SampleOnLow, cfg.SampleOnHigh, sm)

	samplerErrCh := make(chan error, 1)
	go func() { samplerErrCh <- sampler.Run(ctx) }()

	if !cfg.RealtimeMode {
		go runStreamDecoder(ctx, ring, store, cfg, logger)
	}

	if cfg.Histogram {
		go histogramLoop(ctx, ring, cfg)
	}

	runDispatchLoop(ctx, store, cfg, b, logger)

	select {
	case err := <-samplerErrCh:
		if err != nil {
			return initFailedExitCode, err
		}
	default:
	}
	return 0, nil
}

// polarity translates the -s/-S encoding (0=LOW 1=HIGH 2=EDGE) into
// the low/high advance flags the sampler expects.
func polarity(mode int) (onLow, onHigh bool) {
	switch mode {
	case 1:
		return false, true
	case 2:
		return true, true
	default:
		return true, false
	}
}

func openPin(cfg config.Config) (pulse.Pin, error) {
	backend := cfg.Backend
	if backend == "" || backend == "periph" {
		if err := pulse.InitPeriphHost(); err == nil {
			if pin, err := pulse.OpenPeriphPin(cfg.RxPin); err == nil {
				return pin, nil
			}
		}
		if backend == "periph" {
			return nil, fmt.Errorf("periph backend requested but unavailable for %s", cfg.RxPin)
		}
	}
	chip, offset, err := pulse.ParsePinName(cfg.RxPin)
	if err != nil {
		return nil, err
	}
	return pulse.OpenGpiocdevPin(chip, offset)
}

func runStreamDecoder(ctx context.Context, ring *pulse.Ring, store *matrix.Store, cfg config.Config, logger *log.Logger) {
	dec := decoder.New(decoder.DefaultConfig())
	var lastConsumed uint32
	ticker := time.NewTicker(cfg.DecoderDelay())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			head := ring.Head()
			if head <= lastConsumed {
				continue
			}
			low, high := ring.Slice(lastConsumed, head)
			lastConsumed = head
			for _, r := range dec.Run(low, high) {
				store.Store(r.Protocol, r.Raw, time.Now())
				if cfg.Verbose {
					logger.Debug("decoded raw frame", "protocol", r.Protocol, "bits", r.Bits)
				}
			}
		}
	}
}

func runDispatchLoop(ctx context.Context, store *matrix.Store, cfg config.Config, b *bus.Bus, logger *log.Logger) {
	ticker := time.NewTicker(cfg.DecoderDelay())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, entry := range store.Dispatch(time.Now()) {
				evt, err := dispatch.Decode(entry, cfg)
				if err != nil {
					if cfg.Verbose {
						logger.Debug("frame dropped", "protocol", entry.Protocol, "reason", err)
					}
					continue
				}
				b.Publish(evt)
			}
		}
	}
}

func jsonHandler(out *os.File) bus.Handler {
	enc := json.NewEncoder(out)
	return func(evt bus.Event) {
		doc := map[string]interface{}{
			"type":   evt.Protocol.String(),
			"raw":    fmt.Sprintf("0x%x", evt.Raw),
			"repeat": evt.Repeat,
		}
		if evt.DeviceID != 0 {
			doc["id"] = fmt.Sprintf("0x%x", evt.DeviceID)
		}
		if evt.Channel != 0 {
			doc["channel"] = evt.Channel
		}
		switch evt.Protocol {
		case protocol.Flamingo28, protocol.Flamingo32:
			doc["command"] = evt.Value
			if evt.Protocol == protocol.Flamingo28 {
				doc["payload"] = evt.IValue2
				doc["rolling"] = evt.IValue1
			} else {
				doc["payload"] = evt.IValue1
			}
		case protocol.Nexus:
			doc["battery"] = evt.IValue2
			doc["humi"] = evt.IValue1
			doc["temp"] = fmt.Sprintf("%.1f", evt.FValue1)
		case protocol.Flamingo24:
			doc["payload"] = evt.Value
		}
		_ = enc.Encode(doc)
	}
}
