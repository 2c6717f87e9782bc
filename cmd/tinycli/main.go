package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/drake/tinycli/builtin"
	"github.com/drake/tinycli/config"
	"github.com/drake/tinycli/console"
	"github.com/drake/tinycli/debug"
	"github.com/drake/tinycli/history"
	"github.com/drake/tinycli/internal/ring"
	"github.com/drake/tinycli/network"
	"github.com/drake/tinycli/script"
	"github.com/drake/tinycli/sensor"
	"github.com/drake/tinycli/timer"
	"github.com/drake/tinycli/vars"
)

// telemetryPeriod paces the data stream while the log variable is set;
// tickPeriod is the cadence of the host's housekeeping job between inputs.
const (
	telemetryPeriod = 500 * time.Millisecond
	tickPeriod      = 100 * time.Millisecond
)

func main() {
	listen := flag.String("listen", "", "serve the console over TCP on this address instead of stdin")
	scriptPath := flag.String("script", "", "Lua script defining extra commands (default: init.lua in the config dir)")
	histPath := flag.String("history", "", "history database path (default: config dir)")
	flag.Parse()

	if err := run(*listen, *scriptPath, *histPath); err != nil {
		fmt.Fprintln(os.Stderr, "tinycli:", err)
		os.Exit(1)
	}
}

func run(listen, scriptPath, histPath string) error {
	reg := vars.NewRegistry()
	registerVars(reg)
	cmds := builtin.Commands(reg)

	if scriptPath == "" {
		if _, err := os.Stat(config.InitFile()); err == nil {
			scriptPath = config.InitFile()
		}
	}
	if scriptPath != "" {
		eng := script.NewEngine(reg)
		defer eng.Close()
		if err := eng.DoFile(scriptPath); err != nil {
			return fmt.Errorf("load script %s: %w", scriptPath, err)
		}
		cmds = append(cmds, eng.Commands()...)
	}

	cfg := console.Config{Commands: cmds}

	if listen != "" {
		cfg.Banner = plainBanner()
		srv := network.NewServer(cfg)
		return srv.ListenAndServe(listen)
	}
	return runTerminal(cfg, reg, histPath)
}

// registerVars declares the demo variable set the builtins operate on.
func registerVars(reg *vars.Registry) {
	reg.BoolVar("debug", "Enable debug output", false)
	reg.BoolVar("verbose", "Enable verbose logging", false)
	reg.BoolVar("test", "Enable test mode", false)
	reg.BoolVar("led", "Control LED state", true)
	reg.BoolVar("log", "Enable continuous data logging", false)
	reg.BoolVar("imu_cal", "Trigger IMU calibration", false)
	reg.IntVar("rate", "Sample rate in Hz", 100, 1, 1000)
	reg.IntVar("loglevel", "Log level (0=none, 3=all)", 2, 0, 3)
	reg.IntVar("filter", "Filter order", 3, 1, 10)
	reg.IntVar("bufsize", "Buffer size", 256, 64, 1024)
	reg.FloatVar("temp", "Temperature in Celsius", 25.5)
	reg.FloatVar("vdd", "Supply voltage", 3.3)
	reg.FloatVar("thresh", "Detection threshold", 0.5)
}

// runTerminal drives an interactive session on a raw-mode terminal. Input is
// pumped through a cancellable reader into a ring source, so the engine's
// poll loop never blocks on stdin.
func runTerminal(cfg console.Config, reg *vars.Registry, histPath string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("stdin is not a terminal (use -listen for non-interactive hosts)")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	if histPath == "" {
		if err := os.MkdirAll(config.Dir(), 0o755); err == nil {
			histPath = config.HistoryFile()
		}
	}
	if histPath != "" {
		if store, err := history.OpenBolt(histPath); err == nil {
			cfg.HistoryStore = store
			defer store.Close()
		}
		// An unopenable history db downgrades to a session-local ring.
	}

	cr, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return fmt.Errorf("stdin reader: %w", err)
	}
	defer cr.Cancel()

	src := ring.New(1024)
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 256)
		for {
			n, err := cr.Read(buf)
			for _, b := range buf[:n] {
				// Ctrl-C and Ctrl-D end the session; everything
				// else is the engine's business.
				if b == 0x03 || b == 0x04 {
					cr.Cancel()
					return
				}
				src.Put(b)
			}
			if err != nil {
				return
			}
		}
	}()

	cfg.Source = src
	cfg.Sink = os.Stdout
	cfg.Banner = styledBanner()
	sess, err := console.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	debug.NewMonitor(ctx, sess).Start()

	sampler := sensor.NewSim()
	logTick := timer.NewInterval(telemetryPeriod)

	// Pressing Enter stops a running data stream, so the prompt stays
	// reachable while telemetry scrolls.
	var logging bool
	var linesAtStart uint64

	// The scheduler wakes the loop between inputs; jobs run on this
	// goroutine, so the telemetry closure may read loop state.
	jobs := make(chan func(), 1)
	sched := timer.NewScheduler(jobs)
	defer sched.Stop()
	stopTelemetry := sched.Every(tickPeriod, func() {
		if !logging || !logTick.Elapsed() {
			return
		}
		r, err := sampler.Sample()
		if err != nil {
			return
		}
		fmt.Fprintf(os.Stdout,
			"\r\nacc % 7.2f % 7.2f % 7.2f  gyr % 7.2f % 7.2f % 7.2f\r\n",
			r.Acc[0], r.Acc[1], r.Acc[2], r.Gyro[0], r.Gyro[1], r.Gyro[2])
	})
	defer stopTelemetry()

	for {
		select {
		case <-done:
			os.Stdout.WriteString("\r\n")
			return nil
		case <-src.Wakeup():
			sess.Pump()
		case job := <-jobs:
			job()
		}

		if v, ok := reg.Lookup("imu_cal"); ok && v.Bool() {
			sampler.Reset()
			v.SetBool(false)
		}
		if v, ok := reg.Lookup("log"); ok {
			switch {
			case v.Bool() && !logging:
				logging = true
				linesAtStart = sess.Stats().Lines
			case v.Bool() && sess.Stats().Lines > linesAtStart:
				v.SetBool(false)
				logging = false
			case !v.Bool():
				logging = false
			}
		}
	}
}

func plainBanner() string {
	return "\r\n========================================\r\n" +
		"  tinycli debug console\r\n" +
		"========================================\r\n" +
		"Type 'help' for commands\r\n" +
		"Arrow keys: history | Tab: completion\r\n"
}

func styledBanner() string {
	p := termenv.ColorProfile()
	title := termenv.String("tinycli debug console").Foreground(p.Color("6")).Bold().String()
	return "\r\n" + title + "\r\n" +
		"Type 'help' for commands\r\n" +
		"Arrow keys: history | Tab: completion\r\n"
}
