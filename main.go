package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/f13rce/mapip/ascii"
	"github.com/f13rce/mapip/config"
	"github.com/f13rce/mapip/lookup"
	"github.com/f13rce/mapip/tui"
)

var debugLogger *log.Logger

func debugLog(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func showHelp() {
	fmt.Printf(`mapip - show your external IP location on an ASCII world map

DESCRIPTION:
    Terminal application that resolves your public IP address, geolocates
    it and marks it on a world map rendered from a bitmap at the current
    terminal size. The map is rebuilt on resize and the address is
    re-checked periodically.

USAGE:
    mapip [OPTIONS]

OPTIONS:
    -h               Show this help message
    -r <rate>        Refresh rate in frames per second (default: 10)
    -i <seconds>     How often to re-check the external IP (default: 60)
    -c <filename>    TOML configuration file
    -d <filename>    Enable debug logging to specified file
    -m <filename>    Map image, PNG or JPEG (default: map.png; a built-in
                     map is used when the file is missing)
    -g <filename>    MaxMind City database for offline geolocation
    -f               Fine 70-level character ramp instead of the 9-level one
    -o               Mark ocean cells with dots

CONTROLS:
    Q, X, Esc, Ctrl+C    Exit the application

EXIT CODES:
    0    Clean exit
    1    Startup failure (bad flags, no resolvable location)

EXAMPLES:
    mapip                        # defaults: 10 fps, check IP every 60s
    mapip -r 2 -i 300            # slow refresh, rare IP checks
    mapip -f -o                  # fine ramp with visible ocean
    mapip -g GeoLite2-City.mmdb  # geolocate against a local database
`)
}

func main() {
	var refreshRate = flag.Float64("r", 10.0, "Refresh rate in frames per second")
	var checkInterval = flag.Int("i", 60, "IP check interval in seconds")
	var configFile = flag.String("c", "", "TOML configuration file")
	var debugFile = flag.String("d", "", "Debug log filename")
	var mapPath = flag.String("m", "map.png", "Map image path")
	var mmdbPath = flag.String("g", "", "MaxMind City database path")
	flag.Bool("f", false, "Use the fine 70-level character ramp")
	flag.Bool("o", false, "Mark ocean cells with dots")
	var showHelpFlag = flag.Bool("h", false, "Show help")

	flag.Parse()

	if *showHelpFlag {
		showHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the config file.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["r"] {
		cfg.Display.RefreshRate = *refreshRate
	}
	if set["i"] {
		cfg.Lookup.CheckInterval = *checkInterval
	}
	if set["m"] {
		cfg.Map.Path = *mapPath
	}
	if set["g"] {
		cfg.Lookup.MMDB = *mmdbPath
	}
	if set["f"] {
		cfg.Display.Charset = "fine"
	}
	if set["o"] {
		cfg.Display.MarkOcean = true
	}

	if cfg.Display.RefreshRate <= 0 {
		fmt.Fprintf(os.Stderr, "Error: Refresh rate must be greater than 0\n")
		os.Exit(1)
	}
	if cfg.Lookup.CheckInterval < 1 {
		fmt.Fprintf(os.Stderr, "Error: IP check interval must be at least 1 second\n")
		os.Exit(1)
	}
	interval := time.Duration(cfg.Lookup.CheckInterval) * time.Second
	if float64(interval) <= float64(time.Second)/cfg.Display.RefreshRate {
		fmt.Fprintf(os.Stderr, "Error: IP check interval must be longer than the frame interval\n")
		os.Exit(1)
	}

	if *debugFile != "" {
		file, err := os.OpenFile(*debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Cannot open debug log file '%s': %v\n", *debugFile, err)
			os.Exit(1)
		}
		defer file.Close()
		debugLogger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
		debugLog("Debug logging started for mapip")
	}

	timeout := time.Duration(cfg.Lookup.Timeout) * time.Second
	var resolver lookup.Resolver
	if cfg.Lookup.MMDB != "" {
		mmdb, err := lookup.NewMMDBResolver(cfg.Lookup.IPURL, cfg.Lookup.MMDB, timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer mmdb.Close()
		resolver = mmdb
		debugLog("Geolocation: local database %s", cfg.Lookup.MMDB)
	} else {
		resolver = lookup.NewHTTPResolver(cfg.Lookup.IPURL, cfg.Lookup.GeoURL, timeout)
		debugLog("Geolocation: %s via %s", cfg.Lookup.GeoURL, cfg.Lookup.IPURL)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One synchronous resolve before the screen comes up: with no location
	// at all there is nothing to display.
	startupCtx, startupCancel := context.WithTimeout(ctx, 2*timeout)
	initial, err := resolver.Resolve(startupCtx)
	startupCancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not determine your location: %v\n", err)
		os.Exit(1)
	}
	debugLog("Startup location: %s", initial)

	terminal, err := tui.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing terminal: %v\n", err)
		os.Exit(1)
	}
	defer terminal.Close()
	terminal.StartEventLoop()

	poller := lookup.NewPoller(resolver, interval, debugLogger)
	poller.Start(ctx)

	loop := tui.NewLoop(terminal, poller.Updates(), initial, tui.Options{
		RefreshRate:   cfg.Display.RefreshRate,
		AspectFactor:  cfg.Display.AspectFactor,
		LatCorrection: cfg.Projection.LatCorrection,
		FineRamp:      cfg.Display.Charset == "fine",
		MarkOcean:     cfg.Display.MarkOcean,
		MapPath:       cfg.Map.Path,
		Fallback:      ascii.EarthBitmap(),
		CheckInterval: interval,
		Logger:        debugLogger,
	})
	loop.Run(ctx)

	terminal.Close()
	fmt.Println("Exiting...")
}
