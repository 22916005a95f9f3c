// SPDX-License-Identifier: BSD-3-Clause

// Command coolercontrold is the privileged cooling-control daemon (spec
// §1, §6 "CLI surface"): coolercontrold [--debug] [--version].
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/coolercontrol/coolercontrold/pkg/log"
	"github.com/coolercontrol/coolercontrold/pkg/notify"
	"github.com/coolercontrol/coolercontrold/service/daemon"
	"github.com/coolercontrol/coolercontrold/service/logbufsrv"
	"github.com/coolercontrol/coolercontrold/service/sleepwatch"
)

// defaultHealthAddr is the listen address for the GET /health and gRPC
// Health surfaces (spec §6); overridable via COOLERCONTROL_HEALTH_ADDR.
const defaultHealthAddr = ":11987"

// version is the daemon's reported release; overridden at build time with
// -ldflags "-X main.version=...".
var version = "dev"

const banner = "coolercontrold %s\n"

func main() {
	debug := flag.Bool("debug", false, "enable debug logging (also settable via COOLERCONTROL_LOG)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf(banner, version)
		os.Exit(0)
	}

	applyLogLevel(*debug)

	logbuf := logbufsrv.New(version, 0)
	log.SetExtraHandler(logbuf.Handler())

	healthAddr := defaultHealthAddr
	if v, ok := os.LookupEnv("COOLERCONTROL_HEALTH_ADDR"); ok {
		healthAddr = v
	}
	healthSrv := &http.Server{Addr: healthAddr, Handler: logbuf.HTTPHandler()}
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.GetGlobalLogger().Warn("health listener exited", "error", err)
		}
	}()

	notifier, err := notify.NewDBusDispatcher("coolercontrold")
	var dispatcher notify.Dispatcher = notify.NoopDispatcher{}
	if err != nil {
		log.GetGlobalLogger().Warn("desktop notifications unavailable, continuing without them", "error", err)
	} else {
		dispatcher = notifier
		defer notifier.Close()
	}

	d := daemon.New(
		daemon.WithSleepwatch(sleepwatch.New()),
		daemon.WithLogbufsrv(logbuf),
		daemon.WithNotifier(dispatcher),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = d.Run(ctx, nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	_ = healthSrv.Shutdown(shutdownCtx)
	shutdownCancel()

	if err != nil {
		log.GetGlobalLogger().Error("daemon exited with error", "error", err)
		os.Exit(1)
	}
}

// applyLogLevel honors --debug and the COOLERCONTROL_LOG environment
// variable (spec §6), setting zerolog's global level before any logger is
// constructed. A value debug forces debug level regardless of the
// environment variable.
func applyLogLevel(debug bool) {
	level := zerolog.InfoLevel
	if envLevel, ok := os.LookupEnv("COOLERCONTROL_LOG"); ok {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}
