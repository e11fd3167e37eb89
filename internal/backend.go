package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/run"
	"github.com/pidwin/pidwin/internal/api"
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/loop"
	"github.com/pidwin/pidwin/internal/statistics"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

func RunDaemon() {
	config := configuration.CurrentConfig

	system, err := InitializeObjects(config)
	if err != nil {
		ui.Fatal("Unable to process loop configuration: %v", err)
	}
	defer system.Release()

	if len(system.Loops()) == 0 {
		ui.Fatal("No valid loop configurations, exiting.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addr := fmt.Sprintf(":%d", port)
			server := api.CreateMetricsServer(prometheus.DefaultGatherer)

			g.Add(func() error {
				ui.Info("Serving metrics at %s%s", addr, api.EndpointPathMetrics)
				return startServer(server, addr)
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				if err := stopServer(server); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST api
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			rest := api.CreateRestService(prometheus.DefaultRegisterer)

			g.Add(func() error {
				ui.Info("Serving REST api at %s", addr)
				return startServer(rest, addr)
			}, func(err error) {
				ui.Info("Stopping REST api...")
				if err := stopServer(rest); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === control loops
		tickRate := config.TickRate
		if tickRate <= 0 {
			tickRate = 100 * time.Millisecond
		}
		monitor := NewSystemMonitor(system, tickRate)

		g.Add(func() error {
			err := monitor.Run(ctx)
			ui.Info("Control loops stopped after %d steps.", monitor.GetSteps())
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		ui.Error("%v", err)
		system.Release()
		os.Exit(1)
	} else {
		ui.Info("Done.")
	}
}

// InitializeObjects creates the controlled system of the given configuration
// and registers its loops and metrics.
func InitializeObjects(config configuration.Configuration) (*loop.System, error) {
	system, err := loop.NewSystem(config, true)
	if err != nil {
		return nil, err
	}
	system.Register()

	for _, l := range system.Loops() {
		ui.Info("Loop %s: control bias = %f, Kp = %f, control interval = %d [time steps]",
			l.GetId(), l.ControlBias(), l.Kp(), l.Interval())
	}

	loopCollector := statistics.NewLoopCollector(system.Loops())
	statistics.Register(loopCollector)

	return system, nil
}

func startServer(server *echo.Echo, addr string) error {
	if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func stopServer(server *echo.Echo) error {
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer timeoutCancel()
	return server.Shutdown(timeoutCtx)
}
