// Command gateway runs the REST-to-gRPC gateway for the library backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"library-gateway/client"
	"library-gateway/config"
	"library-gateway/discovery"
	"library-gateway/server"
)

const backendService = "library-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().
		Timestamp().
		Str("service", "library-gateway").
		Logger()

	contract, err := client.LoadContract(cfg.ProtoPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load proto contract")
	}

	target := cfg.BackendHost
	if len(cfg.EtcdEndpoints) > 0 {
		resolved, err := resolveBackend(cfg.EtcdEndpoints, log)
		if err != nil {
			log.Fatal().Err(err).Msg("resolve backend from etcd")
		}
		target = resolved
	}

	cli, err := client.Dial(target, contract, log)
	if err != nil {
		log.Fatal().Err(err).Msg("dial backend")
	}
	log.Info().Str("backend", target).Msg("connected to backend")

	srv := server.New(cfg, cli, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		// Drain in-flight requests before releasing the backend connection.
		if err := srv.Shutdown(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
		if err := cli.Close(); err != nil {
			log.Error().Err(err).Msg("close backend connection")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("serve")
		}
	}
}

// resolveBackend picks one registered backend instance from etcd. The choice
// happens once: the gateway dials a single long-lived connection and does not
// re-balance per call.
func resolveBackend(endpoints []string, log zerolog.Logger) (string, error) {
	reg, err := discovery.New(endpoints)
	if err != nil {
		return "", err
	}
	defer reg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	instances, err := reg.Resolve(ctx, backendService)
	if err != nil {
		return "", err
	}
	inst, err := (&discovery.RoundRobin{}).Pick(instances)
	if err != nil {
		return "", err
	}
	log.Info().Int("instances", len(instances)).Str("picked", inst.Addr).Msg("backend discovered")
	return inst.Addr, nil
}
