package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/fuelstation-backend/api/responses"
	"github.com/angelmondragon/fuelstation-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
)

const (
	envHeader        = "X-FuelStation-Env"
	readinessTimeout = 2 * time.Second
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and redis; either failing marks the instance not ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger, redisPinger pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := []struct {
			name string
			p    pinger
		}{{"database", dbPinger}, {"redis", redisPinger}}
		for _, check := range checks {
			if check.p == nil {
				continue
			}
			if err := check.p.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" unavailable").
					WithDetails(map[string]any{"dependency": check.name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
