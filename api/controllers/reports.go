package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/fuelstation-backend/api/responses"
	"github.com/angelmondragon/fuelstation-backend/api/validators"
	"github.com/angelmondragon/fuelstation-backend/internal/reports"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
)

// RollupReader reads the daily sales rollups cached by the cron worker.
type RollupReader interface {
	Get(ctx context.Context, key string) (string, error)
	SalesRollupKey(day string) string
}

func ReportGenerate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		var body reports.ReportRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Generate(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

// ReportDaily serves the sales report of one day, from the rollup cache when
// the cron worker has already built it. Today and later days are always
// generated from the ledger since they can still take sales.
func ReportDaily(svc reports.Service, cache RollupReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}

		day := strings.TrimSpace(chi.URLParam(r, "date"))
		start, _, err := reports.ParseRange(day, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		closed := start.Before(time.Now().UTC().Truncate(24 * time.Hour))

		if cache != nil && closed {
			cached, err := cache.Get(r.Context(), cache.SalesRollupKey(day))
			switch {
			case err == nil && cached != "":
				w.Header().Set("X-Cache", "hit")
				responses.WriteSuccess(w, json.RawMessage(cached))
				return
			case err != nil && !errors.Is(err, redis.Nil) && logg != nil:
				logg.Warn(logg.WithFields(r.Context(), map[string]any{"day": day, "error": err.Error()}), "report.rollup_cache_unavailable")
			}
		}

		report, err := svc.Generate(r.Context(), reports.ReportRequest{StartDate: day, EndDate: day, Kind: enums.ReportKindSales.String()})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("X-Cache", "miss")
		responses.WriteSuccess(w, report)
	}
}
