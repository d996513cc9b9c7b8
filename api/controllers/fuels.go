package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/fuelstation-backend/api/responses"
	"github.com/angelmondragon/fuelstation-backend/api/validators"
	"github.com/angelmondragon/fuelstation-backend/internal/fuels"
	"github.com/angelmondragon/fuelstation-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
)

type fuelRequest struct {
	Name              string           `json:"name" validate:"required,max=100"`
	UnitPrice         *decimal.Decimal `json:"unit_price" validate:"required"`
	QuantityOnHand    *decimal.Decimal `json:"quantity_on_hand" validate:"required"`
	LowStockThreshold *decimal.Decimal `json:"low_stock_threshold" validate:"required"`
}

func (r fuelRequest) toInput() fuels.FuelInput {
	return fuels.FuelInput{
		Name:              r.Name,
		UnitPrice:         *r.UnitPrice,
		QuantityOnHand:    *r.QuantityOnHand,
		LowStockThreshold: *r.LowStockThreshold,
	}
}

// FuelList returns every fuel; ?status=low_stock narrows it to fuels at or below threshold.
func FuelList(svc fuels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fuel service unavailable"))
			return
		}

		var (
			list []fuels.FuelDTO
			err  error
		)
		switch status := r.URL.Query().Get("status"); status {
		case "":
			list, err = svc.ListFuels(r.Context())
		case enums.StockStatusLow.String():
			list, err = svc.LowStock(r.Context())
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").WithDetails(map[string]any{"field": "status"})
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func FuelGet(svc fuels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fuel service unavailable"))
			return
		}

		id, err := uuidParam(r, "fuelId", "fuel id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fuel, err := svc.GetFuel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fuel)
	}
}

func FuelCreate(svc fuels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fuel service unavailable"))
			return
		}

		var payload fuelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fuel, err := svc.CreateFuel(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, fuel)
	}
}

// FuelUpdate replaces every editable field of the fuel.
func FuelUpdate(svc fuels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fuel service unavailable"))
			return
		}

		id, err := uuidParam(r, "fuelId", "fuel id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload fuelRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fuel, err := svc.UpdateFuel(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fuel)
	}
}

// FuelDelete removes a fuel once the caller confirms with ?confirm=true. Past
// sales keep their name and price snapshot.
func FuelDelete(svc fuels.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fuel service unavailable"))
			return
		}

		id, err := uuidParam(r, "fuelId", "fuel id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !validators.ParseQueryBool(r, "confirm") {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "confirmation required").
				WithDetails(map[string]any{"field": "confirm"}))
			return
		}

		if err := svc.DeleteFuel(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
