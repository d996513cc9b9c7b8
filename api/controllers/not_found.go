package controllers

import (
	"net/http"

	"github.com/angelmondragon/fuelstation-backend/api/responses"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
	"github.com/angelmondragon/fuelstation-backend/pkg/logger"
)

func NotFound(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	}
}

func MethodNotAllowed(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	}
}
