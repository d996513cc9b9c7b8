package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/fuelstation-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
)

func uuidParam(r *http.Request, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label).
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// operatorID returns the authenticated operator, or nil when the context carries none.
func operatorID(r *http.Request) *uuid.UUID {
	id, err := uuid.Parse(middleware.OperatorIDFromContext(r.Context()))
	if err != nil {
		return nil
	}
	return &id
}
