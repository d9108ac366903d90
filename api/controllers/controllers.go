// Package controllers wires the domain services into chi handlers.
package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
)

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid id.").
			WithDetails(map[string]string{name: "must be a valid id"})
	}
	return id, nil
}
