package controllers

import (
	"net/http"

	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JobHive-Env", cfg.App.Env)
		responses.WriteResult(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JobHive-Env", cfg.App.Env)
		responses.WriteResult(w, map[string]string{"status": "ready"})
	}
}
