package handlers

import (
	"encoding/json"
	"net/http"

	"homedesign/internal/gallery"
	"homedesign/internal/genclient"
	"homedesign/internal/infra"
	"homedesign/internal/quota"
)

// App holds the dependencies shared by all handlers.
type App struct {
	Config       *infra.Config
	Logger       infra.Logger
	SQL          infra.SQLExecutor // nil when no database is configured
	Gallery      *gallery.Store
	Client       *genclient.Client
	Gate         quota.Gate
	Entitlements quota.Entitlements
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
