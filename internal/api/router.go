// Package api serves the contact store over a small REST API.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/pdxmph/addressbook/internal/db"
)

// Store is the record store as seen by the API
type Store interface {
	ListContacts(ctx context.Context) ([]db.Summary, error)
	GetContact(ctx context.Context, id int64) (*db.Contact, error)
	AddContact(ctx context.Context, contact db.Contact) (int64, error)
	UpdateContact(ctx context.Context, contact db.Contact) (bool, error)
	DeleteContact(ctx context.Context, id int64) (bool, error)
	Ping(ctx context.Context) error
}

// readinessTimeout bounds the store ping behind /readiness
const readinessTimeout = 2 * time.Second

// NewRouter mounts the probes, /metrics and the contacts API under /api.
func NewRouter(title, version string, store Store, logger *slog.Logger) http.Handler {
	buildinfo := fmt.Sprintf("addressbook_build_info{goversion=%q,version=%q} 1\n", runtime.Version(), version)
	set := metrics.NewSet()

	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/readiness", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			logger.Warn("readiness check failed", "err", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		}
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, buildinfo)
		set.WritePrometheus(w)
		metrics.WriteProcessMetrics(w)
	})

	root := humago.New(mux, huma.DefaultConfig(title, version))
	api := huma.NewGroup(root, "/api")
	api.UseMiddleware(
		requestID,
		accessLog(logger),
		countRequests(set),
		recoverPanics(logger, set),
	)
	huma.AutoRegister(api, &Contacts{
		Store:        store,
		ErrorHandler: logContactError(logger),
	})

	return mux
}
