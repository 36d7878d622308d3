// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin exposes the store's operational HTTP surface: runtime
// log-level control, Prometheus metrics, and a debug snapshot dump of
// the tuple space.
package admin

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/lindadb/ldb/co"
	"github.com/lindadb/ldb/log"
	"github.com/lindadb/ldb/metrics"
)

// Snapshotter is the minimal view of a store.Store the debug snapshot
// endpoint needs; kept as an interface here so admin never imports
// package store and create an import cycle with cmd/ldb wiring.
type Snapshotter interface {
	DebugDump() []byte
}

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

type errorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func writeError(w http.ResponseWriter, errCode int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errCode)
	json.NewEncoder(w).Encode(errorResponse{
		ErrorCode:    errCode,
		ErrorMessage: errMsg,
	})
}

func getLogLevelHandler(logLevel *slog.LevelVar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := logLevelResponse{
			CurrentLevel: logLevel.Level().String(),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to encode response")
		}
	}
}

func postLogLevelHandler(logLevel *slog.LevelVar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req logLevelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		switch req.Level {
		case "debug":
			logLevel.Set(log.LevelDebug)
		case "info":
			logLevel.Set(log.LevelInfo)
		case "warn":
			logLevel.Set(log.LevelWarn)
		case "error":
			logLevel.Set(log.LevelError)
		case "trace":
			logLevel.Set(log.LevelTrace)
		case "crit":
			logLevel.Set(log.LevelCrit)
		default:
			writeError(w, http.StatusBadRequest, "Invalid verbosity level")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(logLevelResponse{CurrentLevel: logLevel.Level().String()})
	}
}

func logLevelHandler(logLevel *slog.LevelVar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getLogLevelHandler(logLevel).ServeHTTP(w, r)
		case http.MethodPost:
			postLogLevelHandler(logLevel).ServeHTTP(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// snapshotHandler serves a snappy-compressed dump of every tuple
// currently in the space, wire-encoded per package wire's §6 format.
func snapshotHandler(store Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(store.DebugDump())
	}
}

// HTTPHandler builds the full admin router: /admin/loglevel,
// /admin/metrics (delegating to package metrics' Prometheus handler),
// and /admin/debug/snapshot. store may be nil, in which case the
// snapshot endpoint responds 404 — useful for tests that only care
// about log-level handling.
func HTTPHandler(logLevel *slog.LevelVar, store Snapshotter) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/admin/loglevel", logLevelHandler(logLevel))
	router.Handle("/admin/metrics", metrics.HTTPHandler())
	if store != nil {
		router.HandleFunc("/admin/debug/snapshot", snapshotHandler(store))
	}
	return handlers.CompressHandler(router)
}

// StartServer binds addr and serves HTTPHandler in the background,
// returning the reachable base URL and a stop func that closes the
// listener and waits for the serving goroutine to exit.
func StartServer(addr string, logLevel *slog.LevelVar, store Snapshotter) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           HTTPHandler(logLevel, store),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/admin", func() {
		srv.Close()
		goes.Wait()
	}, nil
}
