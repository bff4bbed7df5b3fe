package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"itmo-bot/internal/app"
	"itmo-bot/internal/httputil"
)

const invalidRequestMessage = "Invalid request"

// apiRequest is the body of POST /api/request. The id is kept as raw
// JSON so whatever scalar the grader sends is echoed back unchanged.
type apiRequest struct {
	Query *string         `json:"query" validate:"required"`
	ID    json.RawMessage `json:"id" validate:"required"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	r := httputil.NewRouter(deps.Log)

	r.Get("/", homeHandler())
	r.Post("/api/request", requestHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("bot listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "ITMO Bot API. Send POST requests to /api/request.")
	}
}

func requestHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(deps.Log, w, http.StatusBadRequest, invalidRequestMessage, err)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		resp := deps.Bot.Handle(r.Context(), req.ID, *req.Query)
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
