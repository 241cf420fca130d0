package hatlights

// This module implements the network control surface.  Handlers never touch
// the configuration themselves, commands are handed to the network task
// through the inbox and the handler waits for the acknowledgment

import (
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logxi "github.com/mgutz/logxi/v1"

	"github.com/TeamNorCal/hatlights/model"
)

//go:embed assets/index.html
var indexPage []byte

const (
	// Request bodies beyond this are truncated
	maxCommandBody = 2048

	// DefaultAckTimeout bounds how long a request waits for the network task
	DefaultAckTimeout = 3 * time.Second
)

type ControlServer struct {
	inbox   *CommandInbox
	store   *model.Store
	timeout time.Duration
	logger  logxi.Logger
}

func NewControlServer(inbox *CommandInbox, store *model.Store, timeout time.Duration, logger logxi.Logger) (srv *ControlServer) {
	return &ControlServer{
		inbox:   inbox,
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Router returns the HTTP handler for the control surface
func (srv *ControlServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", srv.serveIndex)
	r.Post("/", srv.serveCommands)
	r.Get("/status", srv.serveStatus)
	return r
}

func (srv *ControlServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	srv.logger.Debug("connection request", "remote", r.RemoteAddr)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (srv *ControlServer) serveCommands(w http.ResponseWriter, r *http.Request) {
	body, errGo := io.ReadAll(io.LimitReader(r.Body, maxCommandBody))
	if errGo != nil {
		http.Error(w, errGo.Error(), http.StatusBadRequest)
		return
	}

	cmds := ParseCommands(string(body))
	srv.logger.Debug("command request", "remote", r.RemoteAddr, "commands", cmds)

	resp, err := srv.inbox.Submit(r.Context(), cmds, srv.timeout)
	if err != nil {
		srv.logger.Warn("command not acknowledged", "error", err.Error())
		http.Error(w, "commands queued but not yet applied", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, resp)
}

func (srv *ControlServer) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(srv.store.Snapshot())
}
