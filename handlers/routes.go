package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"tubewise/services/interactions"
	"tubewise/services/library"
	"tubewise/services/session"
)

// Deps carries the shared services the views are built from.
type Deps struct {
	Backend  Backend
	Store    *session.Store
	Cards    *interactions.Registry
	Library  *library.Service
	Recorder *interactions.Recorder
	Renderer *Renderer
	Logger   *log.Logger
}

// Register mounts every page, fragment and asset route on r.
func Register(r *mux.Router, d Deps) {
	home := NewHomeHandler(d.Backend, d.Store, d.Cards, d.Renderer)
	lib := NewLibraryHandler(d.Library, d.Cards, d.Renderer)
	cards := NewCardHandler(d.Cards, d.Recorder, d.Renderer)
	admin := NewAdminHandler(d.Backend, d.Renderer)
	profile := NewProfileHandler(d.Backend, d.Renderer)
	register := NewRegisterHandler(d.Backend, d.Renderer)
	debug := NewDebugHandler(d.Logger)

	r.HandleFunc("/", home.Index).Methods(http.MethodGet)
	r.HandleFunc("/search", home.Search).Methods(http.MethodPost)

	r.HandleFunc("/history", lib.Show(library.KindHistory)).Methods(http.MethodGet)
	r.HandleFunc("/watch-later", lib.Show(library.KindWatchLater)).Methods(http.MethodGet)
	r.HandleFunc("/library/{listId}/{videoId}", lib.Remove).Methods(http.MethodDelete)

	r.HandleFunc("/cards/{cardId}/actions/{action}", cards.Act).Methods(http.MethodPost)

	r.HandleFunc("/admin", admin.Form).Methods(http.MethodGet)
	r.HandleFunc("/admin/ingest", admin.Ingest).Methods(http.MethodPost)

	r.HandleFunc("/profile", profile.Show).Methods(http.MethodGet)
	r.HandleFunc("/register", register.Form).Methods(http.MethodGet)
	r.HandleFunc("/register", register.Submit).Methods(http.MethodPost)

	r.HandleFunc("/debug/log", debug.Capture).Methods(http.MethodPost)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS())))).Methods(http.MethodGet)
}
