package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"tubewise/services/interactions"
	"tubewise/services/library"
)

// LibraryHandler serves the history and watch-later lists.
type LibraryHandler struct {
	lists    *library.Service
	cards    *interactions.Registry
	renderer *Renderer
}

type libraryPageData struct {
	Page
	Heading   string
	ListID    string
	Removable bool
	Cards     []CardView
}

func NewLibraryHandler(lists *library.Service, cards *interactions.Registry, renderer *Renderer) *LibraryHandler {
	return &LibraryHandler{lists: lists, cards: cards, renderer: renderer}
}

// Show returns the handler for one list kind.
func (h *LibraryHandler) Show(kind library.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := libraryPageData{
			Page:      h.renderer.Page("/" + string(kind)),
			Heading:   kind.Title(),
			Removable: kind.Removable(),
		}

		list, err := h.lists.Open(r.Context(), kind)
		if err != nil {
			// Rendered as the empty state.
			log.Printf("[library] load %s failed: %v", kind, err)
			h.renderer.RenderPage(w, http.StatusOK, "library", data)
			return
		}

		items := list.Items()
		entries := make([]interactions.Entry, 0, len(items))
		for i := range items {
			item := items[i]
			entries = append(entries, interactions.Entry{Video: *item.Video, Interaction: &item})
		}
		mount := h.cards.MountAs(list.ID, string(kind), entries)

		data.ListID = list.ID
		data.Cards = make([]CardView, 0, len(mount.Cards))
		for _, c := range mount.Cards {
			data.Cards = append(data.Cards, newCardView(c, data.Removable))
		}
		h.renderer.RenderPage(w, http.StatusOK, "library", data)
	}
}

// Remove handles DELETE /library/{listId}/{videoId}. The entry leaves the page
// only after the backend confirmed the delete; on failure the response is an
// error status and the card stays in place.
func (h *LibraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listID, videoID := vars["listId"], vars["videoId"]

	list, err := h.lists.List(listID)
	if err != nil {
		http.Error(w, "list is no longer open, reload the page", lookupStatus(err))
		return
	}
	if !list.Kind.Removable() {
		http.Error(w, "entries of this list cannot be removed", http.StatusMethodNotAllowed)
		return
	}

	if err := list.Remove(r.Context(), videoID); err != nil {
		log.Printf("[library] remove %s from %s failed: %v", videoID, list.Kind, err)
		http.Error(w, "could not remove video", http.StatusBadGateway)
		return
	}

	if list.Len() == 0 {
		h.renderer.RenderPartial(w, http.StatusOK, "empty-library", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// lookupStatus maps a failed card or list lookup to 410 when the thing was
// discarded.
func lookupStatus(err error) int {
	if errors.Is(err, library.ErrListClosed) || errors.Is(err, interactions.ErrCardNotMounted) {
		return http.StatusGone
	}
	return http.StatusInternalServerError
}
