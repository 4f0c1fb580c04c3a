package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"tubewise/models"
	"tubewise/services/interactions"
	"tubewise/services/library"
)

type interactionRecorder interface {
	Record(ctx context.Context, videoID string, action models.Action)
}

// CardHandler applies interaction buttons to mounted cards. The card updates
// right away; the backend write happens in the background and its outcome
// never reaches the page.
type CardHandler struct {
	cards    *interactions.Registry
	recorder interactionRecorder
	renderer *Renderer
}

func NewCardHandler(cards *interactions.Registry, recorder interactionRecorder, renderer *Renderer) *CardHandler {
	return &CardHandler{cards: cards, recorder: recorder, renderer: renderer}
}

// Act handles POST /cards/{cardId}/actions/{action}.
func (h *CardHandler) Act(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	action, err := models.ParseAction(vars["action"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	card, err := h.cards.Card(vars["cardId"])
	if err != nil {
		http.Error(w, "card is no longer on screen, reload the page", lookupStatus(err))
		return
	}

	if _, err := card.Apply(action); err != nil {
		log.Printf("[cards] apply %s to %s: %v", action, card.Video.VideoID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.recorder.Record(r.Context(), card.Video.VideoID, action)

	removable := card.View == string(library.KindHistory)
	h.renderer.RenderPartial(w, http.StatusOK, "card", newCardView(card, removable))
}
