package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"tubewise/models"
	"tubewise/services/interactions"
	"tubewise/services/session"
)

const searchFailedMessage = "Backend error. Is the recommendation service running?"

type recommendAPI interface {
	Recommend(ctx context.Context, query string) (*models.Recommendation, error)
}

// HomeHandler serves the search view. The last query and result live in the
// session store, so returning to the page re-renders them without a backend
// call.
type HomeHandler struct {
	api      recommendAPI
	store    *session.Store
	cards    *interactions.Registry
	renderer *Renderer
}

type homePageData struct {
	Page
	Query      string
	Loading    bool
	HasResult  bool
	AIResponse string
	Cards      []CardView
	Error      string
}

func NewHomeHandler(api recommendAPI, store *session.Store, cards *interactions.Registry, renderer *Renderer) *HomeHandler {
	return &HomeHandler{api: api, store: store, cards: cards, renderer: renderer}
}

// Index handles GET /.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "")
}

// Search handles POST /search. A blank query is ignored; otherwise the result
// replaces the stored one and the browser is sent back to the home view.
func (h *HomeHandler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	query := r.PostForm.Get("query")
	if strings.TrimSpace(query) == "" {
		h.store.SetQuery(query)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.store.Begin(query)
	result, err := h.api.Recommend(r.Context(), query)
	if err != nil {
		h.store.Fail()
		log.Printf("[home] recommendation for %q failed: %v", query, err)
		h.render(w, http.StatusBadGateway, searchFailedMessage)
		return
	}
	if result.Videos == nil {
		result.Videos = []models.Video{}
	}
	h.store.Finish(result)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *HomeHandler) render(w http.ResponseWriter, status int, errMsg string) {
	state := h.store.Snapshot()
	data := homePageData{
		Page:    h.renderer.Page("/"),
		Query:   state.Query,
		Loading: state.Loading,
		Error:   errMsg,
	}

	if state.HasResult() {
		data.HasResult = true
		data.AIResponse = state.Result.AIResponse
		entries := make([]interactions.Entry, 0, len(state.Result.Videos))
		for _, v := range state.Result.Videos {
			entries = append(entries, interactions.Entry{Video: v})
		}
		mount := h.cards.Mount("home", entries)
		data.Cards = make([]CardView, 0, len(mount.Cards))
		for _, c := range mount.Cards {
			data.Cards = append(data.Cards, newCardView(c, false))
		}
	}

	h.renderer.RenderPage(w, status, "home", data)
}
