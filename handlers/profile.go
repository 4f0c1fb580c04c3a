package handlers

import (
	"context"
	"log"
	"net/http"

	"tubewise/models"
	"tubewise/services/recommender"
)

type profileAPI interface {
	GetUser(ctx context.Context) (*models.User, error)
}

// ProfileHandler shows the active user's account.
type ProfileHandler struct {
	api      profileAPI
	renderer *Renderer
}

type profilePageData struct {
	Page
	User     *models.User
	NotFound bool
}

func NewProfileHandler(api profileAPI, renderer *Renderer) *ProfileHandler {
	return &ProfileHandler{api: api, renderer: renderer}
}

// Show handles GET /profile. Any failure renders the "user not found" state,
// which names the configured user id.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := profilePageData{Page: h.renderer.Page("/profile")}

	user, err := h.api.GetUser(r.Context())
	switch {
	case recommender.IsNotFound(err):
		log.Printf("[profile] user %d does not exist", data.UserID)
		data.NotFound = true
	case err != nil:
		log.Printf("[profile] load user %d failed: %v", data.UserID, err)
		data.NotFound = true
	default:
		data.User = user
	}
	h.renderer.RenderPage(w, http.StatusOK, "profile", data)
}
