package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"tubewise/models"
)

type registerAPI interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
}

// RegisterHandler creates new backend users from a form.
type RegisterHandler struct {
	api      registerAPI
	renderer *Renderer
}

type registerPageData struct {
	Page
	Username  string
	Email     string
	Interests string
	Message   string
	Failed    bool
}

func NewRegisterHandler(api registerAPI, renderer *Renderer) *RegisterHandler {
	return &RegisterHandler{api: api, renderer: renderer}
}

// Form handles GET /register.
func (h *RegisterHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, http.StatusOK, "register", registerPageData{Page: h.renderer.Page("/register")})
}

// Submit handles POST /register.
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := registerPageData{
		Page:      h.renderer.Page("/register"),
		Username:  strings.TrimSpace(r.PostForm.Get("username")),
		Email:     strings.TrimSpace(r.PostForm.Get("email")),
		Interests: r.PostForm.Get("interests"),
	}
	if data.Username == "" || data.Email == "" {
		data.Message = "Username and email are required."
		data.Failed = true
		h.renderer.RenderPage(w, http.StatusBadRequest, "register", data)
		return
	}

	reg := models.Registration{
		Username:  data.Username,
		Email:     data.Email,
		Interests: SplitInterests(data.Interests),
	}
	user, err := h.api.Register(r.Context(), reg)
	if err != nil {
		log.Printf("[register] create user %q failed: %v", reg.Username, err)
		data.Message = "Registration failed. Check backend logs."
		data.Failed = true
		h.renderer.RenderPage(w, http.StatusBadGateway, "register", data)
		return
	}

	data.Message = fmt.Sprintf("User '%s' created! ID: %d. Initial preference vector generated.", user.Username, user.UserID)
	data.Interests = ""
	h.renderer.RenderPage(w, http.StatusOK, "register", data)
}

// SplitInterests turns "ai, go ,,rust" into ["ai" "go" "rust"].
func SplitInterests(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
