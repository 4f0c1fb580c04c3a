package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
)

const ingestFailedMessage = "Error: Could not ingest videos. Check backend logs."

const defaultIngestMax = 5

// IngestLimits are the batch sizes offered on the ingestion form.
var IngestLimits = []int{3, 5, 10}

type ingestionAPI interface {
	TriggerIngestion(ctx context.Context, topic string, maxResults int) (string, error)
}

// AdminHandler serves the ingestion form that seeds the backend catalogue.
type AdminHandler struct {
	api      ingestionAPI
	renderer *Renderer
}

type adminPageData struct {
	Page
	Topic   string
	Max     int
	Limits  []int
	Message string
	Failed  bool
}

func NewAdminHandler(api ingestionAPI, renderer *Renderer) *AdminHandler {
	return &AdminHandler{api: api, renderer: renderer}
}

// Form handles GET /admin.
func (h *AdminHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderPage(w, http.StatusOK, "admin", h.page(""))
}

// Ingest handles POST /admin/ingest. The backend's status line is shown
// verbatim; any failure shows a fixed message instead.
func (h *AdminHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := h.page(r.PostForm.Get("topic"))
	data.Max = parseIngestMax(r.PostForm.Get("max"))

	if strings.TrimSpace(data.Topic) == "" {
		data.Message = "Enter a topic to ingest."
		data.Failed = true
		h.renderer.RenderPage(w, http.StatusBadRequest, "admin", data)
		return
	}

	message, err := h.api.TriggerIngestion(r.Context(), data.Topic, data.Max)
	if err != nil {
		log.Printf("[admin] ingestion of %q (max %d) failed: %v", data.Topic, data.Max, err)
		data.Message = ingestFailedMessage
		data.Failed = true
		h.renderer.RenderPage(w, http.StatusBadGateway, "admin", data)
		return
	}

	log.Printf("[admin] ingestion of %q (max %d): %s", data.Topic, data.Max, message)
	data.Message = message
	data.Failed = strings.Contains(message, "Error")
	h.renderer.RenderPage(w, http.StatusOK, "admin", data)
}

func (h *AdminHandler) page(topic string) adminPageData {
	return adminPageData{
		Page:   h.renderer.Page("/admin"),
		Topic:  topic,
		Max:    defaultIngestMax,
		Limits: IngestLimits,
	}
}

// parseIngestMax accepts only the offered batch sizes.
func parseIngestMax(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultIngestMax
	}
	for _, limit := range IngestLimits {
		if n == limit {
			return n
		}
	}
	return defaultIngestMax
}
