package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	unidecode "github.com/mozillazg/go-unidecode"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"tubewise/models"
	"tubewise/services/interactions"
)

//go:embed templates/*
var pageTemplates embed.FS

//go:embed static/*
var staticAssets embed.FS

// StaticFS exposes the embedded stylesheet and scripts rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticAssets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NavItem is one link of the navigation shell.
type NavItem struct {
	Path  string
	Label string
	Icon  string
}

// NavItems is the fixed link list of the sidebar.
var NavItems = []NavItem{
	{Path: "/", Label: "Home", Icon: "⌂"},
	{Path: "/history", Label: "History", Icon: "↺"},
	{Path: "/watch-later", Label: "Watch Later", Icon: "◷"},
	{Path: "/admin", Label: "Ingest", Icon: "⛁"},
	{Path: "/profile", Label: "Profile", Icon: "☺"},
}

// Page holds the data every page template shares.
type Page struct {
	Title       string
	CurrentPath string
	Nav         []NavItem
	UserID      int64
}

// CardView is the template model of one video card.
type CardView struct {
	ID        string
	Video     models.Video
	State     interactions.Snapshot
	Removable bool
	ListID    string
}

func newCardView(c *interactions.Card, removable bool) CardView {
	return CardView{
		ID:        c.ID,
		Video:     c.Video,
		State:     c.State(),
		Removable: removable,
		ListID:    c.MountID,
	}
}

var pageNames = []string{"home", "library", "profile", "admin", "register"}

// Renderer executes the embedded page and partial templates.
type Renderer struct {
	title    string
	userID   int64
	pages    map[string]*template.Template
	partials *template.Template
}

// NewRenderer parses every page as base + shared partials + page body.
func NewRenderer(title string, userID int64) (*Renderer, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

	funcMap := template.FuncMap{
		"duration":   formatDuration,
		"year":       formatYear,
		"date":       formatDate,
		"watchLabel": watchLabel,
		"thumbnail":  thumbnailURL,
		"initial":    avatarInitial,
		"describe":   describe,
		"markdown": func(src string) template.HTML {
			var buf bytes.Buffer
			if err := md.Convert([]byte(src), &buf); err != nil {
				log.Printf("[ui] markdown render failed: %v", err)
				return template.HTML(template.HTMLEscapeString(src))
			}
			return template.HTML(buf.String())
		},
	}

	base, err := pageTemplates.ReadFile("templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base template: %w", err)
	}
	shared, err := pageTemplates.ReadFile("templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("read partials: %w", err)
	}

	partials, err := template.New("partials").Funcs(funcMap).Parse(string(shared))
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		body, err := pageTemplates.ReadFile("templates/" + name + ".html")
		if err != nil {
			return nil, fmt.Errorf("read %s template: %w", name, err)
		}
		tmpl := template.New(name).Funcs(funcMap)
		for _, src := range []string{string(base), string(shared), string(body)} {
			if tmpl, err = tmpl.Parse(src); err != nil {
				return nil, fmt.Errorf("parse %s template: %w", name, err)
			}
		}
		pages[name] = tmpl
	}

	return &Renderer{title: title, userID: userID, pages: pages, partials: partials}, nil
}

// Page builds the shared page data for path.
func (r *Renderer) Page(path string) Page {
	return Page{Title: r.title, CurrentPath: path, Nav: NavItems, UserID: r.userID}
}

// RenderPage writes a full page with the given status.
func (r *Renderer) RenderPage(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := r.pages[name]
	if !ok {
		http.Error(w, "unknown page "+name, http.StatusInternalServerError)
		return
	}
	r.execute(w, status, tmpl, "base", data)
}

// RenderPartial writes a named fragment, used for htmx swaps.
func (r *Renderer) RenderPartial(w http.ResponseWriter, status int, name string, data any) {
	r.execute(w, status, r.partials, name, data)
}

func (r *Renderer) execute(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ui] template %s error: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

const placeholderThumbnail = "https://via.placeholder.com/320x180"

// formatDuration renders seconds as m:ss, with "00:00" for unknown durations.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func formatYear(t models.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d", t.Year())
}

func formatDate(t models.Timestamp) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

// watchLabel shows NOT_WATCHED as "NOT WATCHED".
func watchLabel(s models.WatchStatus) string {
	return strings.Replace(string(s), "_", " ", 1)
}

func thumbnailURL(v models.Video) string {
	if strings.TrimSpace(v.ThumbnailURL) == "" {
		return placeholderThumbnail
	}
	return v.ThumbnailURL
}

func describe(v models.Video) string {
	if strings.TrimSpace(v.Description) == "" {
		return "No description available."
	}
	return v.Description
}

// avatarInitial returns the first letter of a username folded to ASCII, so
// "élodie" gets "E".
func avatarInitial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "U"
	}
	first := []rune(name)[0]
	folded := strings.TrimSpace(unidecode.Unidecode(string(first)))
	if folded == "" {
		return strings.ToUpper(string(first))
	}
	return strings.ToUpper(folded[:1])
}

