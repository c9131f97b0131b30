// Package server exposes the profile-card compositor over HTTP.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aurautils/perfilcard/pkg/layout"
	"github.com/aurautils/perfilcard/pkg/render"
	"github.com/aurautils/perfilcard/pkg/resource"
	"github.com/aurautils/perfilcard/pkg/template"
)

// ── Error envelope ──

// Error codes returned in the JSON envelope. ERR-0006 is reserved: icon
// failures fall back to text and never surface it.
const (
	ErrCodeUsername   = "ERR-0001"
	ErrCodeAvatarURL  = "ERR-0002"
	ErrCodeTemplate   = "ERR-0003"
	ErrCodeGeneration = "ERR-0004"
	ErrCodeBackground = "ERR-0005"
	ErrCodeIcon       = "ERR-0006"
)

var errorMessages = map[string]string{
	ErrCodeUsername:   "username not provided",
	ErrCodeAvatarURL:  "avatarURL not provided",
	ErrCodeTemplate:   "template not found",
	ErrCodeGeneration: "failed to generate image",
	ErrCodeBackground: "invalid or unloadable background",
	ErrCodeIcon:       "icon not loadable",
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	ErrorID string `json:"errorID"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type renderEnvelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Template string `json:"template"`
	Image    string `json:"image"`
}

// ── Server ──

// Options configures the server.
type Options struct {
	Addr         string        // listen address, default ":8080"
	TemplateRoot string        // directory of <name>/template.json bundles
	FetchTimeout time.Duration // remote image fetch timeout, 0 = default
	CacheRefresh time.Duration // template/image cache expiry, 0 = never
}

// Server wires the loader, resolver, layout engine and renderer together.
type Server struct {
	templates *template.Loader
	engine    *layout.Engine
	renderer  *render.Renderer
	root      string
}

// New creates a server from options.
func New(opts Options) (*Server, error) {
	fonts, err := render.NewFontManager()
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}

	resolver := resource.NewResolver(resource.NewImageCache(opts.CacheRefresh), opts.FetchTimeout)

	return &Server{
		templates: template.NewLoader(template.DirSource{Root: opts.TemplateRoot}, opts.CacheRefresh),
		engine:    layout.NewEngine(resolver, fonts),
		renderer:  render.NewRenderer(fonts),
		root:      opts.TemplateRoot,
	}, nil
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/canvas/profile", s.handleProfile)
	mux.Handle("GET /assets/canvas/templates/",
		http.StripPrefix("/assets/canvas/templates/", http.FileServer(http.Dir(s.root))))
	return mux
}

// Run starts the server and blocks.
func Run(opts Options) error {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	s, err := New(opts)
	if err != nil {
		return err
	}
	log.Printf("perfilcard listening on %s (templates: %s)", opts.Addr, opts.TemplateRoot)
	return http.ListenAndServe(opts.Addr, s.Handler())
}

// ── Profile endpoint ──

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &layout.Request{
		Username:   q.Get("username"),
		Avatar:     q.Get("avatarURL"),
		Bio:        q.Get("bio"),
		Level:      intParam(q.Get("level")),
		XP:         intParam(q.Get("xp")),
		MaxXP:      intParam(q.Get("maxXP")),
		Coins:      intParam(q.Get("coins")),
		CoinIcon:   q.Get("coinIcon"),
		Template:   q.Get("template"),
		Background: q.Get("bg"),
		WantJSON:   q.Get("json") == "true",
	}
	if req.Template == "" {
		req.Template = "default"
	}

	if req.Username == "" {
		writeError(w, http.StatusBadRequest, ErrCodeUsername, "")
		return
	}
	if req.Avatar == "" {
		writeError(w, http.StatusBadRequest, ErrCodeAvatarURL, "")
		return
	}

	doc, err := s.templates.Load(req.Template)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeTemplate, "")
		return
	}

	ops, err := s.engine.Build(doc, req, s.templates.AssetDir(req.Template))
	switch {
	case err == nil:
	case errors.Is(err, layout.ErrBackground):
		writeError(w, http.StatusBadRequest, ErrCodeBackground, "")
		return
	case errors.Is(err, layout.ErrAvatar):
		writeError(w, http.StatusBadRequest, ErrCodeGeneration, "avatarURL not loadable")
		return
	default:
		writeError(w, http.StatusInternalServerError, ErrCodeGeneration, err.Error())
		return
	}

	width, height := doc.CanvasSize()
	img, err := s.renderer.Render(ops, width, height)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeGeneration, err.Error())
		return
	}

	buf, err := render.EncodePNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeGeneration, err.Error())
		return
	}

	if req.WantJSON {
		writeJSON(w, http.StatusOK, renderEnvelope{
			Success:  true,
			Message:  "profile card generated",
			Template: req.Template,
			Image:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.Write(buf)
}

// intParam parses an optional numeric query value. Unparsable values are
// treated as absent so a stray string degrades instead of erroring.
func intParam(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		ErrorID: code,
		Error:   errorMessages[code],
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
