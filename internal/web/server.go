package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const defaultCoverPath = "/covers"

// SiteInfo describes the blog identity shown in page chrome.
type SiteInfo struct {
	Title   string
	Tagline string
	BaseURL string
}

// Server renders the public HTML pages and serves generated cover images.
type Server struct {
	posts      posts.Service
	site       SiteInfo
	theme      ThemeContext
	permalinks *Permalinks
	coverDir   string
	coverPath  string
	logger     interfaces.Logger
	homeURL    string
}

// ServerOption configures the page server.
type ServerOption func(*Server)

// WithPostService injects the post resolution service pages are built from.
func WithPostService(svc posts.Service) ServerOption {
	return func(s *Server) {
		s.posts = svc
	}
}

// WithSite sets the identity rendered into page chrome.
func WithSite(site SiteInfo) ServerOption {
	return func(s *Server) {
		s.site = site
	}
}

// WithTheme applies a loaded theme context to every rendered page.
func WithTheme(theme ThemeContext) ServerOption {
	return func(s *Server) {
		s.theme = theme
	}
}

// WithPermalinks overrides the URL builder, primarily for tests.
func WithPermalinks(p *Permalinks) ServerOption {
	return func(s *Server) {
		s.permalinks = p
	}
}

// WithCoverDir exposes dir as static files under urlPrefix. An empty prefix
// keeps the default /covers mount.
func WithCoverDir(dir, urlPrefix string) ServerOption {
	return func(s *Server) {
		s.coverDir = strings.TrimSpace(dir)
		if prefix := strings.TrimSpace(urlPrefix); prefix != "" {
			s.coverPath = prefix
		}
	}
}

// WithLogger sets the server logger.
func WithLogger(logger interfaces.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer builds a page server. Permalinks default to a route table rooted
// at the site base URL.
func NewServer(opts ...ServerOption) (*Server, error) {
	s := &Server{
		theme:     emptyThemeContext(),
		coverPath: defaultCoverPath,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.permalinks == nil {
		permalinks, err := NewPermalinks(s.site.BaseURL)
		if err != nil {
			return nil, err
		}
		s.permalinks = permalinks
	}

	s.homeURL = "/"
	if built, err := s.permalinks.HomeURL(); err == nil && built != "" {
		s.homeURL = built
	}

	if s.theme.Name != "" {
		logging.WithFields(s.logger, map[string]any{
			"theme":    s.theme.Name,
			"variant":  s.theme.Variant,
			"theme_id": s.theme.ID.String(),
		}).Debug("web.theme.applied")
	}
	return s, nil
}

// Register mounts the page routes on mux.
func (s *Server) Register(mux *http.ServeMux) error {
	if s == nil {
		return fmt.Errorf("web: server is nil")
	}
	if mux == nil {
		return fmt.Errorf("web: mux is required")
	}

	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /posts/{slug}", s.handlePost)

	if s.coverDir != "" {
		prefix := strings.TrimRight(s.coverPath, "/")
		if prefix == "" {
			prefix = defaultCoverPath
		}
		mux.Handle("GET "+prefix+"/", http.StripPrefix(prefix+"/", http.FileServer(http.Dir(s.coverDir))))
	}
	return nil
}

// pageData is the root template payload shared by every page.
type pageData struct {
	Title string
	Site  siteData
	Theme ThemeContext
	Posts []postItem
	Post  *postDetail
}

type siteData struct {
	Title   string
	Tagline string
	HomeURL string
}

type postItem struct {
	Title   string
	Date    string
	Excerpt string
	URL     string
	Image   string
}

type postDetail struct {
	Title string
	Date  string
	Image string
	HTML  template.HTML
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		http.Error(w, "post service unavailable", http.StatusServiceUnavailable)
		return
	}

	list, err := s.posts.List(r.Context())
	if err != nil {
		s.logger.Error("post listing failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]postItem, 0, len(list))
	for _, meta := range list {
		items = append(items, postItem{
			Title:   meta.Title,
			Date:    meta.Date,
			Excerpt: meta.Excerpt,
			URL:     s.postURL(meta.Slug),
			Image:   meta.Image,
		})
	}

	s.render(w, http.StatusOK, "home", pageData{
		Title: s.pageTitle(""),
		Site:  s.siteData(),
		Theme: s.theme,
		Posts: items,
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		http.Error(w, "post service unavailable", http.StatusServiceUnavailable)
		return
	}

	slug := r.PathValue("slug")
	post, err := s.posts.Get(r.Context(), slug)
	if err != nil {
		s.logResolveFailure(slug, err)
		s.renderNotFound(w)
		return
	}

	s.render(w, http.StatusOK, "post", pageData{
		Title: s.pageTitle(post.Title),
		Site:  s.siteData(),
		Theme: s.theme,
		Post: &postDetail{
			Title: post.Title,
			Date:  post.Date,
			Image: post.Image,
			HTML:  template.HTML(post.HTML),
		},
	})
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	s.render(w, http.StatusNotFound, "notfound", pageData{
		Title: s.pageTitle("Not found"),
		Site:  s.siteData(),
		Theme: s.theme,
	})
}

// logResolveFailure keeps the failure class visible in logs while the page
// stays a uniform 404: unreadable or unparseable sources are operator
// problems, a missing slug is routine.
func (s *Server) logResolveFailure(slug string, err error) {
	var readErr *posts.ReadError
	var parseErr *posts.ParseError
	switch {
	case errors.As(err, &readErr):
		s.logger.Error("post read failed", "slug", slug, "path", readErr.Path, "error", err)
	case errors.As(err, &parseErr):
		s.logger.Error("post parse failed", "slug", slug, "path", parseErr.Path, "error", err)
	default:
		s.logger.Debug("page not found", "slug", slug)
	}
}

// render buffers template output so a mid-render failure never leaks a
// partial page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("page render failed", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) postURL(slug string) string {
	built, err := s.permalinks.PostURL(slug)
	if err != nil || built == "" {
		return "/posts/" + url.PathEscape(slug)
	}
	return built
}

func (s *Server) pageTitle(section string) string {
	switch {
	case section == "":
		return s.site.Title
	case s.site.Title == "":
		return section
	default:
		return section + " · " + s.site.Title
	}
}

func (s *Server) siteData() siteData {
	return siteData{
		Title:   s.site.Title,
		Tagline: s.site.Tagline,
		HomeURL: s.homeURL,
	}
}
