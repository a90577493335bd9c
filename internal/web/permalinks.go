package web

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	siteGroup = "site"
	routeHome = "home"
	routePost = "post"
)

// Permalinks builds canonical URLs for blog pages through a go-urlkit route
// manager. BaseURL may be empty, in which case every URL is site relative.
type Permalinks struct {
	group *urlkit.Group
}

// NewPermalinks wires the site route table. The route set is fixed: the
// front page and the per-slug post page.
func NewPermalinks(baseURL string) (*Permalinks, error) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    siteGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					routeHome: "/",
					routePost: "/posts/:slug",
				},
			},
		},
	})

	group, err := lookupGroup(manager, siteGroup)
	if err != nil {
		return nil, err
	}
	return &Permalinks{group: group}, nil
}

// HomeURL returns the URL of the front page.
func (p *Permalinks) HomeURL() (string, error) {
	builder, err := p.safeBuilder(routeHome)
	if err != nil {
		return "", err
	}
	return builder.Build()
}

// PostURL returns the canonical URL for the post with the given slug.
func (p *Permalinks) PostURL(slug string) (string, error) {
	builder, err := p.safeBuilder(routePost)
	if err != nil {
		return "", err
	}
	builder.WithParam("slug", slug)
	return builder.Build()
}

// safeBuilder converts the panic urlkit raises for unknown routes into an
// error. Named results so the recover assignment reaches the caller.
func (p *Permalinks) safeBuilder(route string) (builder *urlkit.Builder, err error) {
	if p == nil || p.group == nil {
		return nil, fmt.Errorf("web: permalinks not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("web: urlkit builder panic: %v", rec)
		}
	}()
	builder = p.group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("web: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("web: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}
