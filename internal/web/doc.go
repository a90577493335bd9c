// Package web renders the public HTML pages of the blog: the
// reverse-chronological front page, individual post pages, and a not-found
// page for slugs that resolve to nothing. Pages are built from embedded
// html/template files, styled through CSS custom properties supplied by an
// optional go-theme bundle, and linked together with canonical URLs from
// go-urlkit. When a cover directory is configured the server also exposes
// the generated images as static files.
package web
