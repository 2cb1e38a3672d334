package handler

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
)

// Only guest pages are indexable; everything under /app and /api is private.
var publicPaths = []string{"/", "/auth"}

type SEOHandler struct {
	baseURL string
}

func NewSEOHandler(baseURL string) *SEOHandler {
	return &SEOHandler{baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /app/\nDisallow: /api/\nSitemap: " + h.baseURL + "/sitemap.xml\n"))
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range publicPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.baseURL + p})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		slog.Error("failed to build sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
