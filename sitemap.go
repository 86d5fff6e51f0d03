package seoblog

import (
	"encoding/xml"
	"io"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap of the blog index and every ledger entry,
// addressed on the canonical domain.
func WriteSitemap(w io.Writer, site SiteConfig, entries []LedgerEntry) error {
	site = site.WithDefaults()
	urls := []sitemapURL{
		{Loc: site.PostURL("")},
	}
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:     site.PostURL(e.Filename),
			LastMod: e.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}
