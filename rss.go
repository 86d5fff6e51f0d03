package seoblog

import (
	"encoding/xml"
	"io"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteFeed writes an RSS 2.0 feed of ledger entries.
func WriteFeed(w io.Writer, site SiteConfig, entries []LedgerEntry) error {
	site = site.WithDefaults()
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", e.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := site.PostURL(e.Filename)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        postURL,
			Description: e.MetaDescription,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name + " Blog",
			Link:        site.PostURL(""),
			Description: site.Description,
			Items:       items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
