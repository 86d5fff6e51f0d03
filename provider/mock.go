package provider

import (
	"context"

	"github.com/eringen/seoblog"
)

// Mock is an offline provider for local runs and tests. When Raw is set it
// is parsed like a real model reply; otherwise Post is returned, or a
// placeholder article built from the request.
type Mock struct {
	Raw  string
	Post *seoblog.GeneratedPost
	Err  error

	Requests []seoblog.ContentRequest
}

func (m *Mock) Generate(ctx context.Context, req seoblog.ContentRequest) (seoblog.GeneratedPost, error) {
	m.Requests = append(m.Requests, req)
	if err := ctx.Err(); err != nil {
		return seoblog.GeneratedPost{}, err
	}
	if m.Err != nil {
		return seoblog.GeneratedPost{}, m.Err
	}
	if m.Raw != "" {
		return ParseResponse(m.Raw)
	}
	if m.Post != nil {
		return *m.Post, nil
	}
	return seoblog.GeneratedPost{
		Title:           req.Topic,
		MetaDescription: "A practical guide to " + req.Keyword + ".",
		Tags:            []string{req.Keyword},
		Content: "<h2>Getting started with " + req.Keyword + "</h2>" +
			"<p>This placeholder article was generated offline. It mentions the " +
			req.FreeFeature + " and the premium " + req.PremiumFeature + ".</p>",
	}, nil
}
