package seoblog

import "embed"

// EmbeddedAssets contains the article and card templates and the default
// topic catalog.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
