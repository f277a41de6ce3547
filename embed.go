package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// folio.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// EmbeddedContent is the sample catalog used when no content directory is
// configured: content/projects.json and content/posts/*.md.
//
//go:embed all:content
var EmbeddedContent embed.FS
