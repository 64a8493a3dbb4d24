// Package httpapi is an optional, read-mostly HTTP adapter over a
// registry.Registry. It is not the engine's CLI or logging surface — those
// stay out of the engine itself — it is an embedding-side convenience a
// caller may mount without the engine package knowing HTTP exists. Every
// handler delegates straight to the Registry; no engine state lives in
// this package.
package httpapi
