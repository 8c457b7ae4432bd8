// Package render turns a saved form into something to look at or hand to another
// tool: markdown for the terminal preview, sanitized HTML for the browser preview,
// and an OpenAPI schema describing what a submission of the form carries.
package render
