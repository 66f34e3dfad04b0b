// Package httpapi exposes the lending use cases as a JSON API on a chi router.
//
// Request bodies are validated with go-playground/validator before a command is built,
// business errors are mapped to status codes in one place (see writeError).
package httpapi
