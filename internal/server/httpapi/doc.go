// Package httpapi is the JSON HTTP API of the school server: routing,
// bearer and role middleware, handlers and the error envelope.
package httpapi
