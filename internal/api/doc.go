// Package api is the JSON wire contract between the session client and the
// school backend: endpoint paths, request bodies and response bodies.
//
// Field names follow the backend exactly (camelCase). Token responses are
// intentionally loose here; the client normalises them (see
// client.ParseTokenResponse) because some backend versions answer with
// "token" instead of "accessToken".
package api
