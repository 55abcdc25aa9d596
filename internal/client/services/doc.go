// Package services holds the domain calls of the school client: profile,
// offers, lessons, test questions and body-analysis uploads. Every call
// goes through the authenticated wrapper, so a rejected access token is
// refreshed once and the call replayed once before an error surfaces.
package services
