// Package api contains the HTTP handlers for job submission. The submitter
// only ever sees the accepted or rejected response; job outcomes are
// observed through the persisted record, not this surface.
package api
