// Package firestore implements the job record store against the Firestore
// REST API: a strict document insert at submission and a masked partial
// update for the terminal transition, with a typed-value codec between Go
// documents and Firestore's wire representation.
package firestore
