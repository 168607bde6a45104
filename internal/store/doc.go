// Package store defines the persistence port for job records. The interface
// abstracts the document store from the orchestration core, so submission
// and background-task logic stay independent of the concrete storage
// backend under internal/platform.
package store
