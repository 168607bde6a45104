// Package service contains the job orchestrator: the submission flow that
// turns a validated request into a durable processing record plus exactly
// one scheduled background generation task.
package service
