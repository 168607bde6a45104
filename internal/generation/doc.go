// Package generation defines the content-generator boundary: the prompt the
// backends are asked, the Generator interface the orchestrator consumes,
// and the errors generation can fail with. Backend-specific adapters live
// under internal/platform.
package generation
