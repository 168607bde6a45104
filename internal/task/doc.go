// Package task provides the supervised background execution model: a
// bounded queue, a worker pool that drains it, and the itinerary generation
// task that carries a job from processing to its terminal record.
package task
