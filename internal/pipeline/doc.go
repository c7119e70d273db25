// Package pipeline drives the per-frame counting loop: segmentation,
// labeling, feature extraction, classification in family priority
// order, exclusion bookkeeping and the temporal tracker.
//
// The Processor owns all cross-frame state (tracker, counters,
// statistics) and must be driven from a single goroutine in frame
// order. Each ProcessFrame/ProcessMasks call handles exactly one
// frame.
package pipeline
