// Package track maintains cross-frame identity for detected coins.
//
// Region labels are not stable across frames, so identity is
// reconstructed by spatial proximity: a detection matches a stored
// entry when it falls within a class-dependent radius and the entry
// was seen recently enough. Two physically distinct coins closer
// together than the match radius will alias to one entry; the radius
// is chosen below the minimum plausible coin spacing.
//
// The tracker is the only stateful component of the engine. It is not
// safe for concurrent use; the host must confine it to the sequential
// per-frame loop or serialize access externally, because conflict
// correction and the wraparound time window both depend on observing
// updates in frame order.
package track
