// Package blob implements connected-component labeling of binary rasters
// and per-region feature extraction.
//
// Labeling uses a single forward raster scan with 8-connectivity and a
// union-find equivalence structure. When neighboring pixels carry
// different provisional labels, the numerically smallest resolved label
// wins and the others are merged into it; this tie-break makes labeling
// deterministic, so the same input raster always produces the same label
// map and region count.
//
// Border pixels are forced to background before the scan to avoid partial
// object artifacts at the raster edge, matching the behavior the rest of
// the pipeline is tuned for.
//
// Regions are produced fresh every frame. Label values are dense (1..N)
// but are not stable across frames; cross-frame identity is the job of the
// track package.
package blob
