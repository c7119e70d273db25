// Package raster provides the pixel buffer types the coin engine operates on.
//
// Two raster kinds matter here:
//   - a binary Raster, whose samples are constrained to {0, 255}
//     (255 = foreground, 0 = background), and
//   - a LabelMap, whose samples are region identifiers assigned by the
//     blob labeler, with 0 reserved for background.
//
// # Coordinate System
//
// All pixel coordinates are 0-based: X grows rightward, Y grows downward,
// (0,0) is the top-left sample. Rows are addressed through Stride so a
// Raster may alias a larger buffer.
//
// # Error Handling
//
// Constructors and converters validate their inputs before any mutation.
// An empty buffer, non-positive dimensions, or a channel/shape mismatch is
// reported through the package sentinel errors; a valid raster containing
// no foreground at all is not an error.
package raster
