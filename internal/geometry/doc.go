// Package geometry computes target sizes, crop rectangles, rotated bounds and
// anchor offsets for the transform operations.
//
// Every function is pure: it takes explicit dimensions and returns explicit
// dimensions or an error, and never touches pixel data.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X increases rightward, Y increases downward
//   - A CropRect covers [X, X+Width) x [Y, Y+Height)
//
// # Resize Policies
//
//   - Resize: scale each axis to the target independently; an axis of 0 is
//     derived from the source aspect ratio.
//   - ResizeMin: scale preserving aspect ratio until both axes reach at least
//     the target; one axis lands exactly on the target, the other may exceed it.
//   - ResizeCrop: ResizeMin followed by a centered crop to exactly the target.
//   - Crop: a centered crop of the target size with no scaling.
//
// # Errors
//
// ErrInvalidGeometry is returned for targets that are negative, all zero, or
// that resolve to a zero-sized axis. ErrEmptyRegion is returned when a crop
// rectangle does not intersect the source.
package geometry
