// Package transform implements the geometric operations of the pipeline:
// resize, crop, rotate and flip.
//
// Every operation takes a source Canvas and returns a new one; the source is
// never modified. Rotate by a multiple of 360 degrees and Resize to the current
// size return the source itself.
//
// # Resampling
//
// Resizing and free-angle rotation both use bilinear interpolation. Resize goes
// through imaging.Resize with the imaging.Linear filter, which averages over the
// whole footprint when downscaling. Rotate samples the four nearest source
// pixels of each inverse-mapped output pixel center, weighting colors by alpha
// so transparent neighbours do not darken edges. Quarter turns and flips are
// exact pixel permutations.
//
// # Rotation Direction
//
// Positive angles rotate counter-clockwise as seen on screen, matching
// imaging.Rotate90. Output is sized to the rotated bounding box
// (geometry.RotatedSize) and uncovered pixels take the background color.
package transform
