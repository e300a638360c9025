// Package raster is the decode/encode boundary of the pipeline.
//
// It turns encoded bytes into a canvas.Canvas and back, and is the only package
// that knows about file formats. Everything else works on canvases.
//
// # Formats
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding supports PNG,
// JPEG, GIF, BMP and TIFF:
//   - JPEG takes a quality of 0-100 (0 is clamped to 1 by the encoder)
//   - PNG takes a compression level of 0-9, mapped onto image/png's levels
//   - GIF maps quality 0-100 onto a palette of 2-256 colors
//
// WebP input defaults to PNG output since there is no WebP encoder.
//
// # Transparency
//
// Only PNG and TIFF output keep an alpha channel. Canvases with transparent
// pixels are composited onto opaque white before being written as JPEG, GIF or
// BMP.
package raster
