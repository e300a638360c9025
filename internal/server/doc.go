// Package server implements the MCP (Model Context Protocol) server for the
// image pipeline.
//
// This package provides a JSON-RPC 2.0 server that exposes one image pipeline
// through the MCP protocol. A client loads an image, applies transforms and a
// watermark one tool call at a time, and finally encodes the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Source and settings:
//   - image_load: Load the working image from a file
//   - image_info: Current dimensions, format and settings
//   - image_set_quality: Quality 0-100, or 0-9 for PNG
//   - image_set_compression: PNG compression 0-9
//
// Transforms:
//   - image_resize: resize, resizemin, resizecrop or crop to a target box
//   - image_crop: Cut out a rectangle
//   - image_rotate: Rotate by any angle with a background fill
//   - image_flip: Mirror horizontally, vertically or both
//
// Watermark:
//   - image_set_watermark: Load a watermark with anchor and margin
//   - image_apply_watermark: Composite it onto the working image
//
// Output and state:
//   - image_generate: Encode to a file or return base64
//   - image_errors: Ordered log of failed operations
//   - image_reset: Start over
//
// # Argument Shapes
//
// size and margin accept a single integer, a two-element array or an
// {"x": .., "y": ..} object. They are resolved into geometry.Dimensions and
// geometry.Margin before the pipeline sees them.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 for pipeline failures, -32602 for malformed arguments
//   - message: Human-readable error description
//   - data: for pipeline failures an ErrorRecord with kind, op and message
//
// A line that is not JSON gets a -32700 reply with a null id. Notifications
// (any notifications/* method) get no reply.
//
// Pipeline failures are also appended to the log image_errors returns;
// malformed arguments are not, since no operation ran.
//
// # Usage
//
//	srv := server.New(pipeline.DefaultOptions())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
