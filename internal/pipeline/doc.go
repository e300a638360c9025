// Package pipeline sequences image operations against one current image.
//
// A Pipeline owns the decoded image, an optional watermark and the encode
// settings. Operations run in whatever order the caller issues them:
//
//	p := pipeline.New(pipeline.DefaultOptions())
//	p.LoadFile("photo.jpg")
//	p.Resize(geometry.ResizeCrop, geometry.Square(200))
//	p.LoadWatermarkFile("logo.png", geometry.BottomRight, geometry.Margin{X: 10, Y: 10})
//	p.ApplyWatermark()
//	p.Generate("thumb.jpg", "")
//
// Failures never touch pipeline state. Each one is returned as an *Error and
// also appended to a log that Errors returns in order, so a caller can run a
// whole sequence and inspect what went wrong afterwards.
package pipeline
