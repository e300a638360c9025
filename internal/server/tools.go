package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pairSchema accepts an integer, a two-element array or an {x, y} object.
func pairSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"oneOf": []interface{}{
			map[string]interface{}{"type": "integer"},
			map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "integer"},
				"minItems": 2,
				"maxItems": 2,
			},
			map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{"type": "integer"},
					"y": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"x", "y"},
			},
		},
	}
}

func noArgsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source and settings
		{
			Name:        "image_load",
			Description: "Load an image file as the working image. Replaces any previously loaded image; the watermark and quality settings are kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG, GIF, BMP, TIFF or WebP file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Report the working image's current dimensions and format, whether a watermark is loaded, the encode settings and how many errors have been logged.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "image_set_quality",
			Description: "Set output quality. For PNG images this is the compression level 0-9; for everything else it is 0-100.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "0-100, or 0-9 when the loaded image is PNG",
					},
				},
				"required": []string{"level"},
			},
		},
		{
			Name:        "image_set_compression",
			Description: "Set PNG compression level from 0 (none) to 9 (smallest output).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"level": map[string]interface{}{
						"type":        "integer",
						"description": "Compression level 0-9",
						"minimum":     0,
						"maximum":     9,
					},
				},
				"required": []string{"level"},
			},
		},

		// Transforms
		{
			Name:        "image_resize",
			Description: "Resize the working image. 'resize' stretches to exactly the box (an axis of 0 keeps aspect ratio), 'resizemin' covers the box keeping aspect ratio, 'resizecrop' covers then center-crops to exactly the box, 'crop' center-crops without scaling.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"resize", "resizemin", "resizecrop", "crop"},
						"description": "Resize policy",
					},
					"size": pairSchema("Target box: one integer for a square, or [x, y] / {\"x\": .., \"y\": ..}."),
				},
				"required": []string{"type", "size"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Cut a rectangle out of the working image. Rectangles reaching past the edges are clamped; a rectangle entirely outside the image is an error.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Rectangle width in pixels",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Rectangle height in pixels",
					},
				},
				"required": []string{"x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate the working image counter-clockwise by any angle. The canvas grows to hold the rotated image and uncovered corners are filled with the background.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"degrees": map[string]interface{}{
						"type":        "number",
						"description": "Angle in degrees; negative turns clockwise",
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "Fill color as #RGB, #RRGGBB or #RRGGBBAA, or 'transparent' (white for formats without alpha). Default transparent",
						"default":     "transparent",
					},
				},
				"required": []string{"degrees"},
			},
		},
		{
			Name:        "image_flip",
			Description: "Mirror the working image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"horizontal", "vertical", "both"},
						"description": "Flip axis. Default horizontal",
						"default":     "horizontal",
					},
				},
			},
		},

		// Watermark
		{
			Name:        "image_set_watermark",
			Description: "Load a watermark image and its placement. It is composited only when image_apply_watermark is called.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the watermark image (PNG with transparency works best)",
					},
					"position": map[string]interface{}{
						"type":        "string",
						"description": "Anchor such as 'top left', 'center', 'bottom right'. Default bottom right",
						"default":     "bottom right",
					},
					"margin": pairSchema("Inset from the anchored edges in pixels: one integer for both axes, or [x, y] / {\"x\": .., \"y\": ..}. Default 0"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_apply_watermark",
			Description: "Alpha-composite the loaded watermark onto the working image at its anchor. Parts falling outside the image are dropped.",
			InputSchema: noArgsSchema(),
		},

		// Output and state
		{
			Name:        "image_generate",
			Description: "Encode the working image. With a path the file is written; without one the image is returned as base64. The format comes from mime_type, then the path's extension, then the loaded image's format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute output path",
					},
					"mime_type": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff"},
						"description": "Optional output format",
					},
				},
			},
		},
		{
			Name:        "image_errors",
			Description: "List every failed operation so far, oldest first, with its kind (load, range, geometry, not loaded, encode).",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "image_reset",
			Description: "Discard the working image, watermark, settings and error log.",
			InputSchema: noArgsSchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
