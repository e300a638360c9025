package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/watimage-mcp/internal/geometry"
	"github.com/ironsheep/watimage-mcp/internal/pipeline"
	"github.com/ironsheep/watimage-mcp/internal/raster"
	"github.com/ironsheep/watimage-mcp/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArgs marks argument errors caught before the pipeline runs.
var errInvalidArgs = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Pipeline failures return a JSON-RPC error response with code -32000 whose
// data carries the error kind, operation and message. Malformed arguments
// return -32602.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.mu.Lock()
	result, err := s.executeTool(params.Name, params.Arguments)
	s.mu.Unlock()

	if err != nil {
		var pe *pipeline.Error
		switch {
		case errors.As(err, &pe):
			return s.errorResponse(req.ID, -32000, "Tool execution failed", errorRecord(pe))
		case errors.Is(err, errInvalidArgs):
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		default:
			return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
		}
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Resolves loose arguments (sizes, positions, colors) into typed values
//  3. Runs one pipeline operation
//  4. Returns a summary of the new state or the error
//
// The caller holds s.mu.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Source and settings
	case "image_load":
		return s.handleImageLoad(args)
	case "image_info":
		return s.handleImageInfo()
	case "image_set_quality":
		return s.handleSetQuality(args)
	case "image_set_compression":
		return s.handleSetCompression(args)

	// Transforms
	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_flip":
		return s.handleImageFlip(args)

	// Watermark
	case "image_set_watermark":
		return s.handleSetWatermark(args)
	case "image_apply_watermark":
		return s.handleApplyWatermark()

	// Output and state
	case "image_generate":
		return s.handleImageGenerate(args)
	case "image_errors":
		return s.handleImageErrors()
	case "image_reset":
		return s.handleImageReset()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments, treating a missing object as empty.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidArgs, err)
	}
	return nil
}

func invalidArg(name string, err error) error {
	return fmt.Errorf("%w: %s: %v", errInvalidArgs, name, err)
}

// ErrorRecord is the JSON form of one pipeline error.
type ErrorRecord struct {
	Kind    pipeline.Kind `json:"kind"`
	Op      string        `json:"op"`
	Message string        `json:"message"`
}

func errorRecord(e *pipeline.Error) ErrorRecord {
	return ErrorRecord{Kind: e.Kind, Op: e.Op, Message: e.Err.Error()}
}

// StateResult summarizes the pipeline after an operation.
type StateResult struct {
	Loaded       bool         `json:"loaded"`
	Info         *raster.Info `json:"info,omitempty"`
	HasWatermark bool         `json:"has_watermark"`
	Quality      int          `json:"quality"`
	Compression  int          `json:"compression"`
	ErrorCount   int          `json:"error_count"`
}

func (s *Server) state() *StateResult {
	q, c := s.pipe.Quality()
	info := s.pipe.Info()
	return &StateResult{
		Loaded:       info != nil,
		Info:         info,
		HasWatermark: s.pipe.HasWatermark(),
		Quality:      q,
		Compression:  c,
		ErrorCount:   len(s.pipe.Errors()),
	}
}

// === Source and Settings Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidArg("path", errors.New("required"))
	}
	if err := s.pipe.LoadFile(a.Path); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleImageInfo() (interface{}, error) {
	return s.state(), nil
}

type levelArgs struct {
	Level *int `json:"level"`
}

func (a *levelArgs) parse(args json.RawMessage) (int, error) {
	if err := unmarshalArgs(args, a); err != nil {
		return 0, err
	}
	if a.Level == nil {
		return 0, invalidArg("level", errors.New("required"))
	}
	return *a.Level, nil
}

func (s *Server) handleSetQuality(args json.RawMessage) (interface{}, error) {
	var a levelArgs
	level, err := a.parse(args)
	if err != nil {
		return nil, err
	}
	if err := s.pipe.SetQuality(level); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleSetCompression(args json.RawMessage) (interface{}, error) {
	var a levelArgs
	level, err := a.parse(args)
	if err != nil {
		return nil, err
	}
	if err := s.pipe.SetCompression(level); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Transform Handlers ===

type imageResizeArgs struct {
	Type string  `json:"type"`
	Size pairArg `json:"size"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	mode, err := geometry.ParseMode(a.Type)
	if err != nil {
		return nil, invalidArg("type", err)
	}
	if !a.Size.set {
		return nil, invalidArg("size", errors.New("required"))
	}
	if err := s.pipe.Resize(mode, a.Size.Dimensions()); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type imageCropArgs struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	rect := geometry.CropRect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	if err := s.pipe.Crop(rect); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type imageRotateArgs struct {
	Degrees    float64 `json:"degrees"`
	Background string  `json:"background"`
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	bg, err := transform.ParseBackground(a.Background)
	if err != nil {
		return nil, invalidArg("background", err)
	}
	if err := s.pipe.Rotate(a.Degrees, bg); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type imageFlipArgs struct {
	Type string `json:"type"`
}

func (s *Server) handleImageFlip(args json.RawMessage) (interface{}, error) {
	var a imageFlipArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	axis, err := transform.ParseAxis(a.Type)
	if err != nil {
		return nil, invalidArg("type", err)
	}
	if err := s.pipe.Flip(axis); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Watermark Handlers ===

type setWatermarkArgs struct {
	Path     string  `json:"path"`
	Position string  `json:"position"`
	Margin   pairArg `json:"margin"`
}

func (s *Server) handleSetWatermark(args json.RawMessage) (interface{}, error) {
	var a setWatermarkArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidArg("path", errors.New("required"))
	}
	pos, err := geometry.ParsePosition(a.Position)
	if err != nil {
		return nil, invalidArg("position", err)
	}
	if err := s.pipe.LoadWatermarkFile(a.Path, pos, a.Margin.Margin()); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleApplyWatermark() (interface{}, error) {
	if err := s.pipe.ApplyWatermark(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Output and State Handlers ===

type imageGenerateArgs struct {
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
}

// GenerateResult describes encoded output. ImageBase64 is only filled when
// no path was given.
type GenerateResult struct {
	Path        string `json:"path,omitempty"`
	MimeType    string `json:"mime_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

func (s *Server) handleImageGenerate(args json.RawMessage) (interface{}, error) {
	var a imageGenerateArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	data, err := s.pipe.Generate(a.Path, a.MimeType)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Path: a.Path, SizeBytes: len(data)}
	if f, err := s.pipe.ResolveFormat(a.Path, a.MimeType); err == nil {
		result.MimeType = f.MIME()
	}
	if info := s.pipe.Info(); info != nil {
		result.Width = info.Width
		result.Height = info.Height
	}
	if a.Path == "" {
		result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	}
	return result, nil
}

func (s *Server) handleImageErrors() (interface{}, error) {
	errs := s.pipe.Errors()
	records := make([]ErrorRecord, len(errs))
	for i, e := range errs {
		records[i] = errorRecord(e)
	}
	return map[string]interface{}{
		"errors": records,
	}, nil
}

func (s *Server) handleImageReset() (interface{}, error) {
	s.pipe = pipeline.New(s.opts)
	return s.state(), nil
}
