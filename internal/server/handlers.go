package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/pixelize/pixelize/internal/imaging"
	"github.com/pixelize/pixelize/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "line_load", "line_segment").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	if s.debug {
		log.Printf("tool %s done in %s", params.Name, time.Since(start))
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
//  2. Applies default values for optional parameters
//  3. Loads the line from cache
//  4. Runs the pipeline or the character operation
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "line_load":
		return s.handleLineLoad(args)
	case "line_palette":
		return s.handleLinePalette(args)
	case "line_preprocess":
		return s.handleLinePreprocess(args)
	case "line_segment":
		return s.handleLineSegment(args)
	case "character_split":
		return s.handleCharacterSplit(args)
	case "character_compare":
		return s.handleCharacterCompare(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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

// segmentPath loads path from the cache and runs the pipeline on it.
func (s *Server) segmentPath(path string) (*segment.Result, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	return segment.Segment(img, s.cfg)
}

// === Line Handlers ===

type lineArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleLineLoad(args json.RawMessage) (interface{}, error) {
	var a lineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type linePaletteArgs struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// PaletteResult lists the most frequent colors of a line.
type PaletteResult struct {
	Colors   []imaging.ColorFrequency `json:"colors"`
	Distinct int                      `json:"distinct"`
}

func (s *Server) handleLinePalette(args json.RawMessage) (interface{}, error) {
	var a linePaletteArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 10
	}
	g, err := s.cache.LoadGrid(a.Path)
	if err != nil {
		return nil, err
	}

	colors := imaging.Palette(g)
	distinct := len(colors)
	sort.SliceStable(colors, func(i, j int) bool {
		return colors[i].Percentage > colors[j].Percentage
	})
	if len(colors) > a.Count {
		colors = colors[:a.Count]
	}
	return &PaletteResult{Colors: colors, Distinct: distinct}, nil
}

// PreprocessResult holds the cleaned stages of a line.
type PreprocessResult struct {
	Denoised   *imaging.EncodedImage `json:"denoised"`
	Binarized  *imaging.EncodedImage `json:"binarized"`
	Overlay    *imaging.EncodedImage `json:"overlay"`
	Boundaries []int                 `json:"boundaries"`
}

func (s *Server) handleLinePreprocess(args json.RawMessage) (interface{}, error) {
	var a lineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.segmentPath(a.Path)
	if err != nil {
		return nil, err
	}

	denoised, err := imaging.EncodeBase64PNG(res.Denoised)
	if err != nil {
		return nil, err
	}
	binarized, err := imaging.EncodeBase64PNG(res.Binarized)
	if err != nil {
		return nil, err
	}
	overlay, err := imaging.EncodeBase64PNG(imaging.OverlayColumns(res.Binarized, res.Boundaries, true, "#FF0000"))
	if err != nil {
		return nil, err
	}

	return &PreprocessResult{
		Denoised:   denoised,
		Binarized:  binarized,
		Overlay:    overlay,
		Boundaries: res.Boundaries,
	}, nil
}

type lineSegmentArgs struct {
	Path          string `json:"path"`
	Refine        bool   `json:"refine"`
	IncludeImages *bool  `json:"include_images"`
}

// CharacterInfo describes one character of a segmented line.
type CharacterInfo struct {
	Place                int                   `json:"place"`
	Width                int                   `json:"width"`
	Height               int                   `json:"height"`
	InkPixels            int                   `json:"ink_pixels"`
	MoreThanOneCharacter bool                  `json:"more_than_one_character"`
	LostFragment         bool                  `json:"lost_fragment"`
	Image                *imaging.EncodedImage `json:"image,omitempty"`
}

// SegmentResult lists the characters of a line.
type SegmentResult struct {
	Boundaries []int           `json:"boundaries"`
	Characters []CharacterInfo `json:"characters"`
	Count      int             `json:"count"`
}

func (s *Server) handleLineSegment(args json.RawMessage) (interface{}, error) {
	var a lineSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	includeImages := true
	if a.IncludeImages != nil {
		includeImages = *a.IncludeImages
	}

	res, err := s.segmentPath(a.Path)
	if err != nil {
		return nil, err
	}
	chars := res.Characters
	if a.Refine {
		chars = segment.Refine(chars, s.cfg)
	}

	infos := make([]CharacterInfo, 0, len(chars))
	for _, c := range chars {
		info, err := describeCharacter(c, includeImages)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return &SegmentResult{
		Boundaries: res.Boundaries,
		Characters: infos,
		Count:      len(infos),
	}, nil
}

func describeCharacter(c *segment.CharacterImage, includeImage bool) (CharacterInfo, error) {
	info := CharacterInfo{
		Place:                c.Place(),
		Width:                c.Width(),
		Height:               c.Height(),
		InkPixels:            c.InkPixels(),
		MoreThanOneCharacter: c.HasMoreThanOneCharacterInside(),
		LostFragment:         c.IsALostFragment(),
	}
	if includeImage && !c.Empty() {
		img, err := imaging.EncodeBase64PNG(c.Image())
		if err != nil {
			return CharacterInfo{}, fmt.Errorf("character %d: %w", c.Place(), err)
		}
		info.Image = img
	}
	return info, nil
}

// === Character Handlers ===

// characterAt segments path and returns the character numbered place.
func (s *Server) characterAt(path string, place int) (*segment.CharacterImage, error) {
	res, err := s.segmentPath(path)
	if err != nil {
		return nil, err
	}
	if place < 0 || place >= len(res.Characters) {
		return nil, fmt.Errorf("place %d outside 0..%d", place, len(res.Characters)-1)
	}
	return res.Characters[place], nil
}

type characterSplitArgs struct {
	Path        string `json:"path"`
	Place       int    `json:"place"`
	RatePercent *int   `json:"rate_percent"`
}

// SplitResult holds the two halves of a split character.
type SplitResult struct {
	First  CharacterInfo `json:"first"`
	Second CharacterInfo `json:"second"`
}

func (s *Server) handleCharacterSplit(args json.RawMessage) (interface{}, error) {
	var a characterSplitArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rate := s.cfg.SplitRatePercent
	if a.RatePercent != nil {
		rate = *a.RatePercent
	}

	c, err := s.characterAt(a.Path, a.Place)
	if err != nil {
		return nil, err
	}
	first, second, err := c.SplitInto2Characters(rate, a.Place, a.Place+1)
	if err != nil {
		return nil, err
	}

	firstInfo, err := describeCharacter(first, true)
	if err != nil {
		return nil, err
	}
	secondInfo, err := describeCharacter(second, true)
	if err != nil {
		return nil, err
	}
	return &SplitResult{First: firstInfo, Second: secondInfo}, nil
}

type characterCompareArgs struct {
	Path         string `json:"path"`
	Place        int    `json:"place"`
	TemplatePath string `json:"template_path"`
}

func (s *Server) handleCharacterCompare(args json.RawMessage) (interface{}, error) {
	var a characterCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.TemplatePath == "" {
		return nil, fmt.Errorf("template_path is required")
	}

	c, err := s.characterAt(a.Path, a.Place)
	if err != nil {
		return nil, err
	}
	template, err := s.cache.Load(a.TemplatePath)
	if err != nil {
		return nil, err
	}
	return c.Compare(template)
}
