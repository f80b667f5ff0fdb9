package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the scanned line image",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Line Information
		{
			Name:        "line_load",
			Description: "Load a scanned text line and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "line_palette",
			Description: "List the most frequent colors of a line with their HSL values. Use this to choose a watermark predicate for a new source.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},

		// Pipeline
		{
			Name:        "line_preprocess",
			Description: "Remove the watermark line and noise, binarize, and detect cut columns. Returns the denoised and binarized lines, an overlay of the cut columns, and the columns themselves.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "line_segment",
			Description: "Cut a line into character images. Each character reports its place, size, ink count and whether it looks like two fused glyphs or a lost fragment.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"refine": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop lost fragments, split fused characters and renumber",
						"default":     false,
					},
					"include_images": map[string]interface{}{
						"type":        "boolean",
						"description": "Include each character as base64 PNG",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},

		// Character Operations
		{
			Name:        "character_split",
			Description: "Split one character of a segmented line vertically into two characters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"place": map[string]interface{}{
						"type":        "integer",
						"description": "Place of the character to split (0-based)",
					},
					"rate_percent": map[string]interface{}{
						"type":        "integer",
						"description": "Cut position as a percentage of the character width, 1 to 99",
						"default":     50,
					},
				},
				"required": []string{"path", "place"},
			},
		},
		{
			Name:        "character_compare",
			Description: "Compare one character of a segmented line against a template image resized to the same size. Returns the percentage of agreeing ink pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"place": map[string]interface{}{
						"type":        "integer",
						"description": "Place of the character to compare (0-based)",
					},
					"template_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the template glyph image",
					},
				},
				"required": []string{"path", "place", "template_path"},
			},
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
