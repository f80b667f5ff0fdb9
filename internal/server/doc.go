// Package server implements the MCP (Model Context Protocol) server that
// exposes the line segmentation pipeline as tools.
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
// Line Information:
//   - line_load: Load a line and get metadata
//   - line_palette: Most frequent colors, for choosing a watermark predicate
//
// Pipeline:
//   - line_preprocess: Denoised and binarized stages plus cut columns
//   - line_segment: Character images with their advisory flags
//
// Character Operations:
//   - character_split: Split a character in two
//   - character_compare: Score a character against a template glyph
//
// # Image Caching
//
// Decoded lines are cached by path for the lifetime of the process, so a line
// can be segmented, split and compared without being decoded again. The
// pipeline itself is rerun per call; it is fast on single lines.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
