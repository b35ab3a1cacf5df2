// CLAUDE:SUMMARY MCP tool registrations for the docsedit editor — doc_* mutation tools, doc_undo, doc_history, doc_clear_history, history_stats.
package docsedit

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/redline/history"
	"github.com/hazyhaar/redline/kit"
)

// RegisterMCP registers the editing and history tools on an MCP server.
func (e *Editor) RegisterMCP(srv *mcp.Server) {
	e.registerInsertTextTool(srv)
	e.registerDeleteRangeTool(srv)
	e.registerReplaceRangeTool(srv)
	e.registerFormatTextTool(srv)
	e.registerInsertTableTool(srv)
	e.registerInsertPageBreakTool(srv)
	e.registerFindReplaceTool(srv)
	e.registerUndoTool(srv)
	e.registerHistoryTool(srv)
	e.registerClearHistoryTool(srv)
	e.registerStatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func decodeInto[T any](req *mcp.CallToolRequest) (any, error) {
	var r T
	if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

var docIDProp = map[string]any{"type": "string", "description": "Document ID"}

// --- doc_insert_text ---

type insertTextReq struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
}

func (e *Editor) registerInsertTextTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_insert_text",
		Description: "Insert text at a position in a document. The operation is recorded and can be undone with doc_undo.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
			"index":       map[string]any{"type": "integer", "description": "Position to insert at (0-based)"},
			"text":        map[string]any{"type": "string", "description": "Text to insert"},
		}, []string{"document_id", "index", "text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*insertTextReq)
		return e.InsertText(ctx, r.DocumentID, r.Index, r.Text)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[insertTextReq])
}

// --- doc_delete_range ---

type deleteRangeReq struct {
	DocumentID string `json:"document_id"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}

func (e *Editor) registerDeleteRangeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_delete_range",
		Description: "Delete the content in [start_index, end_index). The deleted text is captured first so the operation can be undone.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
			"start_index": map[string]any{"type": "integer", "description": "Start of range (inclusive)"},
			"end_index":   map[string]any{"type": "integer", "description": "End of range (exclusive)"},
		}, []string{"document_id", "start_index", "end_index"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*deleteRangeReq)
		return e.DeleteRange(ctx, r.DocumentID, r.StartIndex, r.EndIndex)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[deleteRangeReq])
}

// --- doc_replace_range ---

type replaceRangeReq struct {
	DocumentID string `json:"document_id"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
	Text       string `json:"text"`
}

func (e *Editor) registerReplaceRangeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_replace_range",
		Description: "Replace the content in [start_index, end_index) with new text. The original text is captured so the operation can be undone.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
			"start_index": map[string]any{"type": "integer", "description": "Start of range (inclusive)"},
			"end_index":   map[string]any{"type": "integer", "description": "End of range (exclusive)"},
			"text":        map[string]any{"type": "string", "description": "Replacement text"},
		}, []string{"document_id", "start_index", "end_index", "text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*replaceRangeReq)
		return e.ReplaceRange(ctx, r.DocumentID, r.StartIndex, r.EndIndex, r.Text)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[replaceRangeReq])
}

// --- doc_format_text ---

type formatTextReq struct {
	DocumentID    string         `json:"document_id"`
	StartIndex    int            `json:"start_index"`
	EndIndex      int            `json:"end_index"`
	Style         map[string]any `json:"style"`
	OriginalStyle map[string]any `json:"original_style,omitempty"`
}

func (e *Editor) registerFormatTextTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_format_text",
		Description: "Apply text styling over [start_index, end_index). Pass original_style if known; without it, the style change cannot be undone.",
		InputSchema: inputSchema(map[string]any{
			"document_id":    docIDProp,
			"start_index":    map[string]any{"type": "integer", "description": "Start of range (inclusive)"},
			"end_index":      map[string]any{"type": "integer", "description": "End of range (exclusive)"},
			"style":          map[string]any{"type": "object", "description": "textStyle fields to apply (bold, italic, underline, fontSize, ...)"},
			"original_style": map[string]any{"type": "object", "description": "textStyle fields as they were before, for undo"},
		}, []string{"document_id", "start_index", "end_index", "style"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*formatTextReq)
		return e.FormatText(ctx, r.DocumentID, r.StartIndex, r.EndIndex, r.Style, r.OriginalStyle)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[formatTextReq])
}

// --- doc_insert_table ---

type insertTableReq struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
}

func (e *Editor) registerInsertTableTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_insert_table",
		Description: "Insert a table at a position. Table insertion cannot be undone automatically.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
			"index":       map[string]any{"type": "integer", "description": "Position to insert at"},
			"rows":        map[string]any{"type": "integer", "description": "Number of rows"},
			"columns":     map[string]any{"type": "integer", "description": "Number of columns"},
		}, []string{"document_id", "index", "rows", "columns"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*insertTableReq)
		return e.InsertTable(ctx, r.DocumentID, r.Index, r.Rows, r.Columns)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[insertTableReq])
}

// --- doc_insert_page_break ---

type insertPageBreakReq struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
}

func (e *Editor) registerInsertPageBreakTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_insert_page_break",
		Description: "Insert a page break at a position. The operation can be undone with doc_undo.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
			"index":       map[string]any{"type": "integer", "description": "Position to insert at"},
		}, []string{"document_id", "index"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*insertPageBreakReq)
		return e.InsertPageBreak(ctx, r.DocumentID, r.Index)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[insertPageBreakReq])
}

// --- doc_find_replace ---

type findReplaceReq struct {
	DocumentID  string `json:"document_id"`
	FindText    string `json:"find_text"`
	ReplaceText string `json:"replace_text"`
	MatchCase   bool   `json:"match_case"`
}

func (e *Editor) registerFindReplaceTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_find_replace",
		Description: "Replace all occurrences of find_text with replace_text across the document. Cannot be undone.",
		InputSchema: inputSchema(map[string]any{
			"document_id":  docIDProp,
			"find_text":    map[string]any{"type": "string", "description": "Text to find"},
			"replace_text": map[string]any{"type": "string", "description": "Replacement text"},
			"match_case":   map[string]any{"type": "boolean", "description": "Match case exactly"},
		}, []string{"document_id", "find_text", "replace_text"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*findReplaceReq)
		return e.FindReplace(ctx, r.DocumentID, r.FindText, r.ReplaceText, r.MatchCase)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[findReplaceReq])
}

// --- doc_undo ---

type undoReq struct {
	DocumentID string `json:"document_id"`
}

func (e *Editor) registerUndoTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_undo",
		Description: "Undo the most recent undoable operation on a document by executing its reverse operation. Only operations recorded by this server can be undone.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
		}, []string{"document_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*undoReq)
		return e.Undo(ctx, r.DocumentID)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[undoReq])
}

// --- doc_history ---

type historyReq struct {
	DocumentID    string `json:"document_id"`
	Limit         int    `json:"limit"`
	IncludeUndone bool   `json:"include_undone"`
}

type historyResp struct {
	DocumentID      string           `json:"document_id"`
	Operations      []history.Record `json:"operations"`
	TotalOperations int              `json:"total_operations"`
	UndoableCount   int              `json:"undoable_count"`
}

func (e *Editor) registerHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_history",
		Description: "List recent recorded operations for a document, most recent first. History is in-memory and lost on restart; edits made outside this server are not tracked.",
		InputSchema: inputSchema(map[string]any{
			"document_id":    docIDProp,
			"limit":          map[string]any{"type": "integer", "description": "Maximum operations to return (default 10, max 50)"},
			"include_undone": map[string]any{"type": "boolean", "description": "Include already-undone operations"},
		}, []string{"document_id"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*historyReq)
		limit := r.Limit
		if limit <= 0 {
			limit = 10
		}
		if limit > history.DefaultMaxPerDocument {
			limit = history.DefaultMaxPerDocument
		}

		ops := e.registry.History(r.DocumentID, limit, r.IncludeUndone)
		undoable := 0
		for _, op := range ops {
			if !op.Undone && op.Reversibility != history.ReversibilityNone {
				undoable++
			}
		}
		return historyResp{
			DocumentID:      r.DocumentID,
			Operations:      ops,
			TotalOperations: len(ops),
			UndoableCount:   undoable,
		}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[historyReq])
}

// --- doc_clear_history ---

type clearHistoryReq struct {
	DocumentID string `json:"document_id"`
}

func (e *Editor) registerClearHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "doc_clear_history",
		Description: "Clear the recorded operation history for a document, making undo unavailable for its past operations.",
		InputSchema: inputSchema(map[string]any{
			"document_id": docIDProp,
		}, []string{"document_id"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*clearHistoryReq)
		cleared := e.ClearHistory(ctx, r.DocumentID)
		message := "no history existed for document"
		if cleared {
			message = "cleared history for document"
		}
		return map[string]any{
			"success":     true,
			"cleared":     cleared,
			"message":     message,
			"document_id": r.DocumentID,
		}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[clearHistoryReq])
}

// --- history_stats ---

func (e *Editor) registerStatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "history_stats",
		Description: "Aggregate counts over all tracked document histories.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return e.registry.Stats(), nil
	}

	decode := func(_ *mcp.CallToolRequest) (any, error) {
		return nil, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
