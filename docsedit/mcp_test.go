package docsedit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/redline/history"
)

var testMCPImpl = &mcp.Implementation{Name: "redline-test", Version: "0.1.0"}

func mcpSession(t *testing.T, store *fakeStore) *mcp.ClientSession {
	t.Helper()
	editor := New(store, history.NewRegistry(history.Config{}))
	srv := mcp.NewServer(testMCPImpl, nil)
	editor.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()
	go func() { _ = srv.Run(ctx, serverT) }()

	client := mcp.NewClient(testMCPImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func mcpCallTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent", name)
	}
	return tc.Text
}

func TestMCP_InsertUndoRoundTrip(t *testing.T) {
	store := newFakeStore()
	store.seed("doc1", "alpha omega")
	session := mcpSession(t, store)

	text := mcpCallTool(t, session, "doc_insert_text", map[string]any{
		"document_id": "doc1",
		"index":       6,
		"text":        "beta ",
	})

	var rec history.Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.Kind != history.KindInsert || rec.PositionShift != 5 {
		t.Errorf("record = %+v", rec)
	}
	if got := store.text("doc1"); got != "alpha beta omega" {
		t.Fatalf("after insert: %q", got)
	}

	undoText := mcpCallTool(t, session, "doc_undo", map[string]any{"document_id": "doc1"})
	var res history.UndoResult
	if err := json.Unmarshal([]byte(undoText), &res); err != nil {
		t.Fatalf("unmarshal undo result: %v", err)
	}
	if !res.Success {
		t.Fatalf("undo failed: %s", res.Message)
	}
	if got := store.text("doc1"); got != "alpha omega" {
		t.Errorf("after undo: %q", got)
	}
}

func TestMCP_UndoWithNoHistory(t *testing.T) {
	session := mcpSession(t, newFakeStore())

	text := mcpCallTool(t, session, "doc_undo", map[string]any{"document_id": "never-edited"})
	var res history.UndoResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Success {
		t.Error("undo reported success with no history")
	}
	if res.Message != "no history found for this document" {
		t.Errorf("message = %q", res.Message)
	}
}

func TestMCP_HistoryListing(t *testing.T) {
	store := newFakeStore()
	store.seed("doc1", "")
	session := mcpSession(t, store)

	mcpCallTool(t, session, "doc_insert_text", map[string]any{
		"document_id": "doc1", "index": 0, "text": "aaa",
	})
	mcpCallTool(t, session, "doc_find_replace", map[string]any{
		"document_id": "doc1", "find_text": "aaa", "replace_text": "bbb",
	})

	text := mcpCallTool(t, session, "doc_history", map[string]any{"document_id": "doc1"})
	var resp struct {
		DocumentID      string           `json:"document_id"`
		Operations      []history.Record `json:"operations"`
		TotalOperations int              `json:"total_operations"`
		UndoableCount   int              `json:"undoable_count"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalOperations != 2 {
		t.Fatalf("total = %d, want 2", resp.TotalOperations)
	}
	// Most recent first: the irreversible find/replace, then the insert.
	if resp.Operations[0].Kind != history.KindFindReplace || resp.Operations[1].Kind != history.KindInsert {
		t.Errorf("order = %q, %q", resp.Operations[0].Kind, resp.Operations[1].Kind)
	}
	if resp.UndoableCount != 1 {
		t.Errorf("undoable_count = %d, want 1", resp.UndoableCount)
	}
}

func TestMCP_ClearHistory(t *testing.T) {
	store := newFakeStore()
	store.seed("doc1", "")
	session := mcpSession(t, store)

	mcpCallTool(t, session, "doc_insert_text", map[string]any{
		"document_id": "doc1", "index": 0, "text": "aaa",
	})

	text := mcpCallTool(t, session, "doc_clear_history", map[string]any{"document_id": "doc1"})
	var resp struct {
		Cleared bool `json:"cleared"`
	}
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Cleared {
		t.Error("cleared = false")
	}
}

func TestMCP_Stats(t *testing.T) {
	store := newFakeStore()
	store.seed("doc1", "")
	store.seed("doc2", "")
	session := mcpSession(t, store)

	mcpCallTool(t, session, "doc_insert_text", map[string]any{
		"document_id": "doc1", "index": 0, "text": "aaa",
	})
	mcpCallTool(t, session, "doc_insert_text", map[string]any{
		"document_id": "doc2", "index": 0, "text": "bbb",
	})
	mcpCallTool(t, session, "doc_undo", map[string]any{"document_id": "doc2"})

	text := mcpCallTool(t, session, "history_stats", map[string]any{})
	var stats history.Stats
	if err := json.Unmarshal([]byte(text), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.DocumentsTracked != 2 || stats.TotalOperations != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.UndoneOperations != 1 {
		t.Errorf("undone = %d, want 1", stats.UndoneOperations)
	}
}

func TestMCP_InvalidArguments(t *testing.T) {
	session := mcpSession(t, newFakeStore())

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "doc_insert_text",
		Arguments: map[string]any{"document_id": "doc1", "index": -5, "text": "x"},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a negative index")
	}
}
