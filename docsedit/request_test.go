package docsedit

import (
	"reflect"
	"testing"
)

func TestInsertTextRequest(t *testing.T) {
	got := InsertTextRequest(25, "hello")
	want := Request{
		"insertText": map[string]any{
			"location": map[string]any{"index": 25},
			"text":     "hello",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InsertTextRequest = %#v, want %#v", got, want)
	}
}

func TestDeleteRangeRequest(t *testing.T) {
	got := DeleteRangeRequest(10, 20)
	want := Request{
		"deleteContentRange": map[string]any{
			"range": map[string]any{"startIndex": 10, "endIndex": 20},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeleteRangeRequest = %#v, want %#v", got, want)
	}
}

func TestUpdateTextStyleRequestFieldsMask(t *testing.T) {
	got := UpdateTextStyleRequest(5, 15, map[string]any{
		"underline": true,
		"bold":      true,
		"italic":    false,
	})

	body, ok := got["updateTextStyle"].(map[string]any)
	if !ok {
		t.Fatalf("missing updateTextStyle body: %#v", got)
	}
	if fields := body["fields"]; fields != "bold,italic,underline" {
		t.Errorf("fields mask = %q, want sorted %q", fields, "bold,italic,underline")
	}
	if !reflect.DeepEqual(body["range"], map[string]any{"startIndex": 5, "endIndex": 15}) {
		t.Errorf("range = %#v", body["range"])
	}
}

func TestReplaceAllTextRequest(t *testing.T) {
	got := ReplaceAllTextRequest("old", "new", true)
	want := Request{
		"replaceAllText": map[string]any{
			"containsText": map[string]any{"text": "old", "matchCase": true},
			"replaceText":  "new",
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReplaceAllTextRequest = %#v, want %#v", got, want)
	}
}

func TestInsertTableRequest(t *testing.T) {
	got := InsertTableRequest(100, 3, 4)
	body := got["insertTable"].(map[string]any)
	if body["rows"] != 3 || body["columns"] != 4 {
		t.Errorf("rows/columns = %v/%v", body["rows"], body["columns"])
	}
	if !reflect.DeepEqual(body["location"], map[string]any{"index": 100}) {
		t.Errorf("location = %#v", body["location"])
	}
}

func TestInsertPageBreakRequest(t *testing.T) {
	got := InsertPageBreakRequest(40)
	want := Request{
		"insertPageBreak": map[string]any{
			"location": map[string]any{"index": 40},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InsertPageBreakRequest = %#v, want %#v", got, want)
	}
}
