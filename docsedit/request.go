package docsedit

import (
	"sort"
	"strings"
)

func locationBody(index int) map[string]any {
	return map[string]any{"index": index}
}

func rangeBody(startIndex, endIndex int) map[string]any {
	return map[string]any{
		"startIndex": startIndex,
		"endIndex":   endIndex,
	}
}

// InsertTextRequest assembles an insertText request.
func InsertTextRequest(index int, text string) Request {
	return Request{
		"insertText": map[string]any{
			"location": locationBody(index),
			"text":     text,
		},
	}
}

// DeleteRangeRequest assembles a deleteContentRange request.
func DeleteRangeRequest(startIndex, endIndex int) Request {
	return Request{
		"deleteContentRange": map[string]any{
			"range": rangeBody(startIndex, endIndex),
		},
	}
}

// UpdateTextStyleRequest assembles an updateTextStyle request. The style map
// uses the API's textStyle field names (bold, italic, underline, fontSize,
// ...); the fields mask lists exactly the keys present, sorted for a stable
// request body.
func UpdateTextStyleRequest(startIndex, endIndex int, style map[string]any) Request {
	fields := make([]string, 0, len(style))
	for k := range style {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	return Request{
		"updateTextStyle": map[string]any{
			"range":     rangeBody(startIndex, endIndex),
			"textStyle": style,
			"fields":    strings.Join(fields, ","),
		},
	}
}

// ReplaceAllTextRequest assembles a replaceAllText request (global
// find-and-replace).
func ReplaceAllTextRequest(findText, replaceText string, matchCase bool) Request {
	return Request{
		"replaceAllText": map[string]any{
			"containsText": map[string]any{
				"text":      findText,
				"matchCase": matchCase,
			},
			"replaceText": replaceText,
		},
	}
}

// InsertTableRequest assembles an insertTable request.
func InsertTableRequest(index, rows, columns int) Request {
	return Request{
		"insertTable": map[string]any{
			"location": locationBody(index),
			"rows":     rows,
			"columns":  columns,
		},
	}
}

// InsertPageBreakRequest assembles an insertPageBreak request.
func InsertPageBreakRequest(index int) Request {
	return Request{
		"insertPageBreak": map[string]any{
			"location": locationBody(index),
		},
	}
}
