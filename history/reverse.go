// CLAUDE:SUMMARY Reverse-operation synthesizer — one exhaustive case per mutation kind, pure over the captured record.
package history

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// Reverse derives the reverse operation for a record, or reports that none
// can be synthesized. It reasons only from the captured record and never
// inspects the live document: cheap and local, but blind to any edits made
// to the document since capture. Replace reversal in particular reconstructs
// the range to overwrite from the recorded new text's length; if another
// mutation touched that region in the meantime the reverse op is stale.
//
// Every case is total: given the required fields it always produces a
// result, given missing fields it returns ok=false. Unknown kinds log a
// warning and return ok=false, they never fail hard.
func Reverse(rec *Record) (*ReverseOp, bool) {
	switch rec.Kind {
	case KindInsert:
		// Length comes from the recorded params, not re-measured from
		// the document.
		n := utf8.RuneCountInString(paramText(rec))
		end := rec.StartIndex + n
		return &ReverseOp{
			Kind:        KindDelete,
			StartIndex:  rec.StartIndex,
			EndIndex:    &end,
			Description: fmt.Sprintf("undo insert: delete %d chars at %d", n, rec.StartIndex),
		}, true

	case KindDelete:
		if rec.DeletedText == nil {
			return nil, false
		}
		return &ReverseOp{
			Kind:       KindInsert,
			StartIndex: rec.StartIndex,
			Text:       *rec.DeletedText,
			Description: fmt.Sprintf("undo delete: re-insert %d chars at %d",
				utf8.RuneCountInString(*rec.DeletedText), rec.StartIndex),
		}, true

	case KindReplace:
		if rec.OriginalText == nil {
			return nil, false
		}
		// The reverse op overwrites the text currently in the document,
		// i.e. the previously inserted new text, so the range spans the
		// new text's length rather than the original range.
		end := rec.StartIndex + utf8.RuneCountInString(paramText(rec))
		return &ReverseOp{
			Kind:        KindReplace,
			StartIndex:  rec.StartIndex,
			EndIndex:    &end,
			Text:        *rec.OriginalText,
			Description: fmt.Sprintf("undo replace: restore original text at %d", rec.StartIndex),
		}, true

	case KindFormat:
		if rec.OriginalFormatting == nil {
			return nil, false
		}
		return &ReverseOp{
			Kind:       KindFormat,
			StartIndex: rec.StartIndex,
			EndIndex:   rec.EndIndex,
			Formatting: rec.OriginalFormatting,
			Description: fmt.Sprintf("undo format: restore original formatting at %d-%d",
				rec.StartIndex, derefOr(rec.EndIndex, rec.StartIndex)),
		}, true

	case KindInsertTable:
		// A table spans multiple structural elements; removing one is out
		// of scope for automatic reversal.
		return nil, false

	case KindInsertPageBreak:
		// Page breaks occupy a single position.
		end := rec.StartIndex + 1
		return &ReverseOp{
			Kind:        KindDelete,
			StartIndex:  rec.StartIndex,
			EndIndex:    &end,
			Description: fmt.Sprintf("undo page break: delete at %d", rec.StartIndex),
		}, true

	case KindFindReplace:
		// A global replace touches an unbounded, untracked set of
		// locations; reversal would require per-occurrence capture.
		return nil, false

	default:
		slog.Warn("history: unknown operation kind for undo", "kind", rec.Kind, "operation_id", rec.ID)
		return nil, false
	}
}

// paramText reads the "text" argument out of the recorded params, defaulting
// to empty when absent.
func paramText(rec *Record) string {
	s, _ := rec.Params["text"].(string)
	return s
}

func derefOr(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}
