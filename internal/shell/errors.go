package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// FormatError renders err with the offending line of src and a caret under
// the span, when the error carries one.
func FormatError(src string, err error) string {
	span, ok := errorSpan(err)
	if !ok || span.Start > len(src) {
		return "Error: " + err.Error()
	}

	lineStart := strings.LastIndex(src[:span.Start], "\n") + 1
	lineEnd := len(src)
	if i := strings.Index(src[span.Start:], "\n"); i >= 0 {
		lineEnd = span.Start + i
	}
	width := max(1, min(span.End, lineEnd)-span.Start)

	return fmt.Sprintf("Error: %s\n  %s\n  %s%s", err,
		src[lineStart:lineEnd],
		strings.Repeat(" ", span.Start-lineStart),
		strings.Repeat("^", width))
}

func errorSpan(err error) (nutypes.Span, bool) {
	var pe *nutypes.ParseError
	if errors.As(err, &pe) {
		return pe.Span, true
	}
	var se *nutypes.ShellError
	if errors.As(err, &se) && se.Span != (nutypes.Span{}) {
		return se.Span, true
	}
	return nutypes.Span{}, false
}
