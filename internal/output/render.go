package output

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/selfagency/nushell/pkg/nutypes"
)

// RenderValue formats a value for display. Tables and records are drawn
// with lipgloss tables; styles may be nil for unstyled borders.
func RenderValue(v nutypes.Value, styles *ThemeStyleProvider) string {
	switch v.Type() {
	case nutypes.TypeNothing:
		return ""
	case nutypes.TypeTable:
		rows, _ := v.AsList()
		return renderTable(rows, styles)
	case nutypes.TypeRecord:
		return renderRecord(v, styles)
	case nutypes.TypeList:
		items, _ := v.AsList()
		return renderList(items, styles)
	default:
		return v.String()
	}
}

func newTable(styles *ThemeStyleProvider) *table.Table {
	t := table.New().Border(lipgloss.RoundedBorder())
	if styles == nil {
		return t
	}
	header := styles.Style(SemanticHeader)
	cell := styles.Style(SemanticPlain).Padding(0, 1)
	return t.
		BorderStyle(styles.Style(SemanticBorder)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// renderTable draws a list of records. Columns are the union of every
// record's columns in first-seen order; missing cells are left empty.
func renderTable(rows []nutypes.Value, styles *ThemeStyleProvider) string {
	var cols []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, c := range row.Columns() {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}

	t := newTable(styles).Headers(append([]string{"#"}, cols...)...)
	for i, row := range rows {
		cells := []string{strconv.Itoa(i)}
		for _, c := range cols {
			cell := ""
			if v, ok := row.Get(c); ok {
				cell = v.String()
			}
			cells = append(cells, cell)
		}
		t.Row(cells...)
	}
	return t.String()
}

func renderRecord(v nutypes.Value, styles *ThemeStyleProvider) string {
	t := newTable(styles)
	for _, c := range v.Columns() {
		cell, _ := v.Get(c)
		t.Row(c, cell.String())
	}
	return t.String()
}

func renderList(items []nutypes.Value, styles *ThemeStyleProvider) string {
	if len(items) == 0 {
		return "[]"
	}
	t := newTable(styles)
	for i, item := range items {
		t.Row(strconv.Itoa(i), RenderValue(item, styles))
	}
	return strings.TrimRight(t.String(), "\n")
}

// ToInterface converts a value into plain Go data for JSON encoding.
func ToInterface(v nutypes.Value) interface{} {
	switch v.Type() {
	case nutypes.TypeNothing:
		return nil
	case nutypes.TypeBool:
		b, _ := v.AsBool()
		return b
	case nutypes.TypeInt:
		i, _ := v.AsInt()
		return i
	case nutypes.TypeFloat:
		f, _ := v.AsFloat()
		return f
	case nutypes.TypeString:
		s, _ := v.AsString()
		return s
	case nutypes.TypeList, nutypes.TypeTable:
		items, _ := v.AsList()
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = ToInterface(item)
		}
		return out
	case nutypes.TypeRecord:
		out := make(map[string]interface{})
		for _, c := range v.Columns() {
			cell, _ := v.Get(c)
			out[c] = ToInterface(cell)
		}
		return out
	default:
		return v.String()
	}
}
