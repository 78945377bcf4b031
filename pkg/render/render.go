// Package render turns command results into the output formats of the CLI.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vmihailenco/msgpack/v5"
)

type Format string

const (
	FormatJSON    Format = "json"
	FormatText    Format = "text"
	FormatPretty  Format = "pretty"
	FormatMsgpack Format = "msgpack"
)

var ValidFormats = []Format{FormatJSON, FormatText, FormatPretty, FormatMsgpack}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "pretty":
		return FormatPretty, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: json, text, pretty, msgpack)", s)
	}
}

// Binary reports whether the format is not meant for a terminal.
func (f Format) Binary() bool { return f == FormatMsgpack }

type Renderer[T any] struct {
	Data         []T
	TextFormat   func(T) string
	PrettyFormat func([]T) string
}

func (r Renderer[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON, FormatMsgpack:
		return Marshal(format, r.Data)
	case FormatPretty:
		return r.renderPretty()
	case FormatText:
		return r.renderText()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (r Renderer[T]) renderPretty() (string, error) {
	if r.PrettyFormat == nil {
		return "", fmt.Errorf("pretty format not defined for this type")
	}
	return r.PrettyFormat(r.Data), nil
}

func (r Renderer[T]) renderText() (string, error) {
	if r.TextFormat == nil {
		return "", fmt.Errorf("text format not defined for this type")
	}

	var lines []string
	for _, item := range r.Data {
		lines = append(lines, r.TextFormat(item))
	}
	return strings.Join(lines, "\n"), nil
}

// Marshal encodes v as indented JSON or as msgpack. msgpack uses the json
// struct tags so both formats carry the same field names.
func Marshal(format Format, v any) (string, error) {
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		enc.UseCompactInts(true)
		if err := encodeMsgpack(enc, v); err != nil {
			return "", fmt.Errorf("failed to encode msgpack: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("format %s cannot encode values", format)
	}
}

// OrderedMap is a map that keeps its key order when encoded.
type OrderedMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

func encodeMsgpack(enc *msgpack.Encoder, v any) error {
	switch v := v.(type) {
	case OrderedMap:
		keys := v.Keys()
		if err := enc.EncodeMapLen(len(keys)); err != nil {
			return err
		}
		for _, key := range keys {
			if err := enc.EncodeString(key); err != nil {
				return err
			}
			val, _ := v.Get(key)
			if err := encodeMsgpack(enc, val); err != nil {
				return err
			}
		}
		return nil
	case []any:
		if err := enc.EncodeArrayLen(len(v)); err != nil {
			return err
		}
		for _, item := range v {
			if err := encodeMsgpack(enc, item); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(v)
}

var (
	tableStyle  = lipgloss.NewStyle().PaddingRight(1)
	headerStyle = tableStyle.Bold(true)
)

// Table returns the table used by pretty output.
func Table(headers ...string) *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return tableStyle
		})
}
