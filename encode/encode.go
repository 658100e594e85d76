package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/rendertree/format"
	"github.com/signadot/rendertree/ir"
	"github.com/signadot/rendertree/libdiff"

	"github.com/goccy/go-yaml"
)

type EncState struct {
	depth, indent int
	wire          bool
	format        format.Format

	Color func(ColorAttr, string) string
}

// Encode writes the payload of r to w.
func Encode(r *ir.Root, w io.Writer, opts ...EncodeOption) error {
	v, err := RootValue(r)
	if err != nil {
		return err
	}
	return EncodeValue(v, w, opts...)
}

// EncodeDiff writes the payload of d to w.
func EncodeDiff(d *libdiff.RootDiff, w io.Writer, opts ...EncodeOption) error {
	v, err := DiffValue(d)
	if err != nil {
		return err
	}
	return EncodeValue(v, w, opts...)
}

// EncodeValue writes an ordered generic value, as returned by RootValue or
// DiffValue, to w followed by a newline.
func EncodeValue(v any, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		d, err := yaml.MarshalWithOptions(v, yaml.Indent(max(es.indent, 1)))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	buf := bytes.NewBuffer(nil)
	if err := es.encode(buf, v); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (es *EncState) encode(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case yaml.MapSlice:
		return es.object(buf, x)
	case []any:
		return es.array(buf, x)
	case string:
		buf.WriteString(es.color(StringColor, quote(x)))
	case int:
		buf.WriteString(es.color(NumberColor, strconv.Itoa(x)))
	case nil:
		buf.WriteString(es.color(ValueColor, "null"))
	default:
		return fmt.Errorf("cannot encode %T", v)
	}
	return nil
}

func (es *EncState) object(buf *bytes.Buffer, m yaml.MapSlice) error {
	if len(m) == 0 {
		buf.WriteString(es.color(SepColor, "{}"))
		return nil
	}
	buf.WriteString(es.color(SepColor, "{"))
	es.depth++
	for i, item := range m {
		if i > 0 {
			buf.WriteString(es.color(SepColor, ","))
		}
		es.newline(buf)
		key := fmt.Sprint(item.Key)
		attr := IndexColor
		if _, err := strconv.Atoi(key); err != nil {
			attr = KeyColor
		}
		buf.WriteString(es.color(attr, quote(key)))
		buf.WriteString(es.color(SepColor, ":"))
		if !es.wire {
			buf.WriteByte(' ')
		}
		if err := es.encode(buf, item.Value); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(buf)
	buf.WriteString(es.color(SepColor, "}"))
	return nil
}

func (es *EncState) array(buf *bytes.Buffer, a []any) error {
	if len(a) == 0 {
		buf.WriteString(es.color(SepColor, "[]"))
		return nil
	}
	buf.WriteString(es.color(SepColor, "["))
	es.depth++
	for i, v := range a {
		if i > 0 {
			buf.WriteString(es.color(SepColor, ","))
		}
		es.newline(buf)
		if err := es.encode(buf, v); err != nil {
			return err
		}
	}
	es.depth--
	es.newline(buf)
	buf.WriteString(es.color(SepColor, "]"))
	return nil
}

func (es *EncState) newline(buf *bytes.Buffer) {
	if es.wire {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", es.depth*es.indent))
}

func (es *EncState) color(attr ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(attr, s)
}

func quote(s string) string {
	buf := bytes.NewBuffer(nil)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
