package responseformat

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the output encoding
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgPack Format = "msgpack"
)

// ParseFormat validates a format name. An empty name selects JSON.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgPack:
		return FormatMsgPack, nil
	}
	return "", fmt.Errorf("unsupported output format %q: use 'json' or 'msgpack'", name)
}

// Formatter handles encoding results in JSON or MessagePack format
type Formatter struct {
	format Format
	indent bool
}

// NewFormatter creates a new formatter for the given format
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Indent enables indented JSON output
func (f *Formatter) Indent() *Formatter {
	f.indent = true
	return f
}

// Write encodes data to w in the configured format
func (f *Formatter) Write(w io.Writer, data any) error {
	if f.format == FormatMsgPack {
		return f.writeMsgPack(w, data)
	}
	return f.writeJSON(w, data)
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}

// Float is a float64 that encodes NaN and ±Inf as JSON null. MessagePack
// carries non-finite values natively.
type Float float64

// MarshalJSON implements json.Marshaler
func (v Float) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler, reading null as NaN
func (v *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Float(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = Float(f)
	return nil
}
