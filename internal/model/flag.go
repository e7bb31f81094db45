package model

import (
	"bytes"
	"fmt"
)

// Flag 是一个布尔值，在 JSON 中按 1/0 编码，以兼容前端的 isUser 字段。
type Flag bool

// MarshalJSON implements the json.Marshaler interface.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON 同时接受 1/0 和 true/false。
func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*f = true
	case "0", "false", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %s", data)
	}
	return nil
}
