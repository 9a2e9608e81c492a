// Package jsonx tiene tipos de borde para el JSON del backend, que no es
// consistente con los tipos (ids como número o string, flags como 0/1 o bool).
package jsonx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt acepta 5, 5.0 o "5". null/"" => 0.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := ParseInt(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("jsonx: id must be number or numeric string: %w", err)
	}
	v, err := ParseInt(n.String())
	if err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}

func (f FlexInt) Int64() int64 { return int64(f) }

func (f FlexInt) String() string { return strconv.FormatInt(int64(f), 10) }

// ParseInt acepta enteros y floats enteros ("5", "5.0"). "" => 0.
func ParseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil || fl != float64(int64(fl)) {
		return 0, fmt.Errorf("jsonx: %q is not an integer id", s)
	}
	return int64(fl), nil
}

// FlexString acepta string o número (la edad llega de las dos formas).
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("jsonx: expected string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexBool acepta true/false, 0/1 y "0"/"1"/"true"/"false".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*f = true
	case "false", "0", "", "null":
		*f = false
	default:
		return fmt.Errorf("jsonx: %q is not a boolean", s)
	}
	return nil
}
