// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidProductID is returned when a catalog id is neither a JSON number nor a string.
var ErrInvalidProductID = errors.New("invalid product id")

// ProductID is the catalog's opaque product identifier. It remembers whether the
// catalog sent it as a JSON number or string so the write call echoes it unchanged.
type ProductID struct {
	Value   string
	Numeric bool
}

// NumericID builds a ProductID for a numeric catalog id.
func NumericID(n int64) ProductID {
	return ProductID{Value: strconv.FormatInt(n, 10), Numeric: true}
}

// StringID builds a ProductID for a string catalog id.
func StringID(s string) ProductID {
	return ProductID{Value: s}
}

func (id ProductID) String() string { return id.Value }

// IsZero reports whether the id was never set.
func (id ProductID) IsZero() bool { return id.Value == "" && !id.Numeric }

// MarshalJSON writes the id in the representation it was received in.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.Numeric {
		if !json.Valid([]byte(id.Value)) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidProductID, id.Value)
		}
		return []byte(id.Value), nil
	}
	return json.Marshal(id.Value)
}

// UnmarshalJSON accepts a JSON number or string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("%w: missing", ErrInvalidProductID)
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProductID, err)
		}
		*id = ProductID{Value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProductID, err)
	}
	*id = ProductID{Value: n.String(), Numeric: true}
	return nil
}

// Candidate is a catalog product that may be the target of a status update.
type Candidate struct {
	ID    ProductID `json:"id"`
	Name  string    `json:"name"`
	Stock *int      `json:"stock"`
}

// UnmarshalJSON decodes a catalog product. A stock value that is not an
// integer (strings, fractions, objects) decodes as unknown.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    ProductID       `json:"id"`
		Name  string          `json:"name"`
		Stock json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Candidate{ID: raw.ID, Name: raw.Name, Stock: parseStock(raw.Stock)}
	return nil
}

// maxExactStock bounds floats that still convert to int without loss.
const maxExactStock = 1 << 53

func parseStock(raw json.RawMessage) *int {
	s := string(bytes.TrimSpace(raw))
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 0); err == nil {
		v := int(n)
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactStock {
		return nil
	}
	v := int(f)
	return &v
}

// StockLabel renders a human-readable stock indicator.
func (c Candidate) StockLabel() string {
	if c.Stock == nil {
		return "Stock: unknown"
	}
	return "Stock: " + strconv.Itoa(*c.Stock)
}

// FindCandidate returns the candidate whose id string equals value.
func FindCandidate(cands []Candidate, value string) (Candidate, bool) {
	for _, c := range cands {
		if c.ID.String() == value {
			return c, true
		}
	}
	return Candidate{}, false
}
