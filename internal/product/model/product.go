// Package model holds the product entity and the validated input used to create or change it.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is a catalog record as persisted in the store and returned by the API.
type Product struct {
	ID          int64
	Name        string
	Description *string
	// DescriptionNull records a description explicitly set to null, which is
	// written back as "description": null instead of being omitted.
	DescriptionNull bool
	Price           float64
}

// productJSON is the wire and file shape of a Product.
type productJSON struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description json.RawMessage `json:"description,omitempty"`
	Price       float64         `json:"price"`
}

var jsonNull = json.RawMessage("null")

// MarshalJSON omits an absent description and keeps an explicit null.
func (p Product) MarshalJSON() ([]byte, error) {
	out := productJSON{ID: p.ID, Name: p.Name, Price: p.Price}
	switch {
	case p.Description != nil:
		raw, err := json.Marshal(*p.Description)
		if err != nil {
			return nil, err
		}
		out.Description = raw
	case p.DescriptionNull:
		out.Description = jsonNull
	}
	return json.Marshal(out)
}

// UnmarshalJSON tells an absent description apart from "description": null.
func (p *Product) UnmarshalJSON(data []byte) error {
	var in productJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Product{ID: in.ID, Name: in.Name, Price: in.Price}
	if in.Description == nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(in.Description), jsonNull) {
		p.DescriptionNull = true
		return nil
	}
	var desc string
	if err := json.Unmarshal(in.Description, &desc); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	p.Description = &desc
	return nil
}

// Field is an input value that remembers whether the client supplied it.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a Field marked as supplied.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Input is the normalized payload produced by validation.
// Only fields with Set == true take part in a merge.
type Input struct {
	Name        Field[string]
	Description Field[*string]
	Price       Field[float64]
}

// NewProduct builds a record with the given id from the supplied fields.
func (in Input) NewProduct(id int64) Product {
	return Product{ID: id}.Merge(in)
}

// Merge overwrites the fields supplied in the input and keeps the rest.
// The id is never touched. A supplied nil description clears it.
func (p Product) Merge(in Input) Product {
	if in.Name.Set {
		p.Name = in.Name.Value
	}
	if in.Description.Set {
		p.Description = cloneString(in.Description.Value)
		p.DescriptionNull = in.Description.Value == nil
	}
	if in.Price.Set {
		p.Price = in.Price.Value
	}
	return p
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	p.Description = cloneString(p.Description)
	return p
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
