package validation

import (
	"errors"
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/abgdnv/productcatalog/internal/product/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func Test_Validator_Valid(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected model.Input
	}{
		{
			name: "full product",
			body: `{"name":"Test Product","description":"Test Description","price":99.99}`,
			expected: model.Input{
				Name:        model.Some("Test Product"),
				Description: model.Some(strPtr("Test Description")),
				Price:       model.Some(99.99),
			},
		},
		{
			name:     "without description",
			body:     `{"name":"Test Product","price":99.99}`,
			expected: model.Input{Name: model.Some("Test Product"), Price: model.Some(99.99)},
		},
		{
			name:     "zero price",
			body:     `{"name":"Test Product","price":0}`,
			expected: model.Input{Name: model.Some("Test Product"), Price: model.Some(0.0)},
		},
		{
			name:     "name is trimmed",
			body:     `{"name":"  Test Product  ","price":99.99}`,
			expected: model.Input{Name: model.Some("Test Product"), Price: model.Some(99.99)},
		},
		{
			name: "empty description",
			body: `{"name":"Pen","description":"","price":1}`,
			expected: model.Input{
				Name:        model.Some("Pen"),
				Description: model.Some(strPtr("")),
				Price:       model.Some(1.0),
			},
		},
		{
			name: "null description is supplied as a clear",
			body: `{"name":"Pen","description":null,"price":1}`,
			expected: model.Input{
				Name:        model.Some("Pen"),
				Description: model.Some[*string](nil),
				Price:       model.Some(1.0),
			},
		},
		{
			name:     "numeric string price is converted",
			body:     `{"name":"Pen","price":"10"}`,
			expected: model.Input{Name: model.Some("Pen"), Price: model.Some(10.0)},
		},
		{
			name:     "padded decimal string price is converted",
			body:     `{"name":"Pen","price":" 2.50 "}`,
			expected: model.Input{Name: model.Some("Pen"), Price: model.Some(2.5)},
		},
		{
			name:     "unknown fields are ignored",
			body:     `{"name":"Pen","price":1,"id":55,"color":"blue"}`,
			expected: model.Input{Name: model.Some("Pen"), Price: model.Some(1.0)},
		},
	}

	v := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			in, err := v.Validate([]byte(tc.body))
			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, in)
		})
	}
}

func Test_Validator_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "missing name",
			body:     `{"price":99.99}`,
			expected: []string{`"name" is required`},
		},
		{
			name:     "empty name",
			body:     `{"name":"","price":99.99}`,
			expected: []string{`"name" is not allowed to be empty`},
		},
		{
			name:     "whitespace name",
			body:     `{"name":"   ","price":99.99}`,
			expected: []string{`"name" is not allowed to be empty`},
		},
		{
			name:     "name not a string",
			body:     `{"name":42,"price":1}`,
			expected: []string{`"name" must be a string`},
		},
		{
			name:     "missing price",
			body:     `{"name":"Test Product"}`,
			expected: []string{`"price" is required`},
		},
		{
			name:     "negative price",
			body:     `{"name":"Test Product","price":-10}`,
			expected: []string{`"price" must be greater than or equal to 0`},
		},
		{
			name:     "price not a number",
			body:     `{"name":"Test Product","price":"not a number"}`,
			expected: []string{`"price" must be a number`},
		},
		{
			name:     "price is an empty string",
			body:     `{"name":"Test Product","price":""}`,
			expected: []string{`"price" must be a number`},
		},
		{
			name:     "price string is not finite",
			body:     `{"name":"Test Product","price":"Infinity"}`,
			expected: []string{`"price" must be a number`},
		},
		{
			name:     "negative numeric string price",
			body:     `{"name":"Test Product","price":"-3"}`,
			expected: []string{`"price" must be greater than or equal to 0`},
		},
		{
			name:     "price is a boolean",
			body:     `{"name":"Test Product","price":true}`,
			expected: []string{`"price" must be a number`},
		},
		{
			name:     "null price",
			body:     `{"name":"Test Product","price":null}`,
			expected: []string{`"price" must be a number`},
		},
		{
			name:     "description not a string",
			body:     `{"name":"Pen","description":7,"price":1}`,
			expected: []string{`"description" must be a string`},
		},
		{
			name: "all violations are reported together",
			body: `{"name":"","description":false,"price":-50}`,
			expected: []string{
				`"name" is not allowed to be empty`,
				`"description" must be a string`,
				`"price" must be greater than or equal to 0`,
			},
		},
		{
			name:     "empty object",
			body:     `{}`,
			expected: []string{`"name" is required`, `"price" is required`},
		},
		{
			name:     "not an object",
			body:     `[1,2,3]`,
			expected: []string{`"value" must be of type object`},
		},
		{
			name:     "empty body",
			body:     ``,
			expected: []string{`"name" is required`, `"price" is required`},
		},
		{
			name:     "whitespace body",
			body:     " \n\t ",
			expected: []string{`"name" is required`, `"price" is required`},
		},
		{
			name:     "bare string",
			body:     `"pen"`,
			expected: []string{`"value" must be of type object`},
		},
		{
			name:     "malformed json",
			body:     `{"name":`,
			expected: []string{`"value" must be valid JSON`},
		},
	}

	v := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			in, err := v.Validate([]byte(tc.body))
			// then
			require.Error(t, err)
			var vErr *perrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.expected, vErr.Messages)
			assert.Equal(t, model.Input{}, in)
		})
	}
}
