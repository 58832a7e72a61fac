package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oaspect/oaspect/internal/core/domain"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want domain.HTTPMethod
		ok   bool
	}{
		{"get", domain.MethodGet, true},
		{"GET", domain.MethodGet, true},
		{"Post", domain.MethodPost, true},
		{"delete", domain.MethodDelete, true},
		{"patch", domain.MethodPatch, true},
		{"options", domain.MethodOptions, true},
		{"head", domain.MethodHead, true},
		{"trace", domain.MethodTrace, true},
		{"parameters", "", false},
		{"x-amazon-apigateway-any-method", "", false},
	}

	for _, tc := range tests {
		method, ok := domain.ParseMethod(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, method, tc.in)
		}
	}
}

func TestEndpointKey(t *testing.T) {
	t.Parallel()

	e := domain.Endpoint{Path: "/pets/{petId}", Method: domain.MethodGet}
	assert.Equal(t, "GET /pets/{petId}", e.Key())
}

func TestSpecSortedHelpers(t *testing.T) {
	t.Parallel()

	spec := &domain.UnifiedSpec{
		Endpoints: map[string]domain.Endpoint{
			"POST /b": {},
			"GET /a":  {},
		},
		Schemas: map[string]domain.Schema{
			"Zebra": {},
			"Ant":   {},
		},
	}

	assert.Equal(t, []string{"GET /a", "POST /b"}, spec.EndpointKeys())
	assert.Equal(t, []string{"Ant", "Zebra"}, spec.SchemaNames())
}
