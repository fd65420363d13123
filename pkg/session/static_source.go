package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/priceblocs/priceblocs-go/pkg/client"
	"github.com/priceblocs/priceblocs-go/pkg/pricing"
)

// StaticSource serves a pricing configuration from a local YAML fixture
// instead of the config API, for offline development and tests. The fixture
// mirrors the API envelope:
//
//	id: cfg_local
//	data:
//	  admin:
//	    clientKey: pk_local
//	  products:
//	    - id: p1
//	      name: Basic
type StaticSource struct {
	values   pricing.Values
	metadata pricing.Metadata
}

// NewStaticSource loads a fixture file.
func NewStaticSource(path string) (*StaticSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: failed to read fixture %s: %w", path, err)
	}
	return NewStaticSourceFromBytes(raw)
}

// NewStaticSourceFromBytes parses a YAML fixture. The document is decoded
// through its JSON form so fixture keys match the wire names the API uses
// (clientKey, unit_amount), not Go field names.
func NewStaticSourceFromBytes(raw []byte) (*StaticSource, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("session: invalid fixture: %w", err)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("session: invalid fixture: %w", err)
	}

	var envelope struct {
		Data *pricing.Values `json:"data"`
		pricing.Metadata
	}
	if err := json.Unmarshal(encoded, &envelope); err != nil {
		return nil, fmt.Errorf("session: invalid fixture: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("session: fixture has no data section")
	}

	return &StaticSource{values: *envelope.Data, metadata: envelope.Metadata}, nil
}

// FetchConfig returns deep copies of the fixture. Params are accepted for
// interface compatibility and ignored; a fixture is not personalizable.
func (s *StaticSource) FetchConfig(_ context.Context, _ client.ConfigParams) (*pricing.Values, *pricing.Metadata, error) {
	values := cloneValues(&s.values)
	metadata := s.metadata
	return values, &metadata, nil
}
