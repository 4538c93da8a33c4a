package pubchem

import "context"

// ClientInterface defines the PubChem operations used by the catalog.
type ClientInterface interface {
	Lookup(ctx context.Context, name string) (*Compound, error)
}

var _ ClientInterface = (*Client)(nil)
