package auth

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// Ensure NullAcquirer implements the interface.
var _ driven.CredentialAcquirer = (*NullAcquirer)(nil)

// NullAcquirer never acquires. A server configured with it only works with
// a credential created beforehand by `gconnect auth login`.
type NullAcquirer struct{}

// NewNullAcquirer creates the no-acquisition strategy.
func NewNullAcquirer() *NullAcquirer {
	return &NullAcquirer{}
}

// Acquire always returns domain.ErrAuthFlowRequired.
func (a *NullAcquirer) Acquire(_ context.Context, _ domain.ClientConfig, _ []string) (*domain.Credential, error) {
	return nil, fmt.Errorf("%w: run `gconnect auth login`", domain.ErrAuthFlowRequired)
}
