package auth

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
)

// AcquirerConfig selects and configures an acquisition strategy.
type AcquirerConfig struct {
	Flow domain.AuthFlow

	// Interactive flow.
	CallbackPort   int
	ConsentTimeout time.Duration
	OpenBrowser    bool
	Out            io.Writer

	// Static flow.
	AccessToken  string
	RefreshToken string

	HTTPClient *http.Client
}

// NewAcquirer creates the CredentialAcquirer for cfg.Flow.
func NewAcquirer(cfg AcquirerConfig, refresher driven.TokenRefresher) (driven.CredentialAcquirer, error) {
	switch cfg.Flow {
	case domain.AuthFlowInteractive, "":
		return NewInteractiveAcquirer(cfg.CallbackPort, cfg.ConsentTimeout, cfg.OpenBrowser, cfg.Out, cfg.HTTPClient), nil
	case domain.AuthFlowStatic:
		return NewStaticAcquirer(cfg.AccessToken, cfg.RefreshToken, refresher), nil
	case domain.AuthFlowNone:
		return NewNullAcquirer(), nil
	default:
		return nil, fmt.Errorf("%w: unknown auth flow %q", domain.ErrInvalidInput, cfg.Flow)
	}
}
