package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/custodia-labs/gconnect/internal/adapters/driving/oauth"
	"github.com/custodia-labs/gconnect/internal/core/domain"
	"github.com/custodia-labs/gconnect/internal/core/ports/driven"
	"github.com/custodia-labs/gconnect/internal/logger"
)

// Ensure InteractiveAcquirer implements the interface.
var _ driven.CredentialAcquirer = (*InteractiveAcquirer)(nil)

// DefaultConsentTimeout bounds how long the browser flow waits for the user.
const DefaultConsentTimeout = 5 * time.Minute

// InteractiveAcquirer runs the installed-app consent flow: a loopback
// callback server, PKCE (S256), a random state and offline access.
type InteractiveAcquirer struct {
	callbackPort   int
	consentTimeout time.Duration
	launchBrowser  bool
	out            io.Writer
	httpClient     *http.Client

	isInteractive func() bool
	openBrowser   func(url string) error
}

// NewInteractiveAcquirer creates the browser consent strategy. The consent
// URL is printed to out. Port 0 picks a free port.
func NewInteractiveAcquirer(
	callbackPort int, consentTimeout time.Duration, launchBrowser bool, out io.Writer, httpClient *http.Client,
) *InteractiveAcquirer {
	if consentTimeout <= 0 {
		consentTimeout = DefaultConsentTimeout
	}
	if out == nil {
		out = os.Stderr
	}
	return &InteractiveAcquirer{
		callbackPort:   callbackPort,
		consentTimeout: consentTimeout,
		launchBrowser:  launchBrowser,
		out:            out,
		httpClient:     httpClient,
		isInteractive:  func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		openBrowser:    oauth.OpenBrowser,
	}
}

// Acquire obtains user consent for scopes in the browser.
// Returns domain.ErrAuthFlowRequired when no terminal is attached or the
// consent does not complete.
func (a *InteractiveAcquirer) Acquire(
	ctx context.Context, cfg domain.ClientConfig, scopes []string,
) (*domain.Credential, error) {
	if !a.isInteractive() {
		return nil, fmt.Errorf("%w: no terminal attached for browser consent, run `gconnect auth login`",
			domain.ErrAuthFlowRequired)
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return nil, err
	}

	server := oauth.NewCallbackServer(a.callbackPort, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("start callback server: %w", err)
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Debug("stop callback server: %v", err)
		}
	}()

	conf := oauthConfig(cfg, server.RedirectURI(), scopes)
	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintf(a.out, "Open this URL to authorize gconnect:\n\n  %s\n\n", authURL)
	if a.launchBrowser {
		if err := a.openBrowser(authURL); err != nil {
			logger.Debug("open browser: %v", err)
		}
	}

	code, err := server.WaitForCode(ctx, a.consentTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthFlowRequired, err)
	}

	tok, err := conf.Exchange(withHTTPClient(ctx, a.httpClient), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: exchange authorization code: %w", domain.ErrAuthFlowRequired, err)
	}

	fmt.Fprintln(a.out, "Authorization complete.")
	return credentialFromToken(tok, scopes), nil
}
