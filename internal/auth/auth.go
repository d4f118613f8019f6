// Package auth manages the Google OAuth session: validating and refreshing
// the stored token, running the interactive browser flow when no usable
// token exists, and resolving the signed-in identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/tmalloy/wayfarer/internal/store"
	"github.com/tmalloy/wayfarer/pkg/logger"
	"github.com/tmalloy/wayfarer/pkg/metrics"
)

// ErrReauthRequired signals that no stored token can be made valid and an
// interactive login is needed.
var ErrReauthRequired = errors.New("interactive authentication required")

var oauthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

// Authenticator drives the token lifecycle. Token validation never gets
// stuck: any failure to validate or refresh clears the stored token so the
// next step is always a clean interactive login.
type Authenticator struct {
	cfg      *oauth2.Config
	creds    *store.CredentialStore
	profiles *store.ProfileStore
	log      logger.Logger
	metrics  *metrics.Metrics

	// Seams for tests; default to the real OAuth endpoints.
	refresh       func(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error)
	fetchIdentity func(ctx context.Context, token *oauth2.Token) (store.UserIdentity, error)
	promptURL     func(url string)
}

// New creates an Authenticator from a Google client secret JSON blob.
func New(clientSecretJSON []byte, creds *store.CredentialStore, profiles *store.ProfileStore, log logger.Logger, m *metrics.Metrics) (*Authenticator, error) {
	if creds == nil {
		panic("credential store cannot be nil")
	}
	if profiles == nil {
		panic("profile store cannot be nil")
	}
	if log == nil {
		panic("logger cannot be nil")
	}

	cfg, err := google.ConfigFromJSON(clientSecretJSON, oauthScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OAuth client secret: %w", err)
	}

	a := &Authenticator{
		cfg:      cfg,
		creds:    creds,
		profiles: profiles,
		log:      log,
		metrics:  m,
	}
	a.refresh = a.refreshViaEndpoint
	a.fetchIdentity = a.fetchIdentityViaAPI
	a.promptURL = func(url string) {
		fmt.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", url)
	}
	return a, nil
}

// EnsureValid returns a usable token, refreshing the stored one if it has
// expired. It returns ErrReauthRequired when there is no stored token, the
// token cannot be refreshed, or refreshing fails; in the failure cases the
// stored token is cleared first so a retry goes straight to login.
func (a *Authenticator) EnsureValid(ctx context.Context) (*oauth2.Token, error) {
	token := a.creds.Load(ctx)
	if token == nil {
		return nil, ErrReauthRequired
	}

	if token.Valid() {
		return token, nil
	}

	if token.RefreshToken == "" {
		a.log.Warn("Stored token expired with no refresh token")
		a.clearStored(ctx)
		return nil, ErrReauthRequired
	}

	if a.metrics != nil {
		a.metrics.TokenRefreshesTotal.Inc()
	}
	refreshed, err := a.refresh(ctx, token)
	if err != nil {
		a.log.Warn("Token refresh failed", logger.ErrorField(err))
		a.clearStored(ctx)
		return nil, ErrReauthRequired
	}

	if err := a.creds.Save(ctx, refreshed); err != nil {
		// The refreshed token is still usable this run.
		a.log.Error("Failed to persist refreshed token", logger.ErrorField(err))
	}
	a.log.Debug("Token refreshed", logger.TimeField("expiry", refreshed.Expiry))
	return refreshed, nil
}

// AuthenticateInteractively runs the loopback OAuth flow: it starts a
// listener on an ephemeral local port, prints the consent URL, waits for
// the redirect, exchanges the code, persists the token and records the
// identity in the profile registry.
func (a *Authenticator) AuthenticateInteractively(ctx context.Context) (store.UserIdentity, *oauth2.Token, error) {
	if a.metrics != nil {
		a.metrics.InteractiveLogins.Inc()
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return store.UserIdentity{}, nil, fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer func() { _ = listener.Close() }()

	port := listener.Addr().(*net.TCPAddr).Port
	cfg := *a.cfg
	cfg.RedirectURL = fmt.Sprintf("http://127.0.0.1:%d/callback", port)

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- errors.New("OAuth state mismatch")
			return
		}
		if errParam := r.URL.Query().Get("error"); errParam != "" {
			http.Error(w, "authorization denied", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization denied: %s", errParam)
			return
		}
		fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
		codeCh <- r.URL.Query().Get("code")
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() { _ = server.Serve(listener) }()
	defer func() { _ = server.Close() }()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	a.promptURL(authURL)
	a.log.Info("Waiting for OAuth callback", logger.IntField("port", port))

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return store.UserIdentity{}, nil, err
	case <-ctx.Done():
		return store.UserIdentity{}, nil, fmt.Errorf("authentication cancelled: %w", ctx.Err())
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return store.UserIdentity{}, nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	identity, err := a.fetchIdentity(ctx, token)
	if err != nil {
		return store.UserIdentity{}, nil, fmt.Errorf("failed to fetch user identity: %w", err)
	}

	if err := a.creds.Save(ctx, token); err != nil {
		return store.UserIdentity{}, nil, fmt.Errorf("failed to persist token: %w", err)
	}
	if err := a.profiles.Record(ctx, identity); err != nil {
		a.log.Error("Failed to record user profile", logger.ErrorField(err))
	}

	a.log.Info("Interactive login complete", logger.StringField("email", identity.Email))
	return identity, token, nil
}

// Identity resolves the signed-in user for a valid token.
func (a *Authenticator) Identity(ctx context.Context, token *oauth2.Token) (store.UserIdentity, error) {
	return a.fetchIdentity(ctx, token)
}

// Logout removes the stored token. The profile registry is left intact.
func (a *Authenticator) Logout(ctx context.Context) error {
	return a.creds.Clear(ctx)
}

func (a *Authenticator) clearStored(ctx context.Context) {
	if err := a.creds.Clear(ctx); err != nil {
		a.log.Error("Failed to clear stored token", logger.ErrorField(err))
	}
}

func (a *Authenticator) refreshViaEndpoint(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	return a.cfg.TokenSource(ctx, token).Token()
}

func (a *Authenticator) fetchIdentityViaAPI(ctx context.Context, token *oauth2.Token) (store.UserIdentity, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(a.cfg.TokenSource(ctx, token)))
	if err != nil {
		return store.UserIdentity{}, fmt.Errorf("failed to create userinfo service: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return store.UserIdentity{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}

	return store.UserIdentity{
		Name:    info.Name,
		Email:   info.Email,
		Picture: info.Picture,
	}, nil
}
