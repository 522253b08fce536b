package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/heilocal/heilocal/internal/auth"
	"github.com/heilocal/heilocal/internal/server"
	"github.com/heilocal/heilocal/internal/shared"
)

// oauthTimeout bounds how long the CLI waits for the user to finish the
// browser consent screen.
const oauthTimeout = 2 * time.Minute

// AuthLogin signs in with email and password and persists the session tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	user, err := r.auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return fmt.Errorf("%w: check email and password", err)
		}
		return err
	}

	r.logger.Info("signed in", "email", user.Email)
	return r.writePlain("✓ Signed in as %s\n", user.Name)
}

// AuthGoogle runs the browser-based Google sign-in flow.
//
// Starts a local callback server, opens the consent URL in the default
// browser, and exchanges the returned ID token with the remote service.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	conf := r.googleConfig()
	if conf.ClientID == "" {
		return fmt.Errorf("%w: google client_id is not configured", shared.ErrMissingConfig)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	handler := server.NewOAuthHandler(conf, state)
	router := server.NewBasicRouter()
	router.Handler(handler)

	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	r.writePlain("Opening browser for Google sign-in…\n")
	r.writePlain("If it does not open, visit:\n%s\n", authURL)

	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
	case err := <-serveErr:
		return fmt.Errorf("callback server failed: %w", err)
	case <-time.After(oauthTimeout):
		return fmt.Errorf("%w: timed out waiting for consent", shared.ErrOAuthRejected)
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := result.Error(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrOAuthRejected, err)
	}

	credential, ok := result.Token.Extra("id_token").(string)
	if !ok || credential == "" {
		return fmt.Errorf("%w: google response carried no id token", shared.ErrOAuthRejected)
	}

	user, err := r.auth.LoginWithGoogle(ctx, credential)
	if err != nil {
		return err
	}

	r.logger.Info("signed in with google", "email", user.Email)
	return r.writePlain("✓ Signed in as %s\n", user.Name)
}

func (r *Runner) googleConfig() *oauth2.Config {
	creds := r.config.Credentials.Google

	redirect := creds.RedirectURI
	if redirect == "" {
		redirect = fmt.Sprintf("http://%s:%d/callback", r.config.Server.Host, r.config.Server.Port)
	}

	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirect,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// AuthRegister creates a new account and signs it in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")
	name := cmd.String("name")

	if err := r.auth.Register(ctx, email, password, name); err != nil {
		return err
	}

	user, err := r.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("account created but sign-in failed: %w", err)
	}

	return r.writePlain("✓ Account created, signed in as %s\n", user.Name)
}

// AuthLogout clears the stored session. Always succeeds locally even
// when the remote sign-out fails.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.auth.Logout(ctx)
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus restores the session and reports its state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	user := r.auth.Restore(ctx)

	r.writePlainHeader("Session")

	if user == nil {
		r.writePlain("State: %s\n", r.auth.State())
		return r.writePlain("Not signed in\n")
	}

	r.writePlain("State: %s\n", r.auth.State())
	r.writePlain("Name:  %s\n", user.Name)
	r.writePlain("Email: %s\n", user.Email)

	if token := r.client.Session().AccessToken(); token != "" {
		if info, err := auth.InspectToken(token); err == nil && !info.ExpiresAt.IsZero() {
			r.writePlain("Token expires: %s\n", info.ExpiresAt.Format(time.RFC1123))
		}
	}

	return nil
}
