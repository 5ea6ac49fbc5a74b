// Package auth implements credential acquisition and refresh against the
// Google authorization server using golang.org/x/oauth2.
package auth

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gconnect/internal/core/domain"
)

// oauthConfig builds an oauth2.Config from the client registration.
func oauthConfig(cfg domain.ClientConfig, redirectURL string, scopes []string) *oauth2.Config {
	if redirectURL == "" {
		redirectURL = cfg.RedirectURL
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.AuthURL,
			TokenURL: cfg.TokenURL,
		},
		RedirectURL: redirectURL,
		Scopes:      scopes,
	}
}

// withHTTPClient makes oauth2 use client for token endpoint calls.
func withHTTPClient(ctx context.Context, client *http.Client) context.Context {
	if client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}

// credentialFromToken converts a token response. Granted scopes come from
// the response's "scope" field when present.
func credentialFromToken(tok *oauth2.Token, requested []string) *domain.Credential {
	cred := &domain.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry,
	}
	if granted, ok := tok.Extra("scope").(string); ok && strings.TrimSpace(granted) != "" {
		cred.Scopes = domain.ParseScopes(granted)
	} else {
		cred.Scopes = append([]string(nil), requested...)
	}
	return cred
}
