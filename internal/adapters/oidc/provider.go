// Package oidc signs users in against an OpenID Connect issuer using the
// authorization code flow.
package oidc

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/ports"
	"golang.org/x/oauth2"
)

// Config describes the relying party.
type Config struct {
	IssuerURL    string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	HTTPClient   *http.Client
}

// Provider implements ports.LoginProvider.
type Provider struct {
	oauth    oauth2.Config
	op       *gooidc.Provider
	verifier *gooidc.IDTokenVerifier
	client   *http.Client
}

// NewProvider fetches the issuer's discovery document.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	switch {
	case cfg.IssuerURL == "":
		return nil, errors.New("oidc: issuer url is required")
	case cfg.ClientID == "":
		return nil, errors.New("oidc: client id is required")
	case cfg.RedirectURL == "":
		return nil, errors.New("oidc: redirect url is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	scopes := slices.Clone(cfg.Scopes)
	if !slices.Contains(scopes, gooidc.ScopeOpenID) {
		scopes = append([]string{gooidc.ScopeOpenID}, scopes...)
	}

	op, err := gooidc.NewProvider(gooidc.ClientContext(ctx, client), cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &Provider{
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     op.Endpoint(),
		},
		op:       op,
		verifier: op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}),
		client:   client,
	}, nil
}

// Begin returns the issuer's authorization URL with a fresh state and nonce.
func (p *Provider) Begin(context.Context) (ports.LoginRequest, error) {
	state, nonce := oauth2.GenerateVerifier(), oauth2.GenerateVerifier()
	return ports.LoginRequest{
		URL:   p.oauth.AuthCodeURL(state, gooidc.Nonce(nonce)),
		State: state,
		Nonce: nonce,
	}, nil
}

// Exchange redeems the code, verifies the ID token and its nonce, and fills
// blanks from the userinfo endpoint.
func (p *Provider) Exchange(ctx context.Context, cb ports.LoginCallback) (domainauth.Identity, error) {
	ctx = gooidc.ClientContext(ctx, p.client)
	tok, err := p.oauth.Exchange(ctx, cb.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("token exchange: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return domainauth.Identity{}, errors.New("token response has no id_token")
	}
	idTok, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("verify id_token: %w", err)
	}
	if idTok.Nonce != cb.Nonce {
		return domainauth.Identity{}, errors.New("id_token nonce mismatch")
	}

	var c claims
	if err := idTok.Claims(&c); err != nil {
		return domainauth.Identity{}, fmt.Errorf("id_token claims: %w", err)
	}
	if c.incomplete() {
		info, err := p.op.UserInfo(ctx, oauth2.StaticTokenSource(tok))
		if err != nil {
			return domainauth.Identity{}, fmt.Errorf("userinfo: %w", err)
		}
		var more claims
		if err := info.Claims(&more); err != nil {
			return domainauth.Identity{}, fmt.Errorf("userinfo claims: %w", err)
		}
		c.fill(more)
	}

	id := c.identity()
	id.ExpiresAt = idTok.Expiry
	return id, nil
}

type claims struct {
	Subject           string   `json:"sub"`
	PreferredUsername string   `json:"preferred_username"`
	GivenName         string   `json:"given_name"`
	FamilyName        string   `json:"family_name"`
	Email             string   `json:"email"`
	Groups            []string `json:"groups"`
}

func (c claims) incomplete() bool {
	return c.Email == "" || len(c.Groups) == 0
}

func (c *claims) fill(o claims) {
	c.PreferredUsername = cmp.Or(c.PreferredUsername, o.PreferredUsername)
	c.GivenName = cmp.Or(c.GivenName, o.GivenName)
	c.FamilyName = cmp.Or(c.FamilyName, o.FamilyName)
	c.Email = cmp.Or(c.Email, o.Email)
	if len(c.Groups) == 0 {
		c.Groups = o.Groups
	}
}

func (c claims) identity() domainauth.Identity {
	return domainauth.Identity{
		UserID:    cmp.Or(c.PreferredUsername, c.Subject),
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
		Email:     c.Email,
		Groups:    c.Groups,
	}
}
