package services

import (
	"time"

	"credential-auth/config"
)

const (
	SessionStrategyJWT = "jwt"

	CredentialsProviderID = "credentials"
)

// CredentialField describes one input the credentials provider accepts.
type CredentialField struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
}

type CredentialsProviderConfig struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Credentials map[string]CredentialField `json:"credentials"`
}

// AuthOptions is assembled once at startup and handed to the auth and session
// components. Secret is never serialized.
type AuthOptions struct {
	SessionStrategy string
	TokenTTL        time.Duration
	SignInPage      string
	NewUserPage     string
	Secret          []byte
	Provider        CredentialsProviderConfig
}

func DefaultCredentialsProvider() CredentialsProviderConfig {
	return CredentialsProviderConfig{
		ID:   CredentialsProviderID,
		Name: "Credentials",
		Credentials: map[string]CredentialField{
			"email":    {Label: "email", Type: "email", Placeholder: "jsmith@gmail.com"},
			"password": {Label: "Password", Type: "password"},
		},
	}
}

// NewAuthOptions builds options from validated config.
func NewAuthOptions(cfg *config.Config) AuthOptions {
	return AuthOptions{
		SessionStrategy: SessionStrategyJWT,
		TokenTTL:        time.Duration(cfg.SessionTTLDays) * 24 * time.Hour,
		SignInPage:      cfg.SignInPage,
		NewUserPage:     cfg.NewUserPage,
		Secret:          []byte(cfg.AuthSecret),
		Provider:        DefaultCredentialsProvider(),
	}
}
