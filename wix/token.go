package wix

import (
	"context"
	"net/http"

	"github.com/fwojciec/wixport"
)

// Credentials identify a self-hosted Wix app instance for OAuth token
// minting.
type Credentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	InstanceID   string `json:"instanceId"`
}

// AccessToken is a short-lived OAuth token.
type AccessToken struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Token mints an access token using the client-credentials grant. The
// request is unauthenticated; the credentials travel in the body.
func (c *Client) Token(ctx context.Context, creds Credentials) (*AccessToken, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "client ID and secret required")
	}
	body := struct {
		GrantType    string `json:"grant_type"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		InstanceID   string `json:"instance_id,omitempty"`
	}{
		GrantType:    "client_credentials",
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		InstanceID:   creds.InstanceID,
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := c.roundTrip(ctx, http.MethodPost, "/oauth2/token", body, &out, false); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, wixport.Errorf(wixport.EUNAUTHORIZED, "wix api returned no access token")
	}
	return &AccessToken{Token: out.AccessToken, ExpiresIn: out.ExpiresIn}, nil
}
