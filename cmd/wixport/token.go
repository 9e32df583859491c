package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/wix"
)

// Run executes the token command.
func (c *TokenCmd) Run(deps *Dependencies) error {
	creds := wix.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		InstanceID:   c.InstanceID,
	}
	if creds.ClientID == "" {
		creds.ClientID = deps.Config.ClientID
	}
	if creds.ClientSecret == "" {
		creds.ClientSecret = deps.Config.ClientSecret
	}
	if creds.InstanceID == "" {
		creds.InstanceID = deps.Config.InstanceID
	}

	token, err := deps.Client.Token(deps.Ctx, creds)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	// The token goes to stdout alone so it pipes cleanly into other tools.
	fmt.Fprintln(deps.Stdout, token.Token)
	fmt.Fprintf(deps.Stderr, "Token expires in %d seconds\n", token.ExpiresIn)

	if c.Save {
		cfg := deps.Config
		cfg.AccessToken = token.Token
		if err := SaveConfig(deps.ConfigPath, cfg); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to save config: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Token saved to %s\n", deps.ConfigPath)
	}

	return nil
}
