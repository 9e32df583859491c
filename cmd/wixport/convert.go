package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/htmltomarkdown"
	"github.com/fwojciec/wixport/ricos"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	html, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Markdown {
		markdown, err := htmltomarkdown.NewConverter().Convert(string(html))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, markdown)
		return nil
	}

	converter := ricos.NewConverter(ricos.WithTableMode(ricos.TableMode(c.TableMode)))
	content, err := converter.Convert(deps.Ctx, string(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
