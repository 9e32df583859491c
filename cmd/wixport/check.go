package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/migrate"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	source, err := openSource(c.XML, c.CSV)
	if err != nil {
		// Report the open failure as a check result with the rest.
		source = errSource{err: err}
	}

	migrator := &migrate.Migrator{
		Source:             source,
		Records:            deps.Records,
		Summarizer:         deps.Summarizer,
		Pinger:             deps.Pinger,
		Logger:             deps.Logger,
		DefaultMemberEmail: deps.Config.DefaultMemberEmail,
		CategoryMap:        wixport.CategoryMap(deps.Config.CategoryMap),
	}

	report := migrator.Check(deps.Ctx)
	for _, result := range report.Results {
		mark := "ok  "
		if !result.OK {
			mark = "FAIL"
		}
		fmt.Fprintf(deps.Stdout, "  %s  %-12s  %s\n", mark, result.Name, result.Detail)
	}

	if !report.OK() {
		err := wixport.Errorf(wixport.EINVALID, "pre-flight checks failed")
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "\nAll checks passed.")
	return nil
}
