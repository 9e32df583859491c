package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/fs"
	"github.com/fwojciec/wixport/migrate"
	"github.com/fwojciec/wixport/ricos"
)

// Run executes the migrate command.
func (c *MigrateCmd) Run(deps *Dependencies) error {
	source, err := openSource(c.XML, c.CSV)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	// Images are only uploaded on live runs; dry runs keep the source URLs.
	opts := []ricos.Option{ricos.WithTableMode(ricos.TableMode(c.TableMode))}
	if deps.Media != nil && !c.DryRun {
		opts = append(opts, ricos.WithImageImporter(deps.Media.ImportImage))
	}

	migrator := &migrate.Migrator{
		Source:             source,
		Converter:          ricos.NewConverter(opts...),
		Blog:               deps.Blog,
		Media:              deps.Media,
		Members:            deps.Members,
		Records:            deps.Records,
		MemberMap:          deps.MemberMap,
		Summarizer:         deps.Summarizer,
		Redirects:          fs.NewRedirectWriter(),
		Reports:            fs.NewReportWriter(),
		Logger:             deps.Logger,
		DryRun:             c.DryRun,
		Publish:            c.Publish,
		Limit:              c.Limit,
		DefaultMemberEmail: deps.Config.DefaultMemberEmail,
		CategoryMap:        wixport.CategoryMap(deps.Config.CategoryMap),
		SiteURL:            deps.Config.SiteURL,
		OldDomain:          deps.Config.OldDomain,
		RedirectsPath:      c.Redirects,
		ReportPath:         c.Report,
	}

	progress := func(event migrate.ProgressEvent) {
		switch event.Type {
		case migrate.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Migrating %d posts\n", event.Total)
		case migrate.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s %s\n", event.Completed, event.Total, event.Status, event.Slug)
		case migrate.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] unchanged %s\n", event.Completed, event.Total, event.Slug)
		case migrate.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %v\n", event.Completed, event.Total, event.Slug, event.Error)
		case migrate.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	report, err := migrator.Migrate(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	label := "Done"
	if report.DryRun {
		label = "Dry run"
	}
	fmt.Fprintf(deps.Stdout, "%s: %d migrated, %d unchanged, %d failed\n",
		label, len(report.OK), len(report.Skipped), len(report.Failed))
	if c.Redirects != "" {
		fmt.Fprintf(deps.Stdout, "Redirects written to %s\n", c.Redirects)
	}
	if c.Report != "" {
		fmt.Fprintf(deps.Stdout, "Report written to %s\n", c.Report)
	}

	return nil
}
