package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/fs"
	"github.com/fwojciec/wixport/htmltomarkdown"
	"github.com/fwojciec/wixport/migrate"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	source, err := openSource(c.XML, c.CSV)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	migrator := &migrate.Migrator{
		Source:      source,
		Markdown:    htmltomarkdown.NewConverter(),
		Previews:    fs.NewPreviewStore(filepath.Dir(c.Out), filepath.Base(c.Out)),
		Logger:      deps.Logger,
		Limit:       c.Limit,
		CategoryMap: wixport.CategoryMap(deps.Config.CategoryMap),
		Workers:     c.Workers,
	}

	progress := func(event migrate.ProgressEvent) {
		switch event.Type {
		case migrate.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Previewing %d posts\n", event.Total)
		case migrate.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Slug, event.Error)
		case migrate.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	result, err := migrator.Preview(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d previews to %s", result.Saved, c.Out)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
