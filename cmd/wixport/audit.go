package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/ricos"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	source, err := openSource(c.XML, c.CSV)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	posts, err := source.Posts()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	census, err := ricos.TagCensus(posts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d posts with content\n\n", census.Posts)
	for _, tc := range census.Sorted() {
		fmt.Fprintf(deps.Stdout, "  %6d  %s\n", tc.Count, tc.Tag)
	}

	unsupported := census.SortedUnsupported()
	if len(unsupported) > 0 {
		fmt.Fprintf(deps.Stdout, "\nUnsupported tags (content flattens to text):\n")
		for _, tc := range unsupported {
			fmt.Fprintf(deps.Stdout, "  %6d  %s\n", tc.Count, tc.Tag)
		}
	}

	return nil
}
