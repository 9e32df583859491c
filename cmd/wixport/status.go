package main

import (
	"fmt"

	"github.com/fwojciec/wixport"
)

// Run executes the status command.
func (c *StatusListCmd) Run(deps *Dependencies) error {
	filter := wixport.MigrationRecordFilter{}
	if c.Status != "" {
		filter.Status = &c.Status
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No migration records found.")
		return nil
	}

	for _, record := range records {
		detail := record.PostURL
		if record.Status == wixport.MigrationFailed && record.ErrorMessage != "" {
			detail = record.ErrorMessage
		}
		if detail != "" {
			fmt.Fprintf(deps.Stdout, "%-10s  %-40s  %s\n", record.Status, record.Slug, detail)
		} else {
			fmt.Fprintf(deps.Stdout, "%-10s  %s\n", record.Status, record.Slug)
		}
	}
	fmt.Fprintf(deps.Stdout, "\n%d records\n", len(records))
	return nil
}

// Run executes the status reset command.
func (c *StatusResetCmd) Run(deps *Dependencies) error {
	record, err := deps.Records.FindRecordBySlug(deps.Ctx, c.Slug)
	if err != nil {
		if wixport.ErrorCode(err) == wixport.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: no migration record for slug %q\n", c.Slug)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, record.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wixport.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cleared %q; the next run will migrate the post again\n", c.Slug)
	return nil
}
