package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/migrate"
	"github.com/fwojciec/wixport/sqlite"
	"github.com/fwojciec/wixport/wix"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Config     Config
	ConfigPath string
	Logger     *slog.Logger

	DB         *sqlite.DB
	Records    wixport.MigrationRecordService
	MemberMap  wixport.MemberMapService
	Blog       wixport.BlogService
	Media      wixport.MediaService
	Members    wixport.MemberService
	Summarizer wixport.Summarizer
	Pinger     migrate.Pinger
	Client     *wix.Client
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file path (default wixport.json, or WIXPORT_CONFIG)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Migrate MigrateCmd `cmd:"" help:"Migrate WordPress posts to the Wix blog"`
	Convert ConvertCmd `cmd:"" help:"Convert one HTML document to rich content or Markdown"`
	Preview PreviewCmd `cmd:"" help:"Write Markdown previews of every post"`
	Audit   AuditCmd   `cmd:"" help:"Count HTML tags across the export"`
	Posts   PostsCmd   `cmd:"" help:"List published posts on the Wix blog"`
	Status  StatusCmd  `cmd:"" help:"Show or reset the migration ledger"`
	Token   TokenCmd   `cmd:"" help:"Mint an OAuth access token"`
	Check   CheckCmd   `cmd:"" help:"Run pre-flight checks"`
}

// MigrateCmd is the "migrate" subcommand.
type MigrateCmd struct {
	XML       string `help:"WXR export file" type:"path"`
	CSV       string `help:"CSV export file" type:"path"`
	Publish   bool   `help:"Publish drafts after creation"`
	DryRun    bool   `help:"Convert and report without calling the Wix API"`
	Limit     int    `short:"n" help:"Stop after N posts"`
	Redirects string `help:"Write the redirect CSV to this path" type:"path"`
	Report    string `help:"Write the run report JSON to this path" type:"path"`
	TableMode string `default:"nodes" enum:"nodes,html,paragraphs" help:"Table conversion mode"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File      string `arg:"" help:"HTML file to convert" type:"path"`
	Markdown  bool   `help:"Emit Markdown instead of rich content JSON"`
	TableMode string `default:"nodes" enum:"nodes,html,paragraphs" help:"Table conversion mode"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	XML     string `help:"WXR export file" type:"path"`
	CSV     string `help:"CSV export file" type:"path"`
	Out     string `default:"previews" help:"Output directory" type:"path"`
	Workers int    `short:"w" default:"4" help:"Concurrent conversion limit"`
	Limit   int    `short:"n" help:"Stop after N posts"`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	XML string `help:"WXR export file" type:"path"`
	CSV string `help:"CSV export file" type:"path"`
}

// PostsCmd is the "posts" subcommand.
type PostsCmd struct {
	Limit int `short:"n" help:"Stop after N posts"`
}

// StatusCmd groups the ledger subcommands; bare "status" lists records.
type StatusCmd struct {
	List  StatusListCmd  `cmd:"" default:"withargs" help:"List migration records"`
	Reset StatusResetCmd `cmd:"" help:"Clear the record for a slug so the next run redoes the post"`
}

// StatusListCmd is the default "status" subcommand.
type StatusListCmd struct {
	Status string `help:"Filter by status (pending, converted, draft, published, failed, skipped)"`
}

// StatusResetCmd is the "status reset" subcommand.
type StatusResetCmd struct {
	Slug string `required:"" help:"Post slug to clear"`
}

// TokenCmd is the "token" subcommand.
type TokenCmd struct {
	ClientID     string `help:"OAuth client ID (default from config)"`
	ClientSecret string `help:"OAuth client secret (default from config)"`
	InstanceID   string `help:"App instance ID (default from config)"`
	Save         bool   `help:"Write the minted token back to the config file"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	XML string `help:"WXR export file" type:"path"`
	CSV string `help:"CSV export file" type:"path"`
}
