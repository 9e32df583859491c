package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/gemini"
	wixslog "github.com/fwojciec/wixport/slog"
	"github.com/fwojciec/wixport/sqlite"
	"github.com/fwojciec/wixport/wix"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration file path. Set before calling Run().
	ConfigPath string

	// Configuration as loaded by Run().
	Config Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService    wixport.MigrationRecordService
	MemberMapService wixport.MemberMapService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wixport"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wixport --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the command, so take the command from Kong.
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Load configuration
	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	m.Config, err = LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}
	deps.Config = m.Config
	deps.ConfigPath = m.ConfigPath

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open the migration ledger for commands that read or write it
	if cmd == "migrate" || cmd == "status" || cmd == "check" {
		m.DB = sqlite.NewDB(m.dbPath())
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set dbPath in %s to use a different ledger path\n", m.ConfigPath)
			return fmt.Errorf("failed to open migration ledger at %q: %w", m.dbPath(), err)
		}
		defer m.Close()

		m.RecordService = sqlite.NewMigrationRecordService(m.DB)
		m.MemberMapService = sqlite.NewMemberMapService(m.DB)
		deps.DB = m.DB
		deps.Records = m.RecordService
		deps.MemberMap = m.MemberMapService
	}

	// Wire the Wix API client based on command. check runs without
	// credentials and reports the gap as a failed result instead.
	needsAPI := cmd == "posts" || (cmd == "migrate" && !cli.Migrate.DryRun)
	if needsAPI || cmd == "check" {
		client, err := m.newClient()
		if err != nil && needsAPI {
			fmt.Fprintln(stderr, "Hint: Set siteId plus apiKey or accessToken in the config file, or run 'wixport token'")
			return err
		}
		if err == nil {
			deps.Client = client
			deps.Blog = wixslog.NewLoggingBlogService(client, deps.Logger)
			deps.Media = wixslog.NewLoggingMediaService(client, deps.Logger)
			deps.Members = client
			deps.Pinger = client
		}
	}

	if cmd == "token" {
		// Minting a token authenticates with the OAuth flags, not API keys.
		var opts []wix.Option
		if m.Config.BaseURL != "" {
			opts = append(opts, wix.WithBaseURL(m.Config.BaseURL))
		}
		deps.Client = wix.NewClient(m.Config.SiteID, opts...)
	}

	if m.Config.Gemini && (cmd == "check" || (cmd == "migrate" && !cli.Migrate.DryRun)) {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY not set; excerpts fall back to truncated body text")
		} else {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Summarizer = gemini.NewSummarizer(client)
		}
	}

	return kongCtx.Run(deps)
}

// newClient builds the authenticated Wix API client from the configuration.
func (m *Main) newClient() (*wix.Client, error) {
	if m.Config.SiteID == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "siteId is not configured")
	}
	if m.Config.APIKey == "" && m.Config.AccessToken == "" {
		return nil, wixport.Errorf(wixport.EUNAUTHORIZED, "no API credentials configured")
	}
	var opts []wix.Option
	if m.Config.BaseURL != "" {
		opts = append(opts, wix.WithBaseURL(m.Config.BaseURL))
	}
	if m.Config.APIKey != "" {
		opts = append(opts, wix.WithAPIKey(m.Config.APIKey))
		if m.Config.AccountID != "" {
			opts = append(opts, wix.WithAccountID(m.Config.AccountID))
		}
	} else {
		opts = append(opts, wix.WithAccessToken(m.Config.AccessToken))
	}
	if m.Config.RequestsPerMinute > 0 {
		opts = append(opts, wix.WithRequestsPerMinute(m.Config.RequestsPerMinute))
	}
	return wix.NewClient(m.Config.SiteID, opts...), nil
}

func (m *Main) dbPath() string {
	if m.Config.DBPath != "" {
		return m.Config.DBPath
	}
	return "wixport.db"
}
