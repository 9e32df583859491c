package migrate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/wixport"
)

// Pinger verifies that the remote API is reachable with the configured
// credentials. The wix client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// preflightProbeSlug marks the throwaway record Check writes to prove the
// ledger accepts writes.
const preflightProbeSlug = "wixport-preflight-probe"

// CheckResult is a single pre-flight verification.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail"`
}

// CheckReport collects pre-flight verifications. A migration should only
// run when OK reports true.
type CheckReport struct {
	Results []CheckResult `json:"results"`
}

// OK reports whether every check passed.
func (r *CheckReport) OK() bool {
	for _, result := range r.Results {
		if !result.OK {
			return false
		}
	}
	return true
}

func (r *CheckReport) add(name string, ok bool, detail string) {
	r.Results = append(r.Results, CheckResult{Name: name, OK: ok, Detail: detail})
}

// Check runs the pre-flight verifications: the export parses, the ledger
// accepts writes, the API credentials work and the blog app is installed,
// and the category map covers the export. Summarizer and default member
// presence are reported for visibility but never fail the check.
func (m *Migrator) Check(ctx context.Context) *CheckReport {
	report := &CheckReport{}

	posts, err := m.Source.Posts()
	if err != nil {
		report.add("export", false, err.Error())
	} else {
		report.add("export", true, fmt.Sprintf("%d posts", len(posts)))
	}

	report.Results = append(report.Results, m.checkLedger(ctx))
	report.Results = append(report.Results, m.checkAPI(ctx))
	report.Results = append(report.Results, m.checkCategories(posts))

	if m.Summarizer != nil {
		report.add("excerpts", true, "summarizer configured")
	} else {
		report.add("excerpts", true, "no summarizer, excerpts fall back to truncated body text")
	}

	if m.DefaultMemberEmail != "" {
		report.add("default member", true, m.DefaultMemberEmail)
	} else {
		report.add("default member", true, "not configured, posts without a known author will fail")
	}

	return report
}

// checkLedger proves the migration ledger accepts writes by inserting and
// deleting a probe record. A probe left behind by an interrupted check is
// cleaned up first.
func (m *Migrator) checkLedger(ctx context.Context) CheckResult {
	probe := &wixport.MigrationRecord{Slug: preflightProbeSlug, Status: wixport.MigrationPending}
	err := m.Records.CreateRecord(ctx, probe)
	if wixport.ErrorCode(err) == wixport.ECONFLICT {
		if stale, ferr := m.Records.FindRecordBySlug(ctx, preflightProbeSlug); ferr == nil {
			_ = m.Records.DeleteRecord(ctx, stale.ID)
		}
		err = m.Records.CreateRecord(ctx, probe)
	}
	if err != nil {
		return CheckResult{Name: "ledger", Detail: err.Error()}
	}
	if err := m.Records.DeleteRecord(ctx, probe.ID); err != nil {
		return CheckResult{Name: "ledger", Detail: err.Error()}
	}
	return CheckResult{Name: "ledger", OK: true, Detail: "migration records writable"}
}

func (m *Migrator) checkAPI(ctx context.Context) CheckResult {
	if m.Pinger == nil {
		return CheckResult{Name: "wix api", Detail: "no API client configured"}
	}
	if err := m.Pinger.Ping(ctx); err != nil {
		return CheckResult{Name: "wix api", Detail: wixport.ErrorMessage(err)}
	}
	return CheckResult{Name: "wix api", OK: true, Detail: "credentials accepted, blog app installed"}
}

// checkCategories lists export categories the category map does not cover.
// Without a configured map every label passes through, which is fine; with
// one, unmapped labels usually mean a typo on one side.
func (m *Migrator) checkCategories(posts []*wixport.Post) CheckResult {
	if len(m.CategoryMap) == 0 {
		return CheckResult{Name: "categories", OK: true, Detail: "no category map configured, labels pass through"}
	}

	seen := map[string]bool{}
	var unmapped []string
	for _, post := range posts {
		for _, label := range post.Categories {
			if _, ok := m.CategoryMap.Lookup(label); ok {
				continue
			}
			cleaned := wixport.NormalizeLabel(label)
			if cleaned == "" || seen[cleaned] {
				continue
			}
			seen[cleaned] = true
			unmapped = append(unmapped, cleaned)
		}
	}
	if len(unmapped) > 0 {
		sort.Strings(unmapped)
		return CheckResult{Name: "categories", Detail: "unmapped: " + strings.Join(unmapped, ", ")}
	}
	return CheckResult{Name: "categories", OK: true, Detail: "all export categories mapped"}
}
