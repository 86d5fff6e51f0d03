package output

import (
	"fmt"
	"strconv"

	"github.com/eringen/seoblog"
	"github.com/eringen/seoblog/scan"
)

// ScanBanner prints the fixer banner shown before a scan.
func (p *Printer) ScanBanner(brand string) {
	p.Header("🔧 " + brand + " Blog Post Fixer")
	p.Print("   Fixes: canonical, og:url, twitter:url, schema.org URLs")
	p.Print("   Checks: title length (should be < 60 chars)")
	p.Rule("=")
	p.Print("")
}

// ScanFiles prints one block per document that needed a fix or raised a
// warning, in processing order.
func (p *Printer) ScanFiles(stats *scan.Stats, correctDomain string) {
	p.Print("📂 Scanning %d HTML files in '%s'...", stats.Total, stats.Root)
	p.Print("🔗 Correct domain: %s", correctDomain)
	if stats.DryRun {
		p.Info("   Dry run: no files will be written")
	}
	p.Rule("-")
	for _, f := range stats.Files {
		if f.Err == nil && !f.Modified && len(f.Warnings) == 0 {
			continue
		}
		p.Print("\n📄 %s", f.Name)
		if f.Err != nil {
			p.Error("  %v", f.Err)
			continue
		}
		if f.Modified {
			p.Success(" URLs fixed:")
			for _, ch := range f.Changes {
				p.Print("    %s", ch)
			}
		}
		for _, w := range f.Warnings {
			p.Warning(" %s", w)
		}
	}
}

// ScanSummary prints the totals table, the manual-attention list and the
// next steps.
func (p *Printer) ScanSummary(stats *scan.Stats) error {
	p.Print("")
	p.Header("📊 Summary")
	t := NewTable(p.out)
	t.AddRow("Total HTML files scanned:", strconv.Itoa(stats.Total))
	t.AddRow("Files with URLs fixed:", strconv.Itoa(stats.Modified))
	t.AddRow("Files with warnings:", strconv.Itoa(stats.Warned))
	t.AddRow("Files already correct:", strconv.Itoa(stats.AlreadyCorrect))
	if stats.Failed > 0 {
		t.AddRow("Files that could not be processed:", strconv.Itoa(stats.Failed))
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	order, grouped := stats.WarningsByDocument()
	if len(order) > 0 {
		p.Print("")
		p.Warning("Files needing manual attention:")
		p.Rule("-")
		for _, doc := range order {
			p.Print("\n%s:", doc)
			for _, msg := range grouped[doc] {
				p.Print("  ⚠️  %s", msg)
			}
		}
	}

	if stats.Modified > 0 {
		p.Print("")
		p.Header("📝 Next Steps")
		p.Print("1. Review the changes above")
		p.Print("2. For any title warnings, manually shorten the titles")
		p.Print("3. Commit and push:")
		p.Print("")
		p.Print("   git add .")
		p.Print("   git commit -m 'Fix blog post URLs and SEO issues'")
		p.Print("   git push")
		p.Print("")
		p.Print("4. Request re-indexing in Bing Webmaster Tools")
		return nil
	}
	p.Print("")
	p.Success("All URLs are correct!")
	if stats.Warned > 0 {
		p.Warning("But please review the warnings above.")
	}
	return nil
}

// Published prints the title, keyword, path and warnings of a publishing run.
func (p *Printer) Published(res *seoblog.PublishResult) {
	p.Print("📰 Title: %s", res.Post.Title)
	p.Print("🔑 Target keyword: %s", res.Post.Keyword)
	p.Print("💾 Saved to: %s", res.Path)
	for _, w := range res.Warnings {
		p.Warning("%s", w)
	}
}
