package pagestamp

import (
	"errors"
	"testing"

	"github.com/pagestamp/pagestamp/analyze"
)

func TestJobChainingForks(t *testing.T) {
	base := Open("doc.pdf")
	tuned := base.MaxPages(3).Mode(analyze.Heuristic).Header("A").Footer("B")

	if base.cfg.MaxPages != analyze.DefaultConfig().MaxPages {
		t.Error("chaining must not mutate the original job")
	}
	if base.mode != analyze.Combined || base.overlay.HeaderText != "" {
		t.Error("chaining must not mutate the original job")
	}

	if tuned.cfg.MaxPages != 3 || tuned.mode != analyze.Heuristic {
		t.Errorf("chained job = %+v", tuned)
	}
	if tuned.overlay.HeaderText != "A" || tuned.overlay.FooterText != "B" {
		t.Errorf("chained overlay = %+v", tuned.overlay)
	}
}

func TestMaxPagesIgnoresNonPositive(t *testing.T) {
	j := Open("doc.pdf").MaxPages(0)
	if j.cfg.MaxPages != analyze.DefaultConfig().MaxPages {
		t.Errorf("MaxPages(0) changed the cap to %d", j.cfg.MaxPages)
	}
}

func TestReportOnUnreadableFile(t *testing.T) {
	report := Open("testdata/absent.pdf").Report()
	if report == nil {
		t.Fatal("report must be non-nil")
	}
	if report.HasFindings() {
		t.Error("absent file must yield an empty report")
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
