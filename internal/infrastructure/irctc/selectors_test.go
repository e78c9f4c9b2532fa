package irctc

import (
	"strings"
	"testing"

	"github.com/example/irctc-booker/internal/application/workflow"
)

func TestSelectorFactoriesScopeToTrainRow(t *testing.T) {
	s := Selectors()

	row := s.TrainRow("12034")
	if row.By != workflow.ByXPath || !strings.Contains(row.Expr, "(12034)") {
		t.Errorf("row selector = %+v", row)
	}

	cell := s.ClassCell("12034", "CC")
	if !strings.HasPrefix(cell.Expr, row.Expr) || !strings.Contains(cell.Expr, "(CC)") {
		t.Errorf("class cell not scoped to its row: %s", cell.Expr)
	}

	avail := s.AvailabilityMarker("12034", "Tue, 15 Sep")
	if !strings.Contains(avail.Expr, "Tue, 15 Sep") || !strings.Contains(avail.Expr, "AVAILABLE") {
		t.Errorf("availability marker = %s", avail.Expr)
	}
}

func TestPassengerSelectorsAreIndexed(t *testing.T) {
	s := Selectors()
	name := s.PassengerName(3)
	if !strings.Contains(name.Expr, "[3]") {
		t.Errorf("passenger name selector not indexed: %s", name.Expr)
	}
	if s.PassengerBlock(1).Expr == s.PassengerBlock(2).Expr {
		t.Error("passenger blocks must address distinct form sections")
	}
}

func TestQuotaOptionUsesAriaLabel(t *testing.T) {
	s := Selectors()
	opt := s.QuotaOption("TATKAL")
	if !strings.Contains(opt.Expr, "aria-label='TATKAL'") {
		t.Errorf("quota option = %s", opt.Expr)
	}
}
