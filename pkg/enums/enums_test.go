package enums

import "testing"

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]PaymentMethod{
		"cash":   PaymentMethodCash,
		" Card ": PaymentMethodCard,
	}
	for raw, want := range cases {
		got, err := ParsePaymentMethod(raw)
		if err != nil {
			t.Fatalf("ParsePaymentMethod(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParsePaymentMethod(%q) = %q want %q", raw, got, want)
		}
	}
	if _, err := ParsePaymentMethod("crypto"); err == nil {
		t.Fatal("expected error for unknown payment method")
	}
	if PaymentMethod("ach").IsValid() {
		t.Fatal("ach must not be accepted")
	}
}

func TestStockStatusLabels(t *testing.T) {
	if StockStatusNormal.Label() != "Normal" {
		t.Fatalf("unexpected label %q", StockStatusNormal.Label())
	}
	if StockStatusLow.Label() != "Low Stock" {
		t.Fatalf("unexpected label %q", StockStatusLow.Label())
	}
	if StockStatus("unknown").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}

func TestParseReportKind(t *testing.T) {
	if kind, err := ParseReportKind("INVENTORY"); err != nil || kind != ReportKindInventory {
		t.Fatalf("unexpected parse result %q %v", kind, err)
	}
	if _, err := ParseReportKind("profit"); err == nil {
		t.Fatal("expected error for unknown report kind")
	}
}

func TestParseOperatorRole(t *testing.T) {
	if role, err := ParseOperatorRole("attendant"); err != nil || role != OperatorRoleAttendant {
		t.Fatalf("unexpected parse result %q %v", role, err)
	}
	if _, err := ParseOperatorRole("owner"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
