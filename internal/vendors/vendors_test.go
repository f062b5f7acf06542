package vendors

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	csvData := `vendor_name,vendor_code,moq,default_lead_time,currency
ACME SRL,F001,500,21,EUR
Bolt SpA,F002,,,USD
,IGNORED,,,
`
	ref, err := Load(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ref) != 2 {
		t.Fatalf("expected 2 vendors, got %d", len(ref))
	}

	acme := ref["ACME SRL"]
	if acme.VendorCode != "F001" || acme.MinOrderQty != 500 || acme.Currency != "EUR" {
		t.Errorf("unexpected ACME entry: %+v", acme)
	}
	if !acme.HasLeadTimeOverride || acme.LeadTimeOverrideDays != 21 {
		t.Errorf("expected lead time override 21, got %+v", acme)
	}

	bolt := ref["Bolt SpA"]
	if bolt.HasLeadTimeOverride {
		t.Error("empty lead time cell must mean no override")
	}
	if bolt.MinOrderQty != 0 {
		t.Errorf("empty moq must mean no constraint, got %v", bolt.MinOrderQty)
	}
}

func TestLoad_RejectsBadNumbers(t *testing.T) {
	cases := []string{
		"vendor_name,moq\nACME,abc\n",
		"vendor_name,moq\nACME,-5\n",
		"vendor_name,default_lead_time\nACME,soon\n",
		"vendor_name,default_lead_time\nACME,-1\n",
	}
	for _, csvData := range cases {
		if _, err := Load(strings.NewReader(csvData)); err == nil {
			t.Errorf("expected error for %q", csvData)
		}
	}
}

func TestLoad_RequiresVendorNameColumn(t *testing.T) {
	if _, err := Load(strings.NewReader("code,moq\nF001,10\n")); err == nil {
		t.Error("expected error without vendor_name column")
	}
}

func TestWriteTemplate(t *testing.T) {
	var out strings.Builder
	err := WriteTemplate(&out, []string{"Bolt SpA", "ACME SRL", "ACME SRL", "", " "})
	if err != nil {
		t.Fatalf("WriteTemplate failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 vendors, got %d lines", len(lines))
	}
	if lines[0] != "vendor_name,vendor_code,moq,default_lead_time,currency" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ACME SRL,") {
		t.Errorf("expected sorted vendors, got %s", lines[1])
	}

	// the template must round-trip through Load
	ref, err := Load(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("template does not round-trip: %v", err)
	}
	if len(ref) != 2 {
		t.Errorf("expected 2 vendors after round-trip, got %d", len(ref))
	}
}
