package models

import (
	"encoding/json"
	"testing"
)

func TestUpdateLeadRequest_AssignedToTriState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValue *string
	}{
		{name: "absent", body: `{"notes":"x"}`, wantSet: false},
		{name: "null unassigns", body: `{"assignedTo":null}`, wantSet: true, wantValue: nil},
		{name: "value assigns", body: `{"assignedTo":"u1"}`, wantSet: true, wantValue: strptr("u1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateLeadRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal error: %v", err)
			}
			if req.AssignedTo.Set != tt.wantSet {
				t.Fatalf("Set = %v, want %v", req.AssignedTo.Set, tt.wantSet)
			}
			if tt.wantValue == nil {
				if req.AssignedTo.Value != nil {
					t.Fatalf("Value = %q, want nil", *req.AssignedTo.Value)
				}
			} else {
				if req.AssignedTo.Value == nil || *req.AssignedTo.Value != *tt.wantValue {
					t.Fatalf("Value = %v, want %q", req.AssignedTo.Value, *tt.wantValue)
				}
			}
		})
	}
}

func TestValidLeadStatus(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"new", "contacted", "qualified", "converted", "lost"} {
		if !ValidLeadStatus(s) {
			t.Fatalf("status %q rejected", s)
		}
	}
	if ValidLeadStatus("archived") {
		t.Fatal("unknown status accepted")
	}
	if ValidLeadStatus("") {
		t.Fatal("empty status accepted")
	}
}

func TestLeadResponse_ExposesCamelCase(t *testing.T) {
	t.Parallel()

	assignee := "u1"
	lead := &Lead{
		RepName:       "Rep",
		CompanyName:   "Acme",
		PricePaid:     1500,
		InvoiceBilled: 900,
		Status:        LeadStatusQualified,
		AssignedTo:    &assignee,
	}

	data, err := json.Marshal(lead.Response())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	for _, key := range []string{"companyRepresentativeName", "companyName", "pricePaid", "invoiceBilled", "assignedTo"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("wire shape missing %q: %s", key, data)
		}
	}
	if _, ok := m["price_paid"]; ok {
		t.Fatal("storage field name leaked into the wire shape")
	}
}

func strptr(s string) *string { return &s }
