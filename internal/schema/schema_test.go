package schema

import (
	"strings"
	"testing"
)

func TestRequired(t *testing.T) {
	want := []string{"amount", "transactionType", "paymentMethod", "date", "description"}
	got := Required()

	if len(got) != len(want) {
		t.Fatalf("Required() returned %d fields, want %d: %v", len(got), len(want), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Required()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	a := Fields()
	a[0].Name = "mutated"

	b := Fields()
	if b[0].Name != FieldAmount {
		t.Errorf("Fields() shares state: got %q, want %q", b[0].Name, FieldAmount)
	}
}

func TestRender(t *testing.T) {
	rendered := Render()

	for _, name := range []string{"amount", "transactionType", "paymentMethod", "date", "description", "category", "merchant"} {
		if !strings.Contains(rendered, `"`+name+`"`) {
			t.Errorf("Render() missing field %q:\n%s", name, rendered)
		}
	}
	if !strings.Contains(rendered, `"credit", "debit"`) {
		t.Errorf("Render() missing transactionType enum values:\n%s", rendered)
	}
	if !strings.Contains(rendered, "optional, null if unknown") {
		t.Errorf("Render() missing null-for-unknown wording for optional fields:\n%s", rendered)
	}
}
