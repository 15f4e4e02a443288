package launch

import "testing"

func TestNewPayloadRangeSwapsReversedBounds(t *testing.T) {
	t.Parallel()

	got := NewPayloadRange(9000, 1000)
	if got.Low != 1000 || got.High != 9000 {
		t.Fatalf("NewPayloadRange(9000, 1000) = %+v, want {1000 9000}", got)
	}
}

func TestPayloadRangeContains(t *testing.T) {
	t.Parallel()

	rng := NewPayloadRange(1000, 2000)
	tests := []struct {
		kg   float64
		want bool
	}{
		{kg: 999, want: false},
		{kg: 1000, want: true},
		{kg: 1500, want: true},
		{kg: 2000, want: true},
		{kg: 2001, want: false},
	}
	for _, tc := range tests {
		if got := rng.Contains(tc.kg); got != tc.want {
			t.Fatalf("Contains(%v) = %t, want %t", tc.kg, got, tc.want)
		}
	}
}

func TestNewControlStateDefaultsBlankSite(t *testing.T) {
	t.Parallel()

	state := NewControlState("  ", PayloadRange{Low: 0, High: 10})
	if state.Site != AllSites {
		t.Fatalf("Site = %q, want %q", state.Site, AllSites)
	}
	if !state.IncludesAllSites() {
		t.Fatal("expected IncludesAllSites")
	}
}

func TestDefaultControlStateUsesObservedBounds(t *testing.T) {
	t.Parallel()

	state := DefaultControlState(sampleDataset(t))
	if state.Site != AllSites {
		t.Fatalf("Site = %q, want %q", state.Site, AllSites)
	}
	if state.Payload != (PayloadRange{Low: 500, High: 3000}) {
		t.Fatalf("Payload = %+v, want {500 3000}", state.Payload)
	}
}
