package parcel

import "testing"

func TestWeightClassFromLabel(t *testing.T) {
	tests := []struct {
		label  string
		want   WeightClass
		wantKg float64
	}{
		{"Light (1-5 kg)", WeightLight, 3},
		{"Medium (5-10 kg)", WeightMedium, 7.5},
		// the mobile client historically sent a capital K here
		{"Heavy (10-20 Kg)", WeightHeavy, 15},
		{"Heavy (10-20 kg)", WeightHeavy, 15},
		{"", WeightUnknown, 0},
		{"Extra Heavy (20-50 kg)", WeightUnknown, 0},
		{"light (1-5 kg)", WeightUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got := WeightClassFromLabel(tt.label)
			if got != tt.want {
				t.Errorf("WeightClassFromLabel(%q) = %v, want %v", tt.label, got, tt.want)
			}
			if got.Kg() != tt.wantKg {
				t.Errorf("Kg() = %f, want %f", got.Kg(), tt.wantKg)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusInProgress, StatusDelivered, true},
		{StatusInProgress, StatusCancelled, true},
		// statuses only move forward
		{StatusInProgress, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusInProgress, false},
		{StatusCancelled, StatusPending, false},
		// no skipping
		{StatusPending, StatusDelivered, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	complete := Draft{
		Type:        "electronics",
		WeightLabel: "Light (1-5 kg)",
		Size:        SizeSmall,
		Content:     ContentStandard,
		Pickup:      Location{Address: "1 MG Road, Bengaluru"},
		Delivery:    Location{Address: "2 Mount Road, Chennai"},
		Receiver:    Receiver{Name: "Asha", Phone: "+919800000000"},
	}
	if err := complete.Validate(); err != nil {
		t.Fatalf("complete draft should validate, got %v", err)
	}

	// content is filled at submission time, not required up front
	noContent := complete
	noContent.Content = ""
	if err := noContent.Validate(); err != nil {
		t.Errorf("draft without content should validate, got %v", err)
	}

	mutations := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"missing type", func(d *Draft) { d.Type = "" }},
		{"missing weight label", func(d *Draft) { d.WeightLabel = "" }},
		{"missing size", func(d *Draft) { d.Size = "" }},
		{"missing pickup address", func(d *Draft) { d.Pickup.Address = "" }},
		{"missing delivery address", func(d *Draft) { d.Delivery.Address = "" }},
		{"missing receiver name", func(d *Draft) { d.Receiver.Name = "" }},
		{"missing receiver phone", func(d *Draft) { d.Receiver.Phone = "" }},
	}
	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			d := complete
			m.mutate(&d)
			if err := d.Validate(); err != ErrIncompleteDraft {
				t.Errorf("expected ErrIncompleteDraft, got %v", err)
			}
		})
	}
}

func TestDraftReset(t *testing.T) {
	d := Draft{Type: "books", Description: "paperbacks"}
	if d.Reset() != (Draft{}) {
		t.Error("Reset should produce an empty draft")
	}
	if d.Type != "books" {
		t.Error("Reset must not mutate the receiver")
	}
}
