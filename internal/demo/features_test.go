package demo

import "testing"

func TestFeatureString(t *testing.T) {
	tests := []struct {
		f    Feature
		want string
	}{
		{0, "none"},
		{FeatureRaycast, "raycast"},
		{FeatureRaycast | FeatureVectors, "raycast+vectors"},
		{DefaultFeatures, "raycast+spherecast+rigidbody"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseFeatures(t *testing.T) {
	tests := []struct {
		in      string
		want    Feature
		wantErr bool
	}{
		{"", 0, false},
		{"raycast", FeatureRaycast, false},
		{" Overlap , solver", FeatureOverlap | FeatureSolver, false},
		{"all", AllFeatures, false},
		{"raycast,teleport", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFeatures(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFeatures(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFeatures(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFeatureListOrdered(t *testing.T) {
	list := FeatureList()
	if len(list) != 8 {
		t.Fatalf("len = %d, want 8", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i] != list[i-1]<<1 {
			t.Errorf("list[%d] = %v after %v", i, list[i], list[i-1])
		}
	}
}
