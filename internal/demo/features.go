package demo

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Feature selects one group of debug calls the scenario makes.
type Feature uint

const (
	FeatureRaycast Feature = 1 << iota
	FeatureSphereCast
	FeatureBoxCast
	FeatureCapsuleCast
	FeatureOverlap
	FeatureSolver
	FeatureRigidbody
	FeatureVectors
)

// AllFeatures enables every group.
const AllFeatures = FeatureRaycast | FeatureSphereCast | FeatureBoxCast | FeatureCapsuleCast |
	FeatureOverlap | FeatureSolver | FeatureRigidbody | FeatureVectors

// DefaultFeatures is what the viewer starts with.
const DefaultFeatures = FeatureRaycast | FeatureSphereCast | FeatureRigidbody

var featureNames = map[Feature]string{
	FeatureRaycast:     "raycast",
	FeatureSphereCast:  "spherecast",
	FeatureBoxCast:     "boxcast",
	FeatureCapsuleCast: "capsulecast",
	FeatureOverlap:     "overlap",
	FeatureSolver:      "solver",
	FeatureRigidbody:   "rigidbody",
	FeatureVectors:     "vectors",
}

// FeatureList returns the single features in bit order.
func FeatureList() []Feature {
	out := lo.Keys(featureNames)
	slices.Sort(out)
	return out
}

// Has reports whether every bit of other is set in f.
func (f Feature) Has(other Feature) bool {
	return f&other == other
}

// String joins the names of the set bits with "+".
func (f Feature) String() string {
	if f == 0 {
		return "none"
	}
	names := lo.FilterMap(FeatureList(), func(g Feature, _ int) (string, bool) {
		return featureNames[g], f.Has(g)
	})
	return strings.Join(names, "+")
}

// ParseFeatures parses a comma separated list of feature names. "all"
// selects every feature.
func ParseFeatures(s string) (Feature, error) {
	var f Feature
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if name == "all" {
			f |= AllFeatures
			continue
		}
		g, ok := lo.FindKey(featureNames, name)
		if !ok {
			return 0, fmt.Errorf("unknown feature %q", name)
		}
		f |= g
	}
	return f, nil
}
