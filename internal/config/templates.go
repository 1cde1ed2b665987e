package config

import "strconv"

// RadiiProfile names a preset bundle of clustering radii, offered by the
// interactive `canopy init` wizard.
type RadiiProfile string

const (
	// RadiiProfileMetagenomic is the reference implementation's default,
	// tuned for sparse gene-abundance profiles.
	RadiiProfileMetagenomic RadiiProfile = "metagenomic"

	// RadiiProfileTight produces more, smaller canopies.
	RadiiProfileTight RadiiProfile = "tight"

	// RadiiProfileLoose produces fewer, larger canopies.
	RadiiProfileLoose RadiiProfile = "loose"
)

// RadiiPreset holds the four core radii for a RadiiProfile.
type RadiiPreset struct {
	RCanopy float64
	RClose  float64
	RMerge  float64
	RStep   float64
}

// GetRadiiPresets returns the presets offered by the init wizard.
func GetRadiiPresets() map[RadiiProfile]RadiiPreset {
	return map[RadiiProfile]RadiiPreset{
		RadiiProfileMetagenomic: {
			RCanopy: 0.1,
			RClose:  0.4,
			RMerge:  0.03,
			RStep:   0.1,
		},
		RadiiProfileTight: {
			RCanopy: 0.05,
			RClose:  0.2,
			RMerge:  0.015,
			RStep:   0.05,
		},
		RadiiProfileLoose: {
			RCanopy: 0.2,
			RClose:  0.6,
			RMerge:  0.06,
			RStep:   0.15,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML for
// the given radii profile.
func GetFullConfigTemplate(profile RadiiProfile) string {
	preset := GetRadiiPresets()[profile]

	return `# canopy configuration
# Documentation: https://github.com/epruesse/gocanopy

clustering:
  # Membership radius: a point joins a canopy if its distance to the
  # center is below this value.
  r_canopy: ` + formatFloat(preset.RCanopy) + `

  # Close-set radius, must be greater than r_canopy. Points within this
  # radius are cached so the discovery walk doesn't rescan the whole pool
  # at every step.
  r_close: ` + formatFloat(preset.RClose) + `

  # Merge radius, must be <= r_canopy. Canopies whose centers fall within
  # this distance are fused in the merge pass.
  r_merge: ` + formatFloat(preset.RMerge) + `

  # Walk-stable threshold: the discovery walk stops recentering once
  # consecutive centers are within this distance.
  r_step: ` + formatFloat(preset.RStep) + `

  # Number of concurrent discovery/merge workers (0 = auto-detect).
  workers: 0

  # Seeded-shuffle the input point order before discovery.
  shuffle: false
  seed: 0

filters:
  max_share_enabled: false
  max_share: 0.9
  sparsity_enabled: false
  min_non_zero: 1

output:
  # Output format: text, json, tsv
  format: text
  show_details: true

check:
  enabled: false
  min_canopies: 1
  max_singleton_ratio: 1.0
`
}

// GetMinimalConfigTemplate returns a minimal config template using the
// metagenomic default radii.
func GetMinimalConfigTemplate() string {
	preset := GetRadiiPresets()[RadiiProfileMetagenomic]

	return `clustering:
  r_canopy: ` + formatFloat(preset.RCanopy) + `
  r_close: ` + formatFloat(preset.RClose) + `
  r_merge: ` + formatFloat(preset.RMerge) + `
  r_step: ` + formatFloat(preset.RStep) + `
  workers: 0

output:
  format: text
`
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
