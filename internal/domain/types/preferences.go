package types

// PreferenceFlags are the launch-flow booleans kept next to the DisplayNumber.
type PreferenceFlags struct {
	FirstLaunch         bool `json:"first_launch"`
	DontAskAgainDefault bool `json:"dont_ask_default"`
}

// DefaultPreferenceFlags returns the values used on a fresh install.
func DefaultPreferenceFlags() PreferenceFlags {
	return PreferenceFlags{FirstLaunch: true}
}
