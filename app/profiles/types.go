package profiles

// Profile describes how uploads are branded for one target site.
type Profile struct {
	// Prefix is prepended to every uploaded article body. It usually
	// carries the attribution line linking back to the site.
	Prefix string `yaml:"prefix"`

	// Category is the CMS category preselected for uploads.
	Category string `yaml:"category"`
}

// Config is the operator-editable part of the system: which feeds to
// watch and which site profiles are available for selection.
type Config struct {
	Feeds    []string           `yaml:"feeds"`
	Profiles map[string]Profile `yaml:"profiles"`
}
