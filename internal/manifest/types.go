package manifest

// Manifest is the top-level output of a trc build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	RunID       string           `json:"run_id"`
	Preset      string           `json:"preset"` // default preset of the run
	Endpoint    string           `json:"endpoint,omitempty"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers     int `json:"workers"`
	Diagnostics int `json:"diagnostics"` // advisory overlay diagnostics raised
}

// Asset is one job: a source and its compiled transformation.
type Asset struct {
	Job       string    `json:"job"`      // job file, relative to the build input
	JobHash   string    `json:"job_hash"` // content hash of the job file
	Src       string    `json:"src"`
	Preset    string    `json:"preset,omitempty"` // empty when an inline config was used
	MediaType string    `json:"media_type"`       // "IMAGE" or "VIDEO"
	Tr        string    `json:"tr"`
	URL       string    `json:"url"`
	Hash      string    `json:"hash"` // cache key of (url source, tr)
	Tokens    int       `json:"tokens"`
	Layers    int       `json:"layers"`
	Variants  []Variant `json:"variants,omitempty"`
}

// Variant is the asset rendered at one responsive width.
type Variant struct {
	Width int    `json:"width"`
	Tr    string `json:"tr"`
	URL   string `json:"url"`
	Hash  string `json:"hash"`
}

// Stats aggregates build metrics.
type Stats struct {
	TotalAssets     int `json:"total_assets"`
	TotalVariants   int `json:"total_variants"`
	TotalTokens     int `json:"total_tokens"`
	TotalLayers     int `json:"total_layers"`
	EmptyTransforms int `json:"empty_transforms,omitempty"` // assets whose tr is empty
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// DefaultFileName is the manifest file written by build.
const DefaultFileName = "trc.manifest.json"
