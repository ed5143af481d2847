package release

// Metadata mirrors the release document published at the metadata endpoint.
type Metadata struct {
	// CurrentRelease is the version number of the latest published build.
	CurrentRelease string `json:"currentRelease"`
	// Releases lists the published builds in document order.
	Releases []Release `json:"releases"`
}

// Release describes a single published build.
type Release struct {
	// UpdateTo points at the downloadable artifact of this build.
	UpdateTo UpdateTo `json:"updateTo"`
}

// UpdateTo carries the artifact location of a build.
type UpdateTo struct {
	// URL is the download location of the artifact.
	URL string `json:"url"`
}
