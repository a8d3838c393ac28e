package http

import "github.com/samirrijal/mobilitymap/internal/core/usecases"

// ArtifactChecker reports whether a published artifact exists.
type ArtifactChecker interface {
	Exists(path string) bool
}

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Atlas        *usecases.AtlasService
	Artifacts    ArtifactChecker
	StaticDir    string // directory served under /static
	ArtifactFile string // file name of the map inside StaticDir
	Docs         *APIDocs
}

func (d *Dependencies) artifactURL() string {
	return "/static/" + d.ArtifactFile
}
