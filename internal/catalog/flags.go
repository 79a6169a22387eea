package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AssetSource tells where a flag image comes from.
type AssetSource string

const (
	SourceRemote AssetSource = "remote"
	SourceLocal  AssetSource = "local"
)

// Asset is one candidate location for a flag image.
type Asset struct {
	Source AssetSource `json:"source"`
	URL    string      `json:"url,omitempty"`
	Path   string      `json:"path,omitempty"`
}

// Location is the URL for remote assets and the file path for local ones.
func (a Asset) Location() string {
	if a.Source == SourceLocal {
		return a.Path
	}
	return a.URL
}

// ResolveFlagAsset lists the places a flag image can be loaded from, in the
// order they should be tried. The local file under flagDir comes last and is
// omitted when flagDir is empty. Nothing is fetched here.
func ResolveFlagAsset(c Country, flagDir string) []Asset {
	lower := strings.ToLower(c.Code)
	upper := strings.ToUpper(c.Code)

	assets := []Asset{
		{Source: SourceRemote, URL: fmt.Sprintf("https://flagcdn.com/w320/%s.png", lower)},
		{Source: SourceRemote, URL: fmt.Sprintf("https://flagsapi.com/%s/flat/256.png", upper)},
		{Source: SourceRemote, URL: fmt.Sprintf("https://countryflagsapi.netlify.app/flag/%s.svg", lower)},
	}
	if flagDir != "" && c.Flag != "" {
		assets = append(assets, Asset{Source: SourceLocal, Path: filepath.Join(flagDir, c.Flag)})
	}
	return assets
}
