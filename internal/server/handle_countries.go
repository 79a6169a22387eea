package server

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/flashquiz/internal/catalog"
)

type CountryResponse struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Emoji string `json:"emoji"`
}

type FlagResponse struct {
	Country CountryResponse `json:"country"`
	Assets  []catalog.Asset `json:"assets"`
}

func toCountryResponse(c catalog.Country) CountryResponse {
	return CountryResponse{Name: c.Name, Code: c.Code, Emoji: c.Emoji()}
}

func handleListCountries(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
		countries := cat.Countries()
		resp := make([]CountryResponse, len(countries))
		for i, c := range countries {
			resp[i] = toCountryResponse(c)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleFlagAsset returns the flag image locations in the order a client
// should try them. The local file is listed only when it exists.
func handleFlagAsset(cat *catalog.Catalog, flagDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cat == nil {
			writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
			return
		}
		c, ok := cat.Lookup(chi.URLParam(r, "code"))
		if !ok {
			writeError(w, http.StatusNotFound, "country not found")
			return
		}

		var assets []catalog.Asset
		for _, a := range catalog.ResolveFlagAsset(c, flagDir) {
			if a.Source == catalog.SourceLocal {
				if _, err := os.Stat(a.Path); err != nil {
					continue
				}
			}
			assets = append(assets, a)
		}
		writeJSON(w, http.StatusOK, FlagResponse{Country: toCountryResponse(c), Assets: assets})
	}
}
