// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config persists the last-used search request between runs.
// The pipeline never touches persistent state itself; the CLI loads a
// request here, lets flags override it, and saves the effective request
// back at run start.
package config

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-sifter/internal/filter"
	"github.com/pdiddy/arxiv-sifter/pkg/types"
)

// Stock keyword lists shipped as defaults, aimed at time-series work.
const (
	DefaultTitleKeywords = "time series, time-series, time series forecasting, " +
		"time-series forecasting, time series prediction, time-series prediction"

	DefaultAbstractKeywords = DefaultTitleKeywords + ", sequence forecasting, " +
		"sequential forecasting, temporal forecasting, spatio-temporal forecasting, " +
		"spatiotemporal forecasting, multivariate time series, univariate time series, " +
		"time series model, time series analysis"
)

// Default returns the request used when nothing has been saved yet.
func Default() types.SearchRequest {
	return types.SearchRequest{
		Venue:             "NeurIPS 2025",
		MaxResults:        types.MaxResultsLimit,
		TitleKeywords:     filter.Parse(DefaultTitleKeywords, types.ModeOR),
		AbstractKeywords:  filter.Parse(DefaultAbstractKeywords, types.ModeOR),
		RequireOpenSource: true,
		DownloadPDFs:      false,
		OutputDir:         ".",
	}
}

// Store loads and saves a search request. The pipeline receives a request
// value; only the caller decides where it comes from and goes to.
type Store interface {
	Load() types.SearchRequest
	Save(types.SearchRequest) error
}

// FileStore keeps the request as a YAML file.
type FileStore struct {
	Path string
}

// Load reads the saved request. Absence, unreadable files, and parse
// failures all yield the defaults silently.
func (s FileStore) Load() types.SearchRequest {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Default()
	}
	req := Default()
	if err := yaml.Unmarshal(data, &req); err != nil {
		return Default()
	}
	return req
}

// Save writes the request. Callers treat failure as best-effort: a save
// error never blocks a run.
func (s FileStore) Save(req types.SearchRequest) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0o644)
}
