package patient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
	"github.com/pfrederiksen/jp-covid-stats/internal/scraper"
	"github.com/pfrederiksen/jp-covid-stats/internal/storage"
)

// IndexURL lists every published report workbook.
const IndexURL = "https://www.mhlw.go.jp/stf/seisakunitsuite/newpage_00023.html"

// IndexQuery locates report titles and workbook links on the index page.
var IndexQuery = scraper.IndexQuery{
	Container: ".m-grid__col1",
	Title:     regexp.MustCompile(`新型コロナウイルス感染症患者の療養状況等及び入院患者受入病床数等に関する調査結果.*時点.*`),
	Href:      regexp.MustCompile(`\.xlsx$`),
}

// Report is one published workbook.
type Report struct {
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
}

// File is the name the workbook is saved under in the data directory.
func (r Report) File() (string, error) {
	return scraper.FileName(r.URL)
}

// Fetcher downloads index pages and workbooks.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	FetchIndex(ctx context.Context, pageURL string, q scraper.IndexQuery) ([]scraper.Link, error)
}

// Index lists the reports on the index page at pageURL.
func Index(ctx context.Context, f Fetcher, pageURL string) ([]Report, error) {
	links, err := f.FetchIndex(ctx, pageURL, IndexQuery)
	if err != nil {
		return nil, fmt.Errorf("fetching report index: %w", err)
	}

	reports := make([]Report, 0, len(links))
	for _, link := range links {
		key, err := KeyFromTitle(link.Title)
		if err != nil {
			return nil, err
		}
		ts, err := ParseTimestamp(key)
		if err != nil {
			return nil, err
		}
		reports = append(reports, Report{Key: key, Timestamp: ts, URL: link.URL})
	}
	return reports, nil
}

// Updater mirrors the published workbooks into DataDir.
type Updater struct {
	Fetcher Fetcher
	Store   storage.Store
	DataDir string
	// IndexURL defaults to the package IndexURL.
	IndexURL string
	// Overwrite downloads workbooks even if the file already exists.
	Overwrite bool
}

// UpdateResult summarises one Update run.
type UpdateResult struct {
	Listed     int `json:"listed"`
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
}

// Update downloads every listed workbook missing from DataDir and records
// its key and URL in the store. A failed download stops the run; reports
// recorded before it are kept.
func (u *Updater) Update(ctx context.Context) (UpdateResult, error) {
	var res UpdateResult

	pageURL := u.IndexURL
	if pageURL == "" {
		pageURL = IndexURL
	}
	reports, err := Index(ctx, u.Fetcher, pageURL)
	if err != nil {
		return res, err
	}
	res.Listed = len(reports)

	dir, err := storage.EnsureDir(u.DataDir)
	if err != nil {
		return res, err
	}

	for _, r := range reports {
		name, err := r.File()
		if err != nil {
			return res, fmt.Errorf("report %s: %w", r.Key, err)
		}
		path := filepath.Join(dir, name)

		if _, err := os.Stat(path); err == nil && !u.Overwrite {
			res.Skipped++
		} else {
			logger.Info("Downloading report", logger.Fields{"key": r.Key, "url": r.URL})
			data, err := u.Fetcher.Fetch(ctx, r.URL)
			if err != nil {
				return res, fmt.Errorf("downloading report %s: %w", r.Key, err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return res, fmt.Errorf("saving report %s: %w", r.Key, err)
			}
			res.Downloaded++
			logger.IncrCounter("patient.downloaded")
		}

		if err := u.Store.Put(r.Key, r.URL); err != nil {
			return res, fmt.Errorf("recording report %s: %w", r.Key, err)
		}
	}

	logger.Info("Report index updated", logger.Fields{
		"listed":     res.Listed,
		"downloaded": res.Downloaded,
		"skipped":    res.Skipped,
	})
	return res, nil
}

// Reports returns the stored reports ordered by timestamp.
func Reports(store storage.Store) ([]Report, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	reports := make([]Report, 0, len(keys))
	for _, key := range keys {
		ts, err := ParseTimestamp(key)
		if err != nil {
			return nil, err
		}
		url, ok, err := store.Get(key)
		if err != nil {
			return nil, fmt.Errorf("reading report %s: %w", key, err)
		}
		if !ok {
			continue
		}
		reports = append(reports, Report{Key: key, Timestamp: ts, URL: url})
	}

	sortReports(reports)
	return reports, nil
}
