package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantError  bool
	}{
		{
			name:       "successful fetch",
			body:       "PK\x03\x04payload",
			statusCode: http.StatusOK,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "jp-covid-stats") {
					t.Errorf("User-Agent = %q, should contain 'jp-covid-stats'", ua)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			data, err := New().Fetch(context.Background(), server.URL+"/file.xlsx")

			if tt.wantError {
				var fetchErr *FetchError
				if !errors.As(err, &fetchErr) {
					t.Fatalf("Fetch() error = %v, want *FetchError", err)
				}
				if fetchErr.StatusCode != tt.statusCode {
					t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.statusCode)
				}
				if !strings.HasSuffix(fetchErr.URL, "/file.xlsx") {
					t.Errorf("URL = %q", fetchErr.URL)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if string(data) != tt.body {
				t.Errorf("Fetch() = %q, want %q", data, tt.body)
			}
		})
	}
}

func TestFetch_CustomUserAgentAndCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "custom/2" {
			t.Errorf("User-Agent = %q, want custom/2", ua)
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	s := New(WithUserAgent("custom/2"), WithTimeout(5*time.Second))
	if _, err := s.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Fetch(ctx, server.URL); err == nil {
		t.Error("Fetch() with cancelled context should fail")
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil || s.client.Timeout != Timeout {
		t.Error("scraper client missing default timeout")
	}
	if s.userAgent != UserAgent {
		t.Errorf("userAgent = %q, want %q", s.userAgent, UserAgent)
	}

	custom := &http.Client{}
	if New(WithHTTPClient(custom)).client != custom {
		t.Error("WithHTTPClient not applied")
	}
}

const indexPage = `
<html><body>
<div class="m-grid__col1">
  <p>新型コロナウイルス感染症患者の療養状況等及び入院患者受入病床数等に関する調査結果（２０２１年６月９日０時時点）
    <a href="/content/10900000/000790000.xlsx">[Excel]</a>
    <a href="/content/10900000/000790000.pdf">[PDF]</a>
  </p>
  <p>新型コロナウイルス感染症患者の療養状況等及び入院患者受入病床数等に関する調査結果（２０２１年６月２日０時時点）
    <a href="https://www.mhlw.go.jp/content/10900000/000787000.xlsx">[Excel]</a>
  </p>
  <p>その他のお知らせ <a href="/content/other.xlsx">other</a></p>
</div>
<div class="m-grid__col1">
  <p>新型コロナウイルス感染症患者の療養状況等及び入院患者受入病床数等に関する調査結果（２０２０年１月１日０時時点）</p>
</div>
</body></html>`

func testQuery() IndexQuery {
	return IndexQuery{
		Container: ".m-grid__col1",
		Title:     regexp.MustCompile(`調査結果.*時点`),
		Href:      regexp.MustCompile(`\.xlsx$`),
	}
}

func TestParseIndex(t *testing.T) {
	base, _ := url.Parse("https://www.mhlw.go.jp/stf/seisakunitsuite/newpage_00023.html")

	links, err := ParseIndex(strings.NewReader(indexPage), base, testQuery())
	if err != nil {
		t.Fatalf("ParseIndex() error: %v", err)
	}

	// Three xlsx links but only two titles: the unmatched trailing link is dropped,
	// and the second container is never scanned.
	if len(links) != 2 {
		t.Fatalf("ParseIndex() returned %d links, want 2: %+v", len(links), links)
	}
	if links[0].URL != "https://www.mhlw.go.jp/content/10900000/000790000.xlsx" {
		t.Errorf("links[0].URL = %q", links[0].URL)
	}
	if !strings.Contains(links[0].Title, "６月９日") {
		t.Errorf("links[0].Title = %q", links[0].Title)
	}
	if links[1].URL != "https://www.mhlw.go.jp/content/10900000/000787000.xlsx" {
		t.Errorf("links[1].URL = %q", links[1].URL)
	}
}

func TestParseIndex_MissingContainer(t *testing.T) {
	q := testQuery()
	q.Container = "#nope"
	if _, err := ParseIndex(strings.NewReader(indexPage), nil, q); err == nil {
		t.Error("ParseIndex() expected error for missing container")
	}
}

func TestFetchIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexPage))
	}))
	defer server.Close()

	links, err := New().FetchIndex(context.Background(), server.URL+"/stf/index.html", testQuery())
	if err != nil {
		t.Fatalf("FetchIndex() error: %v", err)
	}
	if len(links) != 2 || links[0].URL != server.URL+"/content/10900000/000790000.xlsx" {
		t.Errorf("FetchIndex() = %+v", links)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.mhlw.go.jp/content/10900000/000790000.xlsx", "000790000.xlsx", false},
		{"https://example.test/a/b.xlsx?x=1", "b.xlsx", false},
		{"https://example.test/", "", true},
	}
	for _, tt := range tests {
		got, err := FileName(tt.url)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FileName(%q) = %q, %v; want %q", tt.url, got, err, tt.want)
		}
	}
}
