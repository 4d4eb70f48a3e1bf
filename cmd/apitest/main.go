// Command apitest runs a smoke test suite against a running Nakshatra API.
//
//	go run ./cmd/apitest -url http://localhost:8080 -v
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status  string   `json:"status"`
	Locales []string `json:"locales"`
}

// SiderealResponse is the response for /sidereal
type SiderealResponse struct {
	Moment       string  `json:"moment"`
	ZodiacIndex  int     `json:"zodiac_index"`
	MansionIndex int     `json:"mansion_index"`
	Longitude    float64 `json:"longitude"`
}

// ChartResponse is the part of /chart this suite checks.
type ChartResponse struct {
	Names []struct {
		Locale  string   `json:"locale"`
		Sign    string   `json:"sign"`
		Mansion string   `json:"mansion"`
		Letters []string `json:"letters"`
	} `json:"names"`
	StartsWith []string `json:"starts_with"`
	Matches    *bool    `json:"matches"`
}

// TransitResponse is the response for /transit
type TransitResponse struct {
	FromMansion int    `json:"from_mansion"`
	ToMansion   int    `json:"to_mansion"`
	Minutes     int    `json:"minutes"`
	At          string `json:"at"`
}

// AlmanacResponse is the response for /almanac
type AlmanacResponse struct {
	UTCOffset string `json:"utc_offset"`
	Days      []struct {
		Date              string `json:"date"`
		ZodiacIndex       int    `json:"zodiac_index"`
		MansionIndex      int    `json:"mansion_index"`
		MansionEndsMinute *int   `json:"mansion_ends_minute"`
		NextMansionIndex  *int   `json:"next_mansion_index"`
	} `json:"days"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	client       *http.Client
	verbose      bool
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL string, verbose bool) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		verbose: verbose,
	}
}

func (tr *TestRunner) Run() {
	fmt.Println("==============================================")
	fmt.Println("Nakshatra API Test Suite")
	fmt.Println("==============================================")
	fmt.Printf("Base URL: %s\n", tr.baseURL)
	fmt.Println()

	tr.testHealth()
	tr.testSidereal()
	tr.testChart()
	tr.testTransit()
	tr.testLocales()
	tr.testAlmanac()
	tr.testEdgeCases()

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess(fmt.Sprintf("Health check passed (locales %v)", health.Locales))
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testSidereal() {
	tr.printSection("Moon Position")

	cases := []struct {
		datetime, offset string
		zodiac, mansion  int
	}{
		{"2000-01-01T12:00", "Z", 6, 15},
		{"2000-01-01T17:30", "+05:30", 6, 15},
		{"1990-07-21T23:45", "+05:30", 3, 6},
	}

	for _, c := range cases {
		path := "/api/v1/sidereal?" + url.Values{"datetime": {c.datetime}, "offset": {c.offset}}.Encode()
		var data SiderealResponse
		if err := tr.getData(path, &data); err != nil {
			tr.recordError(c.datetime, err.Error())
			continue
		}
		if data.ZodiacIndex != c.zodiac || data.MansionIndex != c.mansion {
			tr.recordError(c.datetime, fmt.Sprintf("got sign %d mansion %d, want %d/%d",
				data.ZodiacIndex, data.MansionIndex, c.zodiac, c.mansion))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s: sign %d, mansion %d, %.4f°",
			data.Moment, data.ZodiacIndex, data.MansionIndex, data.Longitude))
	}
}

func (tr *TestRunner) testChart() {
	tr.printSection("Chart")

	path := "/api/v1/chart?" + url.Values{
		"datetime": {"2000-01-01T12:00"},
		"offset":   {"Z"},
		"locale":   {"en,ta,hi"},
		"name":     {"Tina"},
	}.Encode()

	var data ChartResponse
	if err := tr.getData(path, &data); err != nil {
		tr.recordError("Chart", err.Error())
		return
	}
	if len(data.Names) != 3 {
		tr.recordError("Chart", fmt.Sprintf("got %d locales, want 3", len(data.Names)))
		return
	}
	for _, n := range data.Names {
		tr.recordSuccess(fmt.Sprintf("%s: %s / %s", n.Locale, n.Sign, n.Mansion))
		if tr.verbose {
			fmt.Printf("      letters: %s\n", strings.Join(n.Letters, " "))
		}
	}
	if data.Matches != nil && *data.Matches {
		tr.recordSuccess("Name Tina matches the starting letters")
	} else {
		tr.recordError("Chart", "Tina should match the starting letters")
	}
}

func (tr *TestRunner) testTransit() {
	tr.printSection("Next Mansion Change")

	var data TransitResponse
	if err := tr.getData("/api/v1/transit?datetime=2000-01-01T00:00&offset=%2B05:30", &data); err != nil {
		tr.recordError("Transit", err.Error())
		return
	}
	if data.FromMansion != 14 || data.ToMansion != 15 || math.Abs(float64(data.Minutes-948)) > 1 {
		tr.recordError("Transit", fmt.Sprintf("unexpected transit %+v", data))
		return
	}
	tr.recordSuccess(fmt.Sprintf("%d -> %d at %s", data.FromMansion, data.ToMansion, data.At))
}

func (tr *TestRunner) testLocales() {
	tr.printSection("Locales")

	cases := []struct{ path, want string }{
		{"/api/v1/locales/en/sign/0", "Aries"},
		{"/api/v1/locales/en/mansion/26", "Revati"},
		{"/api/v1/locales/ta/mansion/15", "விசாகம்"},
	}
	for _, c := range cases {
		var data struct {
			Name string `json:"name"`
		}
		if err := tr.getData(c.path, &data); err != nil {
			tr.recordError(c.path, err.Error())
			continue
		}
		if data.Name != c.want {
			tr.recordError(c.path, fmt.Sprintf("got %q, want %q", data.Name, c.want))
			continue
		}
		tr.recordSuccess(fmt.Sprintf("%s = %s", c.path, data.Name))
	}
}

func (tr *TestRunner) testAlmanac() {
	tr.printSection("Almanac (January 2000, IST)")

	var data AlmanacResponse
	if err := tr.getData("/api/v1/almanac?start=2000-01-01&end=2000-01-05&offset=%2B05:30", &data); err != nil {
		tr.recordError("Almanac", err.Error())
		return
	}

	want := []int{14, 15, 16, 17, 17}
	if len(data.Days) != len(want) {
		tr.recordError("Almanac", fmt.Sprintf("got %d days, want %d", len(data.Days), len(want)))
		return
	}
	for i, d := range data.Days {
		if d.MansionIndex != want[i] {
			tr.recordError(d.Date, fmt.Sprintf("mansion %d, want %d", d.MansionIndex, want[i]))
			continue
		}
		change := "no change"
		if d.MansionEndsMinute != nil {
			change = fmt.Sprintf("changes at %02d:%02d", *d.MansionEndsMinute/60, *d.MansionEndsMinute%60)
		}
		tr.recordSuccess(fmt.Sprintf("%s: mansion %d, %s", d.Date, d.MansionIndex, change))
	}
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	cases := []struct {
		name, path string
		status     int
	}{
		{"Missing datetime", "/api/v1/sidereal", 400},
		{"Bad offset", "/api/v1/sidereal?datetime=2000-01-01T00:00&offset=%2B5:99", 400},
		{"Unknown locale", "/api/v1/locales/xx/sign/0", 404},
		{"Index out of range", "/api/v1/locales/en/mansion/27", 400},
		{"Reversed range", "/api/v1/almanac?start=2000-01-05&end=2000-01-01", 400},
		{"Unknown route", "/api/v1/readings", 404},
	}

	for _, c := range cases {
		resp, err := tr.getRaw(c.path)
		if err != nil {
			tr.recordError(c.name, err.Error())
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == c.status {
			tr.recordSuccess(fmt.Sprintf("%s rejected with %d", c.name, c.status))
		} else {
			tr.recordError(c.name, fmt.Sprintf("status %d, want %d", resp.StatusCode, c.status))
		}
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

func (tr *TestRunner) get(path string) (*APIResponse, error) {
	resp, err := tr.getRaw(path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return nil, fmt.Errorf("API error: %s", errMsg)
	}

	return &apiResp, nil
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

func (tr *TestRunner) getData(path string, target any) error {
	resp, err := tr.get(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Data, target)
}

func (tr *TestRunner) printSection(name string) {
	fmt.Println()
	fmt.Printf("--- %s ---\n", name)
	fmt.Println()
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Printf("  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Printf("  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Println()
	fmt.Println("==============================================")
	fmt.Println("Summary")
	fmt.Println("==============================================")
	fmt.Printf("  Passed: %d\n", tr.successCount)
	fmt.Printf("  Failed: %d\n", tr.errorCount)
	fmt.Println()

	if tr.errorCount > 0 {
		fmt.Println("Failures:")
		for _, err := range tr.errors {
			fmt.Printf("  • %s\n", err)
		}
		fmt.Println()
	}

	if tr.errorCount == 0 {
		fmt.Println("All tests passed! ✓")
	} else {
		fmt.Printf("Tests completed with %d failure(s)\n", tr.errorCount)
	}
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	verbose := flag.Bool("v", false, "Verbose output (show starting letters)")
	flag.Parse()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *verbose)
	runner.Run()

	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
