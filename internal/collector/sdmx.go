package collector

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// SDMXFetcher reads CPI observations from an SDMX-ML data message.
// Both the structure-specific (Obs TIME_PERIOD/OBS_VALUE attributes) and the
// generic (ObsDimension/ObsValue children) layouts are understood.
type SDMXFetcher struct {
	URL    string
	Client *http.Client
	log    *logrus.Logger
}

// NewSDMXFetcher creates a fetcher with optional proxy support.
func NewSDMXFetcher(sourceURL, proxyURL string, timeout time.Duration, log *logrus.Logger) *SDMXFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &SDMXFetcher{
		URL: sourceURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: log,
	}
}

func (f *SDMXFetcher) Name() string { return "sdmx" }

// FetchCPI downloads the feed and returns one value per year, the mean of
// that year's observations.
func (f *SDMXFetcher) FetchCPI(ctx context.Context) (map[int]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build sdmx request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.sdmx.structurespecificdata+xml, application/xml")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sdmx fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sdmx read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sdmx: status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}
	f.log.WithField("bytes", len(body)).Debug("sdmx response received")

	return ParseSDMX(body)
}

// ParseSDMX extracts yearly averages from an SDMX-ML document.
func ParseSDMX(raw []byte) (map[int]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("parse sdmx xml: %w", err)
	}

	obs := doc.FindElements("//Obs")
	if len(obs) == 0 {
		return nil, fmt.Errorf("sdmx: no observations found")
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, o := range obs {
		period, value := observation(o)
		if period == "" || value == "" || strings.EqualFold(value, "NaN") {
			continue
		}
		year, err := periodYear(period)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("sdmx: value %q for %s: %w", value, period, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sums[year] += v
		counts[year]++
	}
	if len(sums) == 0 {
		return nil, fmt.Errorf("sdmx: observations carry no values")
	}

	out := make(map[int]float64, len(sums))
	for year, s := range sums {
		out[year] = s / float64(counts[year])
	}
	return out, nil
}

func observation(o *etree.Element) (period, value string) {
	period = o.SelectAttrValue("TIME_PERIOD", "")
	value = o.SelectAttrValue("OBS_VALUE", "")
	if period == "" {
		if dim := o.FindElement("./ObsDimension"); dim != nil {
			period = dim.SelectAttrValue("value", "")
		}
	}
	if value == "" {
		if v := o.FindElement("./ObsValue"); v != nil {
			value = v.SelectAttrValue("value", "")
		}
	}
	return strings.TrimSpace(period), strings.TrimSpace(value)
}

// periodYear accepts "2020", "2020-01", "2020-M01", "2020-Q1" and similar.
func periodYear(period string) (int, error) {
	if len(period) < 4 {
		return 0, fmt.Errorf("sdmx: bad time period %q", period)
	}
	year, err := strconv.Atoi(period[:4])
	if err != nil {
		return 0, fmt.Errorf("sdmx: bad time period %q", period)
	}
	return year, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
