package investing

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file implements the MarketProvider over the EODHD API.

const eodhdAPIKeyEnv = "EODHD_API_KEY"

var eodhdAPIFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching market data from EODHD.com.\n If missing it will be read from the environment variable \""+eodhdAPIKeyEnv+"\". You can get one at https://eodhd.com/")

func eodhdAPIKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdAPIFlag == "" {
		*eodhdAPIFlag = os.Getenv(eodhdAPIKeyEnv)
	}
	return *eodhdAPIFlag
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskCache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", Today().String(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a disk cache that expires every day.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// EODHD is a MarketProvider backed by the EODHD.com API. Responses are cached
// on disk with a daily expiry, so within one run (and one day) every endpoint
// is hit at most once per instrument.
type EODHD struct {
	apiKey string
	client *http.Client
}

// NewEODHD creates a provider. An empty key falls back to the -eodhd-api-key
// flag and then the EODHD_API_KEY environment variable.
func NewEODHD(apiKey string) *EODHD {
	if apiKey == "" {
		apiKey = eodhdAPIKey()
	}
	return &EODHD{apiKey: apiKey, client: daily()}
}

var _ MarketProvider = (*EODHD)(nil)

// Describe implements MarketProvider using the search endpoint.
func (e *EODHD) Describe(ticker string) (SecurityInfo, error) {
	// https://eodhd.com/api/search/NVDA?fmt=json&api_token=...
	// [
	//   {
	//     "Code": "NVDA",
	//     "Exchange": "US",
	//     "Name": "NVIDIA Corporation",
	//     "Type": "Common Stock",
	//     "Country": "USA",
	//     "Currency": "USD",
	//     ...
	addr := fmt.Sprintf("https://eodhd.com/api/search/%s?fmt=json&api_token=%s", url.PathEscape(ticker), e.apiKey)
	type Info struct {
		Code     string
		Exchange string
		Name     string
		Currency string
		Type     string
	}
	content := make([]Info, 0)
	if err := jwget(e.client, addr, &content); err != nil {
		return SecurityInfo{}, err
	}
	if len(content) == 0 {
		return SecurityInfo{}, fmt.Errorf("security %s is not available in eodhd.com", ticker)
	}
	info := content[0]
	return SecurityInfo{
		Ticker:   ticker,
		Name:     info.Name,
		Currency: info.Currency,
		Category: info.Type,
	}, nil
}

// CurrentPrice implements MarketProvider using the real-time endpoint.
func (e *EODHD) CurrentPrice(ticker string) (float64, error) {
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s", url.PathEscape(ticker), e.apiKey)
	return e.realTimeClose(ticker, addr)
}

// realTimeClose fetches a real-time payload and extracts its close field.
func (e *EODHD) realTimeClose(name, addr string) (float64, error) {
	var jobj any
	if err := jwget(e.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error in wget %q: %w", name, err)
	}
	path := "$.close"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", name, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		// a halted instrument comes back with "NA" in the close field.
		return 0, fmt.Errorf("error parsing %q: %q %s %v", name, path, "not a float", jval)
	}
	return val, nil
}

// Splits implements MarketProvider.
func (e *EODHD) Splits(ticker string) (SplitList, error) {
	// https://eodhd.com/api/splits/NVDA?fmt=json&api_token=...
	// [
	//   {
	//     "date": "2024-06-10",
	//     "split": "10.000000/1.000000"
	//   },
	addr := fmt.Sprintf("https://eodhd.com/api/splits/%s?fmt=json&api_token=%s", url.PathEscape(ticker), e.apiKey)
	type Info struct {
		Date  Date   `json:"date"`
		Split string `json:"split"`
	}
	content := make([]Info, 0)
	if err := jwget(e.client, addr, &content); err != nil {
		return nil, err
	}
	splits := make(SplitList, 0, len(content))
	for _, info := range content {
		num, den, err := parseSplitRatio(info.Split)
		if err != nil {
			return nil, fmt.Errorf("invalid split %q for %s on %s: %w", info.Split, ticker, info.Date, err)
		}
		splits = append(splits, Split{Date: info.Date, Numerator: num, Denominator: den})
	}
	return splits, nil
}

// parseSplitRatio parses the "new/old" ratio notation ("10.000000/1.000000")
// into an integer numerator and denominator.
func parseSplitRatio(ratio string) (num, den int64, err error) {
	parts := strings.Split(ratio, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want the new/old notation")
	}
	n, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	d, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	if !n.IsPositive() || !d.IsPositive() {
		return 0, 0, fmt.Errorf("ratio must be positive")
	}
	// scale both sides to integers (reverse splits come as "1/8", some
	// exotic ones as "1.5/1") and reduce.
	shift := max(-n.Exponent(), -d.Exponent(), 0)
	num = n.Shift(shift).IntPart()
	den = d.Shift(shift).IntPart()
	for g := gcd(num, den); g > 1; g = gcd(num, den) {
		num, den = num/g, den/g
	}
	return num, den, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Dividends implements MarketProvider.
func (e *EODHD) Dividends(ticker string) (History[float64], error) {
	// https://eodhd.com/api/div/NVDA?fmt=json&api_token=...
	// [
	//   {
	//     "date": "2024-02-09",
	//     "declarationDate": "2024-01-24",
	//     "value": 0.04,
	//     "unadjustedValue": 0.16,
	//     "currency": "USD"
	//   },
	addr := fmt.Sprintf("https://eodhd.com/api/div/%s?fmt=json&api_token=%s", url.PathEscape(ticker), e.apiKey)
	type Info struct {
		Date  Date    `json:"date"`
		Value float64 `json:"value"`
	}
	var dividends History[float64]
	content := make([]Info, 0)
	if err := jwget(e.client, addr, &content); err != nil {
		return dividends, err
	}
	for _, info := range content {
		dividends.Append(info.Date, info.Value)
	}
	return dividends, nil
}

// ExchangeRate implements MarketProvider using the forex real-time tickers.
func (e *EODHD) ExchangeRate(currency string) (float64, error) {
	if currency == HomeCurrency {
		return 1, nil
	}
	// The ticker for forex is in the format "fromCurrency+toCurrency.FOREX".
	name := fmt.Sprintf("%s%s.FOREX", currency, HomeCurrency)
	addr := fmt.Sprintf("https://eodhd.com/api/real-time/%s?fmt=json&api_token=%s", name, e.apiKey)
	return e.realTimeClose(name, addr)
}

// PriceHistory implements MarketProvider.
// It returns the daily open and close prices adjusted for splits.
func (e *EODHD) PriceHistory(ticker string, from Date) (open, close History[float64], err error) {
	// https://eodhd.com/api/eod/NVDA?fmt=json&api_token=...
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", url.PathEscape(ticker), e.apiKey, from, Today())
	type Info struct {
		Date  Date    `json:"date"`
		Close float64 `json:"adjusted_close"`
		Open  float64 `json:"open"`
	}
	content := make([]Info, 0)
	if err := jwget(e.client, addr, &content); err != nil {
		return open, close, err
	}
	for _, info := range content {
		close.Append(info.Date, info.Close)
		open.Append(info.Date, info.Open)
	}
	return
}
