// Package benchmark drives concurrent load against the HTTP API and summarises latencies.
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// APIBenchmark sends a fixed number of requests with bounded concurrency
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult summarises one run
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// SuccessRate is the share of 2xx responses in percent
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

type requestResult struct {
	duration   time.Duration
	statusCode int
	err        error
}

// NewAPIBenchmark creates a runner
func NewAPIBenchmark(baseURL string, concurrency, requests int, authToken string) *APIBenchmark {
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login signs in and returns the session token
func (b *APIBenchmark) Login(email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := b.Client.Post(b.BaseURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || envelope.Data.Token == "" {
		return "", fmt.Errorf("login failed: %d %s", resp.StatusCode, envelope.Message)
	}
	return envelope.Data.Token, nil
}

// RunGET benchmarks a GET request
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.run(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST benchmarks a POST request with a JSON body
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPost, path, payload)
}

// RunPUT benchmarks a PUT request with a JSON body
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runJSON(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	data, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: method,
			Errors: []string{fmt.Sprintf("encode payload: %v", err)},
		}
	}
	return b.run(method, url, data)
}

func (b *APIBenchmark) do(method, url string, payload []byte) requestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return requestResult{err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return requestResult{err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return requestResult{duration: time.Since(start), statusCode: resp.StatusCode}
}

func (b *APIBenchmark) run(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan requestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, max(b.Concurrency, 1))

	startTime := time.Now()
	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()
			results <- b.do(method, url, payload)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	out := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		MinTime:       time.Duration(1<<63 - 1),
		StatusCodes:   make(map[int]int),
	}
	var totalTime time.Duration
	for result := range results {
		if result.err != nil {
			out.FailureCount++
			out.Errors = append(out.Errors, result.err.Error())
			continue
		}
		totalTime += result.duration
		out.MinTime = min(out.MinTime, result.duration)
		out.MaxTime = max(out.MaxTime, result.duration)

		out.StatusCodes[result.statusCode]++
		if result.statusCode >= 200 && result.statusCode < 300 {
			out.SuccessCount++
		} else {
			out.FailureCount++
		}
	}

	out.TotalTime = time.Since(startTime)
	out.RequestsPerSec = float64(b.Requests) / out.TotalTime.Seconds()
	if n := out.SuccessCount + out.FailureCount - len(out.Errors); n > 0 {
		out.AverageTime = totalTime / time.Duration(n)
	}
	if out.MaxTime == 0 {
		out.MinTime = 0
	}
	return out
}

// Print writes a readable summary, showing at most five errors
func (r *BenchmarkResult) Print(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", r.Method, r.URL)
	fmt.Fprintf(w, "  concurrency %d, requests %d, ok %d, failed %d\n", r.Concurrency, r.TotalRequests, r.SuccessCount, r.FailureCount)
	fmt.Fprintf(w, "  total %s, avg %s, min %s, max %s, %.2f req/s\n", r.TotalTime, r.AverageTime, r.MinTime, r.MaxTime, r.RequestsPerSec)
	for code, count := range r.StatusCodes {
		fmt.Fprintf(w, "  status %d: %d\n", code, count)
	}
	for i, err := range r.Errors {
		if i >= 5 {
			fmt.Fprintf(w, "  ... %d more errors\n", len(r.Errors)-5)
			break
		}
		fmt.Fprintf(w, "  error: %s\n", err)
	}
}
