package stockmentor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func setupTestDB(t *testing.T) (*Core, func()) {
	t.Helper()
	return setupTestDBWithOptions(t, Options{})
}

func setupTestDBWithOptions(t *testing.T, opts Options) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "stockmentor-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	opts.DBPath = filepath.Join(tmpDir, "test.db")
	core, err := OpenWithOptions(opts)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

func assertErrorCode(t *testing.T, err error, code ErrorCode, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error with code %s, got nil", msg, code)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("%s: expected code %s, got %s (%v)", msg, code, got, err)
	}
}

// fakeMarketDoer serves canned market-data responses keyed by request path.
// Unknown paths get a 404 so symbol lookups behave like the real provider.
type fakeMarketDoer struct {
	mu        sync.Mutex
	responses map[string]string
	calls     []string
}

func newFakeMarketDoer() *fakeMarketDoer {
	return &fakeMarketDoer{responses: map[string]string{}}
}

func (f *fakeMarketDoer) set(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[path] = body
}

func (f *fakeMarketDoer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeMarketDoer) Do(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req.URL.Path)
	body, ok := f.responses[req.URL.Path]
	status := http.StatusOK
	if !ok {
		status = http.StatusNotFound
		body = `{"detail":"Not found."}`
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     http.Header{},
	}, nil
}

// installSymbol registers metadata and a daily price series for a symbol.
func (f *fakeMarketDoer) installSymbol(symbol, name string, closes ...float64) {
	f.set("/tiingo/daily/"+symbol, fmt.Sprintf(`{"ticker":%q,"name":%q,"description":"A test company."}`, symbol, name))
	var bars []string
	for i, price := range closes {
		bars = append(bars, fmt.Sprintf(`{"date":"2025-01-%02dT00:00:00.000Z","open":%g,"high":%g,"low":%g,"close":%g,"volume":1000}`, i+1, price, price, price, price))
	}
	f.set("/tiingo/daily/"+symbol+"/prices", "["+strings.Join(bars, ",")+"]")
}

// stubGenerator returns a fixed response or error for every prompt and
// remembers the last prompt it saw.
type stubGenerator struct {
	response string
	err      error

	mu         sync.Mutex
	lastPrompt string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	s.mu.Lock()
	s.lastPrompt = prompt
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

var errGeneratorDown = errors.New("generator unavailable")
