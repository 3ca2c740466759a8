package bank

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

//go:embed default_bank.json
var defaultBank []byte

// Provider fetches the raw bytes of a question bank document.
type Provider interface {
	// Fetch returns the bank document. It is called once per engine.
	Fetch(ctx context.Context) ([]byte, error)

	// Source describes where the bank comes from, for error messages.
	Source() string
}

// FileProvider reads the bank from a local file.
type FileProvider struct {
	Path string
}

func (p FileProvider) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(p.Path)
}

func (p FileProvider) Source() string { return p.Path }

// HTTPProvider downloads the bank with a GET request.
type HTTPProvider struct {
	URL    string
	Client *http.Client
}

// NewHTTPProvider creates an HTTPProvider with a bounded request timeout.
func NewHTTPProvider(url string, timeout time.Duration) HTTPProvider {
	return HTTPProvider{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (p HTTPProvider) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", p.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", p.URL, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (p HTTPProvider) Source() string { return p.URL }

// embeddedProvider serves the bank compiled into the binary.
type embeddedProvider struct{}

// Embedded returns a Provider for the built-in sample bank.
func Embedded() Provider {
	return embeddedProvider{}
}

func (embeddedProvider) Fetch(_ context.Context) ([]byte, error) {
	out := make([]byte, len(defaultBank))
	copy(out, defaultBank)
	return out, nil
}

func (embeddedProvider) Source() string { return "embedded bank" }
