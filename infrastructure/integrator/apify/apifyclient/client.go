package apifyclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	apifydomain "github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/metrics"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	resultsTypeDetails = "details"
	resultsTypePosts   = "posts"
	maxErrorBodySize   = 4 << 10
)

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

// Client devolve os payloads crus do scraper. Nenhuma validação é feita aqui.
type Client interface {
	FetchAccount(ctx context.Context, handle string) (map[string]any, error)
	FetchRecentPosts(ctx context.Context, handle string, limit int) ([]map[string]any, error)
}

type ApifyClient struct {
	httpClient *http.Client
	cfg        config.Apify
}

func NewClient(cfg *config.Config) Client {
	return &ApifyClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg: cfg.Apify,
	}
}

// FetchAccount roda o profile scraper e devolve o primeiro item do dataset
func (c *ApifyClient) FetchAccount(ctx context.Context, handle string) (map[string]any, error) {
	items, err := c.runActor(ctx, apifydomain.ProfileScraperInput{
		Usernames:   []string{handle},
		ResultsType: resultsTypeDetails,
	})
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, domain.NewInsightError(domain.ErrEntityNotFound, handle, "empty dataset")
	}

	return items[0], nil
}

// FetchRecentPosts roda o scraper em modo posts limitado a limit itens
func (c *ApifyClient) FetchRecentPosts(ctx context.Context, handle string, limit int) ([]map[string]any, error) {
	items, err := c.runActor(ctx, apifydomain.ProfileScraperInput{
		Usernames:    []string{handle},
		ResultsLimit: limit,
		ResultsType:  resultsTypePosts,
	})
	if err != nil {
		return nil, err
	}

	if len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

func (c *ApifyClient) runActor(ctx context.Context, input apifydomain.ProfileScraperInput) ([]map[string]any, error) {
	run, err := c.startRun(ctx, input)
	if err != nil {
		return nil, err
	}

	run, err = c.waitForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	return c.datasetItems(ctx, run.DefaultDatasetID)
}

// doJSON executa a requisição e traduz o status HTTP para a taxonomia de erros do domínio
func (c *ApifyClient) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "apify: encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.URL, "/")+path, reader)
	if err != nil {
		return errors.Wrap(err, "apify: build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	done := metrics.StartUpstreamTimer(method + " " + metricPath(path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		done(0)
		return errors.Wrapf(domain.ErrUpstreamUnavailable, "apify: %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	done(resp.StatusCode)

	if err := checkStatus(resp); err != nil {
		return errors.WithMessagef(err, "apify: %s %s", method, path)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(domain.ErrMalformedPayload, "apify: decode %s: %v", path, err)
	}

	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := readErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &domain.RateLimitError{
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Message:    message,
		}
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(domain.ErrEntityNotFound, message)
	default:
		return errors.Wrapf(domain.ErrUpstreamUnavailable, "status %d: %s", resp.StatusCode, message)
	}
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var envelope apifydomain.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}

	return strings.TrimSpace(string(raw))
}

// parseRetryAfter aceita segundos ou data HTTP, como no cabeçalho Retry-After
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}

	return 0
}

// metricPath remove os ids do path para manter a cardinalidade do label baixa
func metricPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/acts/"):
		return "/acts/runs"
	case strings.HasPrefix(path, "/actor-runs/"):
		return "/actor-runs"
	case strings.HasPrefix(path, "/datasets/"):
		return "/datasets/items"
	}
	return path
}
