package apifyclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testActor = "apify~instagram-profile-scraper"

type fakeApify struct {
	startStatus  int
	retryAfter   string
	pendingPolls int32
	finalStatus  string
	items        string
	polls        atomic.Int32
	lastInput    atomic.Value
}

func (f *fakeApify) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/acts/"+testActor+"/runs", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		var input map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		f.lastInput.Store(input)

		if f.startStatus != 0 {
			if f.retryAfter != "" {
				w.Header().Set("Retry-After", f.retryAfter)
			}
			w.WriteHeader(f.startStatus)
			fmt.Fprint(w, `{"error":{"type":"rate-limit-exceeded","message":"too many runs"}}`)
			return
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"data":{"id":"run-1","status":"READY","defaultDatasetId":"ds-1"}}`)
	})

	mux.HandleFunc("/actor-runs/run-1", func(w http.ResponseWriter, r *http.Request) {
		status := f.finalStatus
		if f.polls.Add(1) <= f.pendingPolls {
			status = "RUNNING"
		}
		fmt.Fprintf(w, `{"data":{"id":"run-1","status":%q,"defaultDatasetId":"ds-1"}}`, status)
	})

	mux.HandleFunc("/datasets/ds-1/items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("clean"))
		fmt.Fprint(w, f.items)
	})

	return mux
}

func newTestClient(t *testing.T, fake *fakeApify) *ApifyClient {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Apify: config.Apify{
			URL:             server.URL,
			Token:           "token-123",
			ProfileActor:    testActor,
			PollInterval:    time.Millisecond,
			MaxPollAttempts: 5,
		},
	}

	return NewClient(cfg).(*ApifyClient)
}

func TestApifyClient_FetchAccount(t *testing.T) {
	tests := []struct {
		name     string
		fake     *fakeApify
		wantErr  error
		validate func(t *testing.T, fake *fakeApify, account map[string]any, err error)
	}{
		{
			name: "run concluído devolve o primeiro item",
			fake: &fakeApify{
				pendingPolls: 2,
				finalStatus:  "SUCCEEDED",
				items:        `[{"username":"nike","followersCount":1000,"latestPosts":[]}]`,
			},
			validate: func(t *testing.T, fake *fakeApify, account map[string]any, err error) {
				require.NoError(t, err)
				assert.Equal(t, "nike", account["username"])
				assert.EqualValues(t, 1000, account["followersCount"])
				assert.Equal(t, int32(3), fake.polls.Load())

				input := fake.lastInput.Load().(map[string]any)
				assert.Equal(t, []any{"nike"}, input["usernames"])
				assert.Equal(t, "details", input["resultsType"])
			},
		},
		{
			name:    "429 com Retry-After",
			fake:    &fakeApify{startStatus: http.StatusTooManyRequests, retryAfter: "30"},
			wantErr: domain.ErrRateLimited,
			validate: func(t *testing.T, fake *fakeApify, account map[string]any, err error) {
				var rateLimitErr *domain.RateLimitError
				require.True(t, errors.As(err, &rateLimitErr))
				assert.Equal(t, 30*time.Second, rateLimitErr.RetryAfter)
				assert.Equal(t, "too many runs", rateLimitErr.Message)
			},
		},
		{
			name:    "5xx vira indisponibilidade",
			fake:    &fakeApify{startStatus: http.StatusBadGateway},
			wantErr: domain.ErrUpstreamUnavailable,
		},
		{
			name:    "run com falha",
			fake:    &fakeApify{finalStatus: "FAILED"},
			wantErr: domain.ErrUpstreamUnavailable,
		},
		{
			name:    "run que não termina dentro do limite de polls",
			fake:    &fakeApify{pendingPolls: 100, finalStatus: "SUCCEEDED"},
			wantErr: domain.ErrUpstreamUnavailable,
			validate: func(t *testing.T, fake *fakeApify, account map[string]any, err error) {
				assert.Equal(t, int32(5), fake.polls.Load())
			},
		},
		{
			name:    "dataset vazio",
			fake:    &fakeApify{finalStatus: "SUCCEEDED", items: `[]`},
			wantErr: domain.ErrEntityNotFound,
		},
		{
			name:    "dataset inválido",
			fake:    &fakeApify{finalStatus: "SUCCEEDED", items: `{"not":"a list"`},
			wantErr: domain.ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.fake)

			account, err := client.FetchAccount(context.Background(), "nike")

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, account)
			}
			if tt.validate != nil {
				tt.validate(t, tt.fake, account, err)
			}
		})
	}
}

func TestApifyClient_FetchRecentPosts(t *testing.T) {
	fake := &fakeApify{
		finalStatus: "SUCCEEDED",
		items:       `[{"likesCount":1},{"likesCount":2},{"likesCount":3},{"likesCount":4}]`,
	}
	client := newTestClient(t, fake)

	posts, err := client.FetchRecentPosts(context.Background(), "nike", 3)

	require.NoError(t, err)
	assert.Len(t, posts, 3)

	input := fake.lastInput.Load().(map[string]any)
	assert.Equal(t, "posts", input["resultsType"])
	assert.EqualValues(t, 3, input["resultsLimit"])
}

func TestApifyClient_ContextDeadline(t *testing.T) {
	client := newTestClient(t, &fakeApify{pendingPolls: 1000, finalStatus: "SUCCEEDED"})
	client.cfg.MaxPollAttempts = 1000
	client.cfg.PollInterval = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchAccount(ctx, "nike")

	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 120*time.Second, parseRetryAfter("120", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-3", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("amanhã", now))
	assert.Equal(t, 90*time.Second, parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now))
}
