package apify

import (
	"context"

	"github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify/apifyclient"
	"github.com/Sai2035/Social-Media-Analytics/internal/config"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/jonboulle/clockwork"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_integrator.go -package=mocks

// SnapshotFetcher busca uma conta no upstream e devolve o snapshot validado
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, handle string) (*domain.MetricSnapshot, error)
}

type ApifyIntegrator struct {
	cfg    *config.Config
	Client apifyclient.Client
	clock  clockwork.Clock
}

func New(cfg *config.Config, client apifyclient.Client, clock clockwork.Clock) *ApifyIntegrator {
	return &ApifyIntegrator{
		cfg:    cfg,
		Client: client,
		clock:  clock,
	}
}

// FetchSnapshot usa os posts embutidos no perfil e só roda o scraper de posts
// quando o perfil traz menos posts do que a conta publicou.
func (s *ApifyIntegrator) FetchSnapshot(ctx context.Context, handle string) (*domain.MetricSnapshot, error) {
	logger := log.ForContext(ctx).WithField("entity_id", handle)

	account, err := s.Client.FetchAccount(ctx, handle)
	if err != nil {
		logger.WithError(err).Warn("apify: failed to fetch account")
		return nil, err
	}

	posts, err := LatestPosts(handle, account)
	if err != nil {
		return nil, err
	}

	if len(posts) < domain.MaxRecentPosts && publishedPosts(account) > int64(len(posts)) {
		posts, err = s.Client.FetchRecentPosts(ctx, handle, domain.MaxRecentPosts)
		if err != nil {
			logger.WithError(err).Warn("apify: failed to fetch recent posts")
			return nil, err
		}
	}

	snapshot, err := ExtractSnapshot(handle, account, posts, s.clock.Now())
	if err != nil {
		logger.WithError(err).Error("apify: rejected upstream payload")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"entity_followers": snapshot.FollowerCount,
		"entity_posts":     len(posts),
	}).Debug("apify: snapshot extracted")

	return snapshot, nil
}

func publishedPosts(account map[string]any) int64 {
	switch v := account["postsCount"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
