package apify

import (
	"fmt"
	"sort"
	"time"

	apifydomain "github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/mitchellh/mapstructure"
)

// ExtractSnapshot converte os payloads crus do scraper em um MetricSnapshot.
// handle deve estar normalizado. Não faz I/O nem log.
func ExtractSnapshot(handle string, account map[string]any, posts []map[string]any, fetchedAt time.Time) (*domain.MetricSnapshot, error) {
	if len(account) == 0 {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, "empty account payload")
	}

	var profile apifydomain.Profile
	if err := weakDecode(account, &profile); err != nil {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, fmt.Sprintf("decode account: %v", err))
	}

	if profile.FollowersCount == nil {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, "followersCount missing")
	}

	if *profile.FollowersCount < 0 {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, fmt.Sprintf("negative followersCount %d", *profile.FollowersCount))
	}

	if err := checkOwner(handle, profile.Username); err != nil {
		return nil, err
	}

	items := make([]apifydomain.PostItem, 0, len(posts))
	for i, raw := range posts {
		var item apifydomain.PostItem
		if err := weakDecode(raw, &item); err != nil {
			return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, fmt.Sprintf("decode post %d: %v", i, err))
		}

		if item.OwnerUsername != "" {
			if err := checkOwner(handle, item.OwnerUsername); err != nil {
				return nil, err
			}
		}

		items = append(items, item)
	}

	sortMostRecentFirst(items)

	recent := make([]domain.PostMetrics, domain.MaxRecentPosts)
	for i := 0; i < len(items) && i < domain.MaxRecentPosts; i++ {
		recent[i] = domain.PostMetrics{
			Likes:    nonNegative(items[i].LikesCount),
			Comments: nonNegative(items[i].CommentsCount),
		}
	}

	return &domain.MetricSnapshot{
		EntityID:      handle,
		FollowerCount: *profile.FollowersCount,
		RecentPosts:   recent,
		FetchedAt:     fetchedAt.UTC(),
	}, nil
}

// LatestPosts lê os posts embutidos no item de perfil
func LatestPosts(handle string, account map[string]any) ([]map[string]any, error) {
	raw, ok := account[apifydomain.FieldLatestPosts]
	if !ok || raw == nil {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, "latestPosts is not a list")
	}

	posts := make([]map[string]any, 0, len(list))
	for i, item := range list {
		post, ok := item.(map[string]any)
		if !ok {
			return nil, domain.NewInsightError(domain.ErrMalformedPayload, handle, fmt.Sprintf("latestPosts[%d] is not an object", i))
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func checkOwner(handle, username string) error {
	owner, err := domain.NormalizeHandle(username)
	if err != nil || owner != handle {
		return domain.NewInsightError(domain.ErrMalformedPayload, handle, fmt.Sprintf("payload belongs to %q", username))
	}
	return nil
}

func weakDecode(input map[string]any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// Posts sem data válida vão para o fim, mantendo a ordem recebida entre si
func sortMostRecentFirst(items []apifydomain.PostItem) {
	keys := make([]time.Time, len(items))
	for i, item := range items {
		if t, err := time.Parse(time.RFC3339, item.Timestamp); err == nil {
			keys[i] = t
		}
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].After(keys[order[b]])
	})

	sorted := make([]apifydomain.PostItem, len(items))
	for i, idx := range order {
		sorted[i] = items[idx]
	}
	copy(items, sorted)
}

// O Instagram devolve -1 quando a contagem de curtidas está oculta
func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
