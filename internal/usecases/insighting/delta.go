package insighting

import (
	"math"
	"time"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/utils"
)

// EngagementRate soma likes e comentários dos posts recentes e divide pelos seguidores.
// Contas sem seguidores dividem por 1.
func EngagementRate(snapshot *domain.MetricSnapshot) float64 {
	if snapshot == nil {
		return 0
	}

	return float64(interactions(snapshot)) / float64(followersFloor(snapshot))
}

// AvgEngagementPercent é a média do engajamento por post em %, cada post limitado a 100%
func AvgEngagementPercent(snapshot *domain.MetricSnapshot) float64 {
	if snapshot == nil || len(snapshot.RecentPosts) == 0 {
		return 0
	}

	posts := snapshot.RecentPosts
	if len(posts) > domain.MaxRecentPosts {
		posts = posts[:domain.MaxRecentPosts]
	}

	followers := float64(followersFloor(snapshot))

	var total float64
	for _, post := range posts {
		total += math.Min(float64(post.Interactions())/followers*100, 100)
	}

	return utils.RoundWithTwoDecimalPlace(total / float64(len(posts)))
}

// ComputeDelta compara o snapshot atual com o anterior. Sem anterior não há base de comparação
// e os crescimentos ficam zerados.
func ComputeDelta(current domain.MetricSnapshot, previous *domain.MetricSnapshot, now time.Time) domain.DerivedMetrics {
	rate := EngagementRate(&current)
	avgLikes, avgComments := AvgInteractions(&current)

	derived := domain.DerivedMetrics{
		EntityID:             current.EntityID,
		FollowerCount:        current.FollowerCount,
		EngagementRate:       rate,
		AvgEngagementPercent: AvgEngagementPercent(&current),
		AvgLikes:             avgLikes,
		AvgComments:          avgComments,
		ComputedAt:           now.UTC(),
	}

	if previous == nil {
		return derived
	}

	derived.HasBaseline = true
	derived.FollowerGrowth = current.FollowerCount - previous.FollowerCount
	derived.EngagementGrowth = rate - EngagementRate(previous)
	derived.EngagementGrowthPercent = GrowthPercent(EngagementRate(previous), rate)

	return derived
}

// GrowthPercent é a variação percentual entre duas taxas. Taxa anterior zerada não tem base e devolve 0.
func GrowthPercent(previousRate, currentRate float64) float64 {
	if previousRate == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace((currentRate - previousRate) / previousRate * 100)
}

// AvgInteractions devolve a média de curtidas e de comentários dos posts recentes
func AvgInteractions(snapshot *domain.MetricSnapshot) (float64, float64) {
	if snapshot == nil || len(snapshot.RecentPosts) == 0 {
		return 0, 0
	}

	posts := snapshot.RecentPosts
	if len(posts) > domain.MaxRecentPosts {
		posts = posts[:domain.MaxRecentPosts]
	}

	var likes, comments int64
	for _, post := range posts {
		likes += post.Likes
		comments += post.Comments
	}

	n := float64(len(posts))
	return utils.RoundWithTwoDecimalPlace(float64(likes) / n), utils.RoundWithTwoDecimalPlace(float64(comments) / n)
}

func interactions(snapshot *domain.MetricSnapshot) int64 {
	var total int64
	for i, post := range snapshot.RecentPosts {
		if i >= domain.MaxRecentPosts {
			break
		}
		total += post.Interactions()
	}
	return total
}

func followersFloor(snapshot *domain.MetricSnapshot) int64 {
	if snapshot.FollowerCount < 1 {
		return 1
	}
	return snapshot.FollowerCount
}
