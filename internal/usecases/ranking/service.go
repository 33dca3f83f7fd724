package ranking

import (
	"sort"

	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_ranking.go -package=mocks

type RankingService interface {
	RankByEngagement(results map[string]domain.CompareResult) []domain.RankingItem
}

type EngagementRankingService struct{}

func NewEngagementRankingService() RankingService {
	return &EngagementRankingService{}
}

// RankByEngagement ordena as contas comparadas pela taxa de engajamento.
// Contas que falharam ficam de fora do ranking.
func (s *EngagementRankingService) RankByEngagement(results map[string]domain.CompareResult) []domain.RankingItem {
	ranking := make([]domain.RankingItem, 0, len(results))

	for entityID, result := range results {
		if result.Err != nil || result.Metrics == nil {
			continue
		}

		ranking = append(ranking, domain.RankingItem{
			EntityID:         entityID,
			EngagementRate:   result.Metrics.EngagementRate,
			FollowerCount:    result.Metrics.FollowerCount,
			FollowerGrowth:   result.Metrics.FollowerGrowth,
			EngagementGrowth: result.Metrics.EngagementGrowth,
			HasBaseline:      result.Metrics.HasBaseline,

			EngagementGrowthPercent: result.Metrics.EngagementGrowthPercent,
			AvgLikes:                result.Metrics.AvgLikes,
			AvgComments:             result.Metrics.AvgComments,
		})
	}

	updatePositions(ranking)

	return ranking
}

// Empates na taxa são decididos por seguidores e depois pelo handle
func updatePositions(ranking []domain.RankingItem) {
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].EngagementRate != ranking[j].EngagementRate {
			return ranking[i].EngagementRate > ranking[j].EngagementRate
		}
		if ranking[i].FollowerCount != ranking[j].FollowerCount {
			return ranking[i].FollowerCount > ranking[j].FollowerCount
		}
		return ranking[i].EntityID < ranking[j].EntityID
	})

	for i := range ranking {
		ranking[i].Position = i + 1
		ranking[i].EngagementRate = utils.RoundWithFourDecimalPlace(ranking[i].EngagementRate)
		ranking[i].EngagementGrowth = utils.RoundWithFourDecimalPlace(ranking[i].EngagementGrowth)
	}
}
