package domain

import "time"

// MaxRecentPosts é a quantidade de posts recentes considerada no engajamento
const MaxRecentPosts = 3

// PostMetrics guarda as interações de um único post
type PostMetrics struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// Interactions retorna likes + comentários do post
func (p PostMetrics) Interactions() int64 {
	return p.Likes + p.Comments
}

// MetricSnapshot é a captura pontual de uma conta. RecentPosts vem do mais recente para o mais antigo.
type MetricSnapshot struct {
	EntityID      string        `json:"entity_id"`
	FollowerCount int64         `json:"follower_count"`
	RecentPosts   []PostMetrics `json:"recent_posts"`
	FetchedAt     time.Time     `json:"fetched_at"`
}

// Validate confere os invariantes do snapshot antes de persistir
func (s *MetricSnapshot) Validate() error {
	if s == nil {
		return ErrMalformedPayload
	}

	if s.EntityID == "" {
		return NewInsightError(ErrMalformedPayload, "", "snapshot sem entity_id")
	}

	if s.FollowerCount < 0 {
		return NewInsightError(ErrMalformedPayload, s.EntityID, "follower_count negativo")
	}

	if len(s.RecentPosts) > MaxRecentPosts {
		return NewInsightError(ErrMalformedPayload, s.EntityID, "mais de 3 posts recentes")
	}

	for _, p := range s.RecentPosts {
		if p.Likes < 0 || p.Comments < 0 {
			return NewInsightError(ErrMalformedPayload, s.EntityID, "interações negativas em post")
		}
	}

	return nil
}

// Clone devolve uma cópia independente do snapshot
func (s MetricSnapshot) Clone() MetricSnapshot {
	posts := make([]PostMetrics, len(s.RecentPosts))
	copy(posts, s.RecentPosts)
	s.RecentPosts = posts
	return s
}
