package apifydomain

// Profile é o item do dataset do profile scraper, decodificado de forma fraca.
// FollowersCount é ponteiro para distinguir campo ausente de zero.
type Profile struct {
	Username       string `mapstructure:"username"`
	FullName       string `mapstructure:"fullName"`
	FollowersCount *int64 `mapstructure:"followersCount"`
	FollowsCount   int64  `mapstructure:"followsCount"`
	PostsCount     int64  `mapstructure:"postsCount"`
}

// PostItem é um post do Instagram como devolvido pelo scraper
type PostItem struct {
	ID            string `mapstructure:"id"`
	ShortCode     string `mapstructure:"shortCode"`
	OwnerUsername string `mapstructure:"ownerUsername"`
	LikesCount    int64  `mapstructure:"likesCount"`
	CommentsCount int64  `mapstructure:"commentsCount"`
	Timestamp     string `mapstructure:"timestamp"`
}

// Chaves do item de perfil usadas fora do decode
const (
	FieldLatestPosts = "latestPosts"
)
