package common

// Local storage keys. Values are plain strings or JSON documents.
const (
	KeyAuthToken     = "auth_token"
	KeyAuthUser      = "user"
	KeyDarkMode      = "darkMode"
	KeyAccentColor   = "accentColor"
	KeySearchHistory = "searchHistory"

	likeKeyPrefix = "project_likes_"
)

// LikeKey is the per-item flag key; present with value "true" when this
// client has liked the item.
func LikeKey(itemID string) string {
	return likeKeyPrefix + itemID
}

// Outbound headers.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)

// MaxCommentLength is counted in characters, not bytes.
const MaxCommentLength = 500
