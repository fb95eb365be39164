package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the default avatar for an email address.
// Size 200, PG rating, "mystery person" fallback.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
