package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postListKeyPrefix = "posts:list:%s"
	postListIndexKey  = "posts:list:index"
)

// PostListTTL bounds staleness of cached listings between invalidations.
const PostListTTL = 5 * time.Minute

// PostListKey identifies one cached listing page by its query fingerprint.
func PostListKey(fingerprint string) string {
	return fmt.Sprintf(postListKeyPrefix, fingerprint)
}

// RememberPostListKey tracks a listing key so invalidation can drop every
// cached page at once.
func RememberPostListKey(ctx context.Context, key string) {
	if client != nil {
		client.SAdd(ctx, postListIndexKey, key)
	}
}

// Invalidate removes a single cache entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePostLists drops every cached listing page. Called on any post
// create, update or delete.
func InvalidatePostLists(ctx context.Context) {
	if client == nil {
		return
	}
	keys, err := client.SMembers(ctx, postListIndexKey).Result()
	if err != nil {
		return
	}
	if len(keys) > 0 {
		client.Del(ctx, keys...)
	}
	client.Del(ctx, postListIndexKey)
}
