package cache

import (
	"slices"
	"sync"

	"github.com/movietalk/feed-client/domain"
)

// feedCache keeps one page-load worth of posts and comment counts.
// Every mutation patches a single post under the lock.
type feedCache struct {
	mu     sync.RWMutex
	order  []string
	posts  map[string]domain.Post
	counts map[string]int
	revs   map[string]uint64 // local increments per post
}

var _ domain.FeedCache = (*feedCache)(nil)

func NewFeedCache() *feedCache {
	return &feedCache{
		posts:  make(map[string]domain.Post),
		counts: make(map[string]int),
		revs:   make(map[string]uint64),
	}
}

func (c *feedCache) Replace(posts []domain.Post) {
	order := make([]string, 0, len(posts))
	next := make(map[string]domain.Post, len(posts))
	for _, p := range posts {
		if _, dup := next[p.ID]; dup || p.ID == "" {
			continue
		}
		p = p.Clone()
		p.Likes = domain.DedupeLikes(p.Likes)
		next[p.ID] = p
		order = append(order, p.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = order
	c.posts = next
	for id := range c.counts {
		if _, ok := next[id]; !ok {
			delete(c.counts, id)
			delete(c.revs, id)
		}
	}
}

func (c *feedCache) Prepend(p domain.Post) {
	if p.ID == "" {
		return
	}
	p = p.Clone()
	p.Likes = domain.DedupeLikes(p.Likes)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.posts[p.ID]; ok {
		c.posts[p.ID] = p
		return
	}
	c.posts[p.ID] = p
	c.order = slices.Insert(c.order, 0, p.ID)
	c.counts[p.ID] = 0
}

func (c *feedCache) Post(id string) (domain.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	return p.Clone(), true
}

func (c *feedCache) Posts() []domain.Post {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]domain.Post, 0, len(c.order))
	for _, id := range c.order {
		res = append(res, c.posts[id].Clone())
	}
	return res
}

func (c *feedCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *feedCache) PatchLikes(id string, fn func(likes []string) []string) (domain.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.posts[id]
	if !ok {
		return domain.Post{}, false
	}
	p.Likes = domain.DedupeLikes(fn(slices.Clone(p.Likes)))
	c.posts[id] = p
	return p.Clone(), true
}

func (c *feedCache) CommentCount(id string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.counts[id]
	return n, ok
}

func (c *feedCache) IncrCommentCount(id string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.posts[id]; !ok {
		return 0, false
	}
	c.counts[id]++
	c.revs[id]++
	return c.counts[id], true
}

func (c *feedCache) CountRevisions(ids []string) map[string]uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make(map[string]uint64, len(ids))
	for _, id := range ids {
		res[id] = c.revs[id]
	}
	return res
}

func (c *feedCache) MergeCommentCounts(counts map[string]int, revs map[string]uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, n := range counts {
		if _, ok := c.posts[id]; !ok {
			continue
		}
		if rev, seen := revs[id]; seen && c.revs[id] > rev {
			// comments posted while the count was being fetched
			n += int(c.revs[id] - rev)
		}
		c.counts[id] = n
	}
}
