package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"aula-quiz-client/internal/domain"
)

// CatalogSource fetches section and question content (the remote API).
type CatalogSource interface {
	GetSection(ctx context.Context, sectionID int) (domain.Section, error)
	GetQuestionsBySection(ctx context.Context, sectionID int) ([]domain.Question, error)
}

// CatalogCache caches section and question reads with a TTL so the take and
// results flows don't refetch the same material on every screen. Concurrent
// misses for the same key collapse into one upstream call.
type CatalogCache struct {
	source CatalogSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	sections  map[int]cachedSection
	questions map[int]cachedQuestions
}

type cachedSection struct {
	section   domain.Section
	expiresAt time.Time
}

type cachedQuestions struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewCatalogCache(source CatalogSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		source:    source,
		ttl:       ttl,
		clock:     time.Now,
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		sections:  make(map[int]cachedSection),
		questions: make(map[int]cachedQuestions),
	}
}

func (c *CatalogCache) GetSection(ctx context.Context, sectionID int) (domain.Section, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.sections[sectionID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.section, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("section:"+strconv.Itoa(sectionID), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.sections[sectionID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.section, nil
		}
		c.mu.RUnlock()

		section, err := c.source.GetSection(ctx, sectionID)
		if err != nil {
			return domain.Section{}, err
		}

		c.mu.Lock()
		c.sections[sectionID] = cachedSection{section: section, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return section, nil
	})
	if err != nil {
		return domain.Section{}, err
	}
	return result.(domain.Section), nil
}

func (c *CatalogCache) GetQuestionsBySection(ctx context.Context, sectionID int) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.questions[sectionID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.questions, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("questions:"+strconv.Itoa(sectionID), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.questions[sectionID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.questions, nil
		}
		c.mu.RUnlock()

		questions, err := c.source.GetQuestionsBySection(ctx, sectionID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.questions[sectionID] = cachedQuestions{questions: questions, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate drops cached entries for a section after authoring edits.
func (c *CatalogCache) Invalidate(sectionID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sections, sectionID)
	delete(c.questions, sectionID)
}

func (c *CatalogCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
