package attendant

import (
	"context"
	"time"

	"bistro-attendant/internal/catalog"
	"bistro-attendant/internal/common/logger"
	"bistro-attendant/internal/common/metrics"
	"bistro-attendant/internal/models"
)

// Service orchestrates one chat turn: snapshot, cache, classify, compose,
// humanize. Classification and humanization failures degrade gracefully;
// only a missing catalog snapshot is a hard error.
type Service struct {
	store      *catalog.Store
	classifier *Classifier
	composer   *Composer
	humanizer  *Humanizer
	cache      *AnswerCache
	location   *time.Location
	log        logger.Logger

	// now is swapped in tests to pin the reference instant.
	now func() time.Time
}

func NewService(store *catalog.Store, classifier *Classifier, composer *Composer,
	humanizer *Humanizer, cache *AnswerCache, location *time.Location, log logger.Logger) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		composer:   composer,
		humanizer:  humanizer,
		cache:      cache,
		location:   location,
		log:        log,
		now:        time.Now,
	}
}

// Answer produces the reply for one user prompt. The returned error is
// non-nil only when the catalog is not ready.
func (s *Service) Answer(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	snap, err := s.store.Snapshot()
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("catalog_not_ready").Inc()
		return "", err
	}

	now := s.now().In(s.location)

	if s.cache != nil {
		if answer, ok := s.cache.Get(ctx, prompt, now); ok {
			metrics.ChatRequestsTotal.WithLabelValues("cache_hit").Inc()
			return answer, nil
		}
	}

	intent, err := s.classifier.Classify(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Warn("classification failed, using general overview", map[string]interface{}{
			"prompt_len": len(prompt),
		})
		metrics.ClassificationFallbacksTotal.Inc()
		intent = models.ClassifiedIntent{GeneralOverview: true}
	}

	draft := s.composer.Compose(snap, intent, now)
	answer := s.humanizer.Humanize(ctx, draft)

	// Answers about the current moment go stale at the next service
	// boundary, so they are never cached.
	if s.cache != nil && !refersToNow(intent) {
		s.cache.Set(ctx, prompt, now, answer)
	}

	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
	metrics.ChatRequestDuration.Observe(time.Since(start).Seconds())
	return answer, nil
}

// Ready reports whether the service can answer, which only requires a
// warmed catalog snapshot.
func (s *Service) Ready() bool {
	return s.store.Ready()
}
