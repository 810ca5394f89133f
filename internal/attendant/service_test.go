package attendant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro-attendant/internal/catalog"
	stderrors "bistro-attendant/internal/common/errors"
	"bistro-attendant/internal/common/logger"
)

func newWarmStore(t *testing.T) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(seedLoader{}, logger.NewTestLogger(t))
	require.NoError(t, store.Warm(context.Background()))
	return store
}

// echoRewriter returns the draft untouched so assertions can target the
// compositor's output.
type echoRewriter struct{}

func (echoRewriter) Rewrite(_ context.Context, _ string, draft string) (string, error) {
	return draft, nil
}

func newTestService(t *testing.T, store *catalog.Store, extractor Extractor, cache *AnswerCache) *Service {
	t.Helper()
	log := logger.NewTestLogger(t)
	svc := NewService(
		store,
		NewClassifier(extractor, log),
		NewComposer(testReservationLink),
		NewHumanizer(echoRewriter{}, log),
		cache,
		time.UTC,
		log,
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestAnswer_HappyPath(t *testing.T) {
	extractor := &fakeExtractor{payload: json.RawMessage(`{
		"data_ou_periodo": "quarta",
		"periodo_generico": false,
		"informacao": "",
		"informacao_generica": false,
		"visao_geral": false,
		"periodo_referencial": false
	}`)}
	svc := newTestService(t, newWarmStore(t), extractor, nil)

	answer, err := svc.Answer(context.Background(), "que horas abre na quarta?")
	require.NoError(t, err)
	assert.Contains(t, answer, "das 12:00 às 16:00")
	assert.Contains(t, answer, "das 18:00 às 23:00")
}

func TestAnswer_ClassificationFailureFallsBackToOverview(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("model unavailable")}
	svc := newTestService(t, newWarmStore(t), extractor, nil)

	answer, err := svc.Answer(context.Background(), "????")
	require.NoError(t, err, "classification failure is not a request failure")
	assert.Contains(t, answer, "Nossos horários de funcionamento")
}

func TestAnswer_CatalogNotReady(t *testing.T) {
	store := catalog.NewStore(seedLoader{}, logger.NewTestLogger(t))
	svc := newTestService(t, store, &fakeExtractor{}, nil)

	_, err := svc.Answer(context.Background(), "oi")
	assert.ErrorIs(t, err, stderrors.ErrCatalogNotReady)
}

func TestAnswer_UsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewAnswerCache(client, time.Minute, logger.NewTestLogger(t))

	extractor := &fakeExtractor{payload: json.RawMessage(`{
		"data_ou_periodo": "",
		"periodo_generico": false,
		"informacao": "fondue",
		"informacao_generica": false,
		"visao_geral": false,
		"periodo_referencial": false
	}`)}
	svc := newTestService(t, newWarmStore(t), extractor, cache)

	first, err := svc.Answer(context.Background(), "tem fondue?")
	require.NoError(t, err)

	// Break the extractor; the cached answer must still come back.
	extractor.payload = nil
	extractor.err = errors.New("down")

	second, err := svc.Answer(context.Background(), "tem fondue?")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnswer_DoesNotCacheAnswersAboutNow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := NewAnswerCache(client, time.Minute, logger.NewTestLogger(t))

	extractor := &fakeExtractor{payload: json.RawMessage(`{
		"data_ou_periodo": "hoje",
		"periodo_generico": false,
		"informacao": "",
		"informacao_generica": false,
		"visao_geral": false,
		"periodo_referencial": true
	}`)}
	svc := newTestService(t, newWarmStore(t), extractor, cache)

	first, err := svc.Answer(context.Background(), "estão abertos agora?")
	require.NoError(t, err)
	assert.Contains(t, first, "Estamos abertos agora")

	// A second ask must recompute, not replay a stale open-now line.
	extractor.payload = json.RawMessage(`{
		"data_ou_periodo": "",
		"periodo_generico": false,
		"informacao": "",
		"informacao_generica": false,
		"visao_geral": true,
		"periodo_referencial": false
	}`)
	second, err := svc.Answer(context.Background(), "estão abertos agora?")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "Nossos horários de funcionamento")
}

func TestReady(t *testing.T) {
	store := catalog.NewStore(seedLoader{}, logger.NewTestLogger(t))
	svc := newTestService(t, store, &fakeExtractor{}, nil)
	assert.False(t, svc.Ready())

	require.NoError(t, store.Warm(context.Background()))
	assert.True(t, svc.Ready())
}
