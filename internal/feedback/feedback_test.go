package feedback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/abhisek/edumentor/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_SuccessReturnsTextVerbatim(t *testing.T) {
	gen := llm.NewMockTextGenerator().Reply("Great job on functions!\n")
	r := NewRequester(gen)

	out := r.Request(context.Background(), "prompt")
	assert.Equal(t, Outcome{Text: "Great job on functions!\n", Source: SourceRemote}, out)

	calls := gen.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "prompt", calls[0].Prompt)
	assert.Empty(t, calls[0].History, "feedback is requested with an empty history")
}

func TestRequest_FailureReturnsFallback(t *testing.T) {
	failures := []error{
		&llm.RemoteError{Err: &llm.ErrProviderUnavailable{}},
		&llm.RemoteError{Err: context.DeadlineExceeded},
		errors.New("connection reset"),
	}
	for _, failure := range failures {
		t.Run(failure.Error(), func(t *testing.T) {
			r := NewRequester(llm.NewMockTextGenerator().Fail(failure))
			out := r.Request(context.Background(), "prompt")
			assert.Equal(t, Fallback, out.Text)
			assert.Equal(t, SourceFallback, out.Source)
		})
	}
}

func TestRequest_NilGeneratorFallsBack(t *testing.T) {
	out := NewRequester(nil).Request(context.Background(), "prompt")
	assert.Equal(t, Outcome{Text: Fallback, Source: SourceFallback}, out)

	var r *Requester
	assert.Equal(t, Fallback, r.Request(context.Background(), "prompt").Text)
}

// purposeGenerator records the purpose label of each call.
type purposeGenerator struct{ purposes []string }

func (p *purposeGenerator) GenerateText(ctx context.Context, _ string, _ []llm.Message) (string, error) {
	p.purposes = append(p.purposes, llm.PurposeFrom(ctx))
	return "ok", nil
}

func TestRequest_LabelsPurpose(t *testing.T) {
	gen := &purposeGenerator{}
	NewRequester(gen).Request(context.Background(), "p")
	assert.Equal(t, []string{Purpose}, gen.purposes)
}

func TestRequest_CachesRemoteRepliesOnly(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	gen := llm.NewMockTextGenerator().
		Fail(errors.New("down")).
		Reply("Review quadratics.")
	r := NewRequester(gen, WithCache(cache))
	ctx := context.Background()

	first := r.Request(ctx, "p")
	assert.Equal(t, SourceFallback, first.Source)
	assert.Zero(t, cache.Len(), "fallbacks are never cached")

	second := r.Request(ctx, "p")
	assert.Equal(t, Outcome{Text: "Review quadratics.", Source: SourceRemote}, second)

	third := r.Request(ctx, "p")
	assert.Equal(t, Outcome{Text: "Review quadratics.", Source: SourceCache}, third)
	assert.Equal(t, 2, gen.CallCount())
}

// brokenCache fails every operation.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, string) error {
	return errors.New("cache down")
}

func TestRequest_CacheErrorsAreMisses(t *testing.T) {
	var warnings []string
	gen := llm.NewMockTextGenerator().Reply("fresh")
	r := NewRequester(gen, WithCache(brokenCache{}), WithWarnf(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}))

	out := r.Request(context.Background(), "p")
	assert.Equal(t, Outcome{Text: "fresh", Source: SourceRemote}, out)
	assert.Len(t, warnings, 2)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("a"), CacheKey("a"))
	assert.NotEqual(t, CacheKey("a"), CacheKey("b"))
	assert.Regexp(t, `^feedback:[0-9a-f]{64}$`, CacheKey("a"))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v"))
	text, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", text)

	now = now.Add(time.Minute)
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	assert.Equal(t, DefaultTTL, NewMemoryCache(0).ttl)
}

func TestRedisCache_UnreachableServerErrors(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	_, ok, err := c.Get(ctx, "feedback:x")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "feedback:x", "v"))

	// The requester treats the failing cache as a miss.
	gen := llm.NewMockTextGenerator().Reply("fresh")
	r := NewRequester(gen, WithCache(c), WithWarnf(func(string, ...any) {}))
	assert.Equal(t, SourceRemote, r.Request(ctx, "p").Source)
}

// TestRedisCache_RoundTrip needs a live server, e.g.
// EDUMENTOR_TEST_REDIS=localhost:6379.
func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("EDUMENTOR_TEST_REDIS")
	if addr == "" {
		t.Skip("EDUMENTOR_TEST_REDIS not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	c := NewRedisCacheFromClient(client, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Ping(ctx))

	prompt := fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())
	key := CacheKey(prompt)
	t.Cleanup(func() { client.Del(context.Background(), key) })

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err, "a missing key is a miss, not an error")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, "Review the chain rule."))
	text, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Review the chain rule.", text)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	gen := llm.NewMockTextGenerator().Reply("unused")
	r := NewRequester(gen, WithCache(c))
	assert.Equal(t, Outcome{Text: "Review the chain rule.", Source: SourceCache}, r.Request(ctx, prompt))
	assert.Zero(t, gen.CallCount())
}
