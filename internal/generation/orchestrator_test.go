package generation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"ArticleForge/internal/domain"
	"ArticleForge/internal/ports"
)

type scriptedChat struct {
	calls     int
	responses []string
	errs      []error
}

func (s *scriptedChat) Chat(_ context.Context, _ []ports.ChatMessage, _ ports.ChatOptions) (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return "", s.errs[idx]
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("script exhausted")
}

func testTopic() domain.ScoredTopic {
	return domain.ScoredTopic{
		SearchResult: domain.SearchResult{
			Title: "Loyalty Programs That Work",
			URL:   "https://example.com/loyalty",
			Text:  "reference material",
		},
		SuggestedCategory: "Marketing",
	}
}

func goodResponse() string {
	return `{"title": "Loyalty Programs That Work", "summary": "s", "content": "` +
		strings.Repeat("word ", 1200) + `", "tags": ["loyalty"]}`
}

func newTestOrchestrator(chat ports.ChatService, cfg Config) (*Orchestrator, *[]time.Duration) {
	o := New(chat, cfg, slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
	waits := &[]time.Duration{}
	o.sleep = func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return o, waits
}

func TestGenerateSuccessFirstTry(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{responses: []string{goodResponse()}}
	o, waits := newTestOrchestrator(chat, DefaultConfig())

	article, err := o.Generate(context.Background(), testTopic(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article.Title != "Loyalty Programs That Work" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
	if chat.calls != 1 {
		t.Fatalf("expected 1 chat call, got %d", chat.calls)
	}
	if len(*waits) != 0 {
		t.Fatalf("no backoff expected on first-try success, got %v", *waits)
	}
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{
		errs:      []error{errors.New("boom"), errors.New("boom again"), nil},
		responses: []string{"", "", goodResponse()},
	}
	o, waits := newTestOrchestrator(chat, DefaultConfig())

	var retries []int
	onRetry := func(attempt int, wait time.Duration, err error) {
		retries = append(retries, attempt)
		if err == nil {
			t.Error("retry callback must carry the failure cause")
		}
	}

	article, err := o.Generate(context.Background(), testTopic(), nil, onRetry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article == nil {
		t.Fatal("expected an article")
	}
	if chat.calls != 3 {
		t.Fatalf("expected 3 chat calls, got %d", chat.calls)
	}
	if len(retries) != 2 {
		t.Fatalf("expected exactly 2 retry events, got %d", len(retries))
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*waits) != 2 || (*waits)[0] != want[0] || (*waits)[1] != want[1] {
		t.Fatalf("expected backoff %v, got %v", want, *waits)
	}
}

func TestGenerateRetryBound(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{
		errs: []error{errors.New("1"), errors.New("2"), errors.New("3"), errors.New("4")},
	}
	cfg := DefaultConfig()
	o, _ := newTestOrchestrator(chat, cfg)

	_, err := o.Generate(context.Background(), testTopic(), nil, nil)
	if err == nil {
		t.Fatal("expected failure after exhausting retries")
	}
	if chat.calls != cfg.MaxRetries+1 {
		t.Fatalf("expected at most %d chat calls, got %d", cfg.MaxRetries+1, chat.calls)
	}

	genErr := domain.AsGenerationError(err)
	if genErr.Code != domain.ErrContentGenerationFailed {
		t.Fatalf("expected CONTENT_GENERATION_FAILED, got %s", genErr.Code)
	}
	if !strings.Contains(genErr.Error(), "3") {
		t.Fatalf("aggregated error must carry the last cause, got %q", genErr.Error())
	}
	if len(genErr.Suggestions) == 0 {
		t.Fatal("expected remediation suggestions")
	}
}

func TestGenerateBackoffCap(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxRetries = 5
	chat := &scriptedChat{errs: []error{
		errors.New("e"), errors.New("e"), errors.New("e"),
		errors.New("e"), errors.New("e"), errors.New("e"),
	}}
	o, waits := newTestOrchestrator(chat, cfg)

	_, err := o.Generate(context.Background(), testTopic(), nil, nil)
	if err == nil {
		t.Fatal("expected failure")
	}
	for _, w := range *waits {
		if w > cfg.BackoffCap {
			t.Fatalf("wait %v exceeds cap %v", w, cfg.BackoffCap)
		}
	}
	if last := (*waits)[len(*waits)-1]; last != cfg.BackoffCap {
		t.Fatalf("expected final wait at cap %v, got %v", cfg.BackoffCap, last)
	}
}

func TestGenerateMalformedThenUnrecoverable(t *testing.T) {
	t.Parallel()

	chat := &scriptedChat{responses: []string{"no json here", "still nothing", "nope"}}
	o, _ := newTestOrchestrator(chat, DefaultConfig())

	_, err := o.Generate(context.Background(), testTopic(), nil, nil)
	if err == nil {
		t.Fatal("expected failure when every response is unparseable")
	}
	if chat.calls != 3 {
		t.Fatalf("parse failures must consume attempts, got %d calls", chat.calls)
	}
}

func TestGenerateStopsOnUnauthorized(t *testing.T) {
	t.Parallel()

	authErr := domain.NewGenerationError(domain.ErrUnauthorized, "invalid API key", nil, "check API key")
	chat := &scriptedChat{errs: []error{authErr}}
	o, waits := newTestOrchestrator(chat, DefaultConfig())

	_, err := o.Generate(context.Background(), testTopic(), nil, nil)
	genErr := domain.AsGenerationError(err)
	if genErr == nil || genErr.Code != domain.ErrUnauthorized {
		t.Fatalf("expected UNAUTHORIZED surfaced unchanged, got %v", err)
	}
	if chat.calls != 1 {
		t.Fatalf("unauthorized must not be retried, got %d calls", chat.calls)
	}
	if len(*waits) != 0 {
		t.Fatalf("no backoff expected, got %v", *waits)
	}
}

func TestGenerateWordCountWarnsButSucceeds(t *testing.T) {
	t.Parallel()

	short := `{"title": "Short One", "summary": "s", "content": "` +
		strings.Repeat("word ", 50) + `"}`
	chat := &scriptedChat{responses: []string{short}}
	o, _ := newTestOrchestrator(chat, DefaultConfig())

	article, err := o.Generate(context.Background(), testTopic(), nil, nil)
	if err != nil {
		t.Fatalf("short content must warn, not fail: %v", err)
	}
	if article == nil || article.Title != "Short One" {
		t.Fatalf("unexpected article: %+v", article)
	}
}
