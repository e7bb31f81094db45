package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kreatiq/internal/event"
	"kreatiq/internal/fallback"
	"kreatiq/internal/model"
	"kreatiq/internal/repository"
	"kreatiq/pkg/llm"
)

func newContentFixture(t *testing.T, client llm.Client, exporter Exporter, opts ContentOptions) (ContentService, repository.ContentIdeaRepository, *recordingPublisher) {
	t.Helper()
	repo := repository.NewContentIdeaRepository(repository.NewMemoryStore())
	pub := &recordingPublisher{}
	if opts.Picker == nil {
		opts.Picker = fallback.FirstPicker
	}
	return NewContentService(repo, client, pub, exporter, opts), repo, pub
}

func TestGenerateContentIdeasRejectsMissingFields(t *testing.T) {
	repo := &countingIdeaRepo{ContentIdeaRepository: repository.NewContentIdeaRepository(repository.NewMemoryStore())}
	client := &fakeLLM{configured: true}
	svc := NewContentService(repo, client, nil, nil, ContentOptions{PreferExternal: true})

	for _, req := range []GenerationRequest{
		{Topic: "", ContentType: "social"},
		{Topic: "   ", ContentType: "social"},
		{Topic: "Yoga", ContentType: ""},
	} {
		ideas, err := svc.GenerateContentIdeas(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Nil(t, ideas)
	}
	assert.Zero(t, repo.creates)
	assert.Empty(t, client.calls)
}

func TestGenerateContentIdeasTemplatePath(t *testing.T) {
	svc, repo, pub := newContentFixture(t, &fakeLLM{}, nil, ContentOptions{})

	ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{
		Topic: "Healthy meal prep", ContentType: "social", Platform: "instagram",
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ideas), 2)

	ids := map[uint]bool{}
	for _, idea := range ideas {
		assert.Contains(t, idea.Content, "Healthy meal prep")
		assert.Equal(t, model.StatusDraft, idea.Status)
		assert.Equal(t, "social", idea.ContentType)
		require.NotNil(t, idea.Platform)
		assert.Equal(t, "instagram", *idea.Platform)
		ids[idea.ID] = true
	}
	assert.Len(t, ids, len(ideas))

	stored, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, len(ideas))
	assert.Equal(t, []string{event.ContentGenerated}, pub.types())
}

func TestGenerateContentIdeasWithoutPlatformStoresNil(t *testing.T) {
	svc, _, _ := newContentFixture(t, nil, nil, ContentOptions{})
	ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{Topic: "Yoga", ContentType: "blog"})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Nil(t, ideas[0].Platform)
}

func TestGenerateContentIdeasLLMPath(t *testing.T) {
	client := &fakeLLM{
		configured: true,
		reply: `{"ideas":[
			{"title":"Meal prep Sundays","description":"Batch cooking","content":"Cook once, eat all week","tags":["mealprep"]},
			{"title":"","description":"dropped","content":"no title"},
			{"title":"Budget bowls","description":"Cheap","content":"Rice, beans, greens"}
		]}`,
	}
	svc, _, _ := newContentFixture(t, client, nil, ContentOptions{
		PreferExternal: true,
		Generation:     llm.GenerationParams{Temperature: 0.8, MaxTokens: 2000},
	})

	ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{
		Topic: "Healthy meal prep", ContentType: "social", Tone: "casual", TargetAudience: "students",
	})
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "Meal prep Sundays", ideas[0].Title)
	assert.Equal(t, []string{"mealprep"}, ideas[0].Tags)
	assert.Equal(t, []string{}, ideas[1].Tags)

	require.Len(t, client.calls, 1)
	msgs := client.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[1].Content, "Topic: Healthy meal prep")
	assert.Contains(t, msgs[1].Content, "Platform: General")
	assert.Contains(t, msgs[1].Content, "Target Audience: students")
	require.Len(t, client.gens, 1)
	assert.True(t, client.gens[0].JSONObject)
	assert.InDelta(t, 0.8, client.gens[0].Temperature, 0.0001)
	assert.Equal(t, 2000, client.gens[0].MaxTokens)
}

func TestGenerateContentIdeasSkipsLLMWhenNotPreferred(t *testing.T) {
	client := &fakeLLM{configured: true, reply: `{"ideas":[]}`}
	svc, _, _ := newContentFixture(t, client, nil, ContentOptions{PreferExternal: false})

	ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{Topic: "Yoga", ContentType: "blog"})
	require.NoError(t, err)
	assert.Len(t, ideas, 1)
	assert.Empty(t, client.calls)
}

func TestGenerateContentIdeasFallsBackOnLLMFailure(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeLLM
	}{
		{"call error", &fakeLLM{configured: true, err: errors.New("quota exceeded")}},
		{"malformed json", &fakeLLM{configured: true, reply: "here are some ideas!"}},
		{"empty list", &fakeLLM{configured: true, reply: `{"ideas":[]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newContentFixture(t, tt.client, nil, ContentOptions{PreferExternal: true})
			ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{Topic: "Yoga", ContentType: "blog"})
			require.NoError(t, err)
			require.Len(t, ideas, 1)
			assert.Equal(t, "Yoga - Engaging blog Content", ideas[0].Title)
			assert.Len(t, tt.client.calls, 1)
		})
	}
}

func TestGenerateContentIdeasPartialPersistence(t *testing.T) {
	repo := &flakyIdeaRepo{
		ContentIdeaRepository: repository.NewContentIdeaRepository(repository.NewMemoryStore()),
		failOn:                map[int]bool{1: true},
	}
	svc := NewContentService(repo, nil, nil, nil, ContentOptions{Picker: fallback.FirstPicker})

	ideas, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{
		Topic: "Healthy meal prep", ContentType: "social", Platform: "instagram",
	})
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Healthy meal prep - Optimized for instagram", ideas[0].Title)
}

func TestGenerateContentIdeasFailsWhenNothingPersisted(t *testing.T) {
	repo := &flakyIdeaRepo{
		ContentIdeaRepository: repository.NewContentIdeaRepository(repository.NewMemoryStore()),
		failOn:                map[int]bool{1: true, 2: true},
	}
	pub := &recordingPublisher{}
	svc := NewContentService(repo, nil, pub, nil, ContentOptions{})

	_, err := svc.GenerateContentIdeas(context.Background(), GenerationRequest{
		Topic: "Healthy meal prep", ContentType: "social", Platform: "instagram",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, pub.types())
}

func TestContentIdeaCRUD(t *testing.T) {
	svc, _, pub := newContentFixture(t, nil, nil, ContentOptions{})
	ctx := context.Background()

	created, err := svc.CreateIdea(ctx, model.NewContentIdea{Title: "T", ContentType: "blog", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, created.Status)

	got, err := svc.GetIdea(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	status := model.StatusReady
	updated, err := svc.UpdateIdea(ctx, created.ID, model.ContentIdeaUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.StatusReady, updated.Status)
	assert.Equal(t, "T", updated.Title)

	require.NoError(t, svc.DeleteIdea(ctx, created.ID))
	_, err = svc.GetIdea(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteIdea(ctx, created.ID), ErrNotFound)
	_, err = svc.UpdateIdea(ctx, created.ID, model.ContentIdeaUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{event.ContentIdeaCreated, event.ContentIdeaUpdated, event.ContentIdeaDeleted}, pub.types())
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	repo := repository.NewContentIdeaRepository(repository.NewMemoryStore())
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewContentService(repo, nil, pub, nil, ContentOptions{})

	_, err := svc.CreateIdea(context.Background(), model.NewContentIdea{Title: "T", ContentType: "blog", Content: "c"})
	assert.NoError(t, err)
	assert.Len(t, pub.types(), 1)
}

func TestExportIdea(t *testing.T) {
	exporter := &fakeExporter{}
	svc, _, _ := newContentFixture(t, nil, exporter, ContentOptions{})
	ctx := context.Background()

	created, err := svc.CreateIdea(ctx, model.NewContentIdea{
		Title:       "Launch week",
		Description: "Five posts",
		ContentType: "social",
		Platform:    model.StringPtr("linkedin"),
		Content:     "Day 1: teaser",
		Tags:        []string{"launch", "b2b"},
	})
	require.NoError(t, err)

	url, err := svc.ExportIdea(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://minio.local/kreatiq/content-ideas/"))
	assert.Equal(t, "content-ideas/1.md", exporter.objectName)
	assert.Equal(t, "text/markdown; charset=utf-8", exporter.contentType)
	assert.True(t, strings.HasPrefix(exporter.body, "# Launch week\n\nFive posts\n"))
	assert.Contains(t, exporter.body, "- Platform: linkedin\n")
	assert.Contains(t, exporter.body, "- Tags: launch, b2b\n")
	assert.True(t, strings.HasSuffix(exporter.body, "Day 1: teaser\n"))

	_, err = svc.ExportIdea(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	exporter.err = errors.New("bucket gone")
	_, err = svc.ExportIdea(ctx, created.ID)
	assert.ErrorContains(t, err, "bucket gone")
}

func TestExportIdeaUnavailable(t *testing.T) {
	svc, _, _ := newContentFixture(t, nil, nil, ContentOptions{})
	_, err := svc.ExportIdea(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExportUnavailable)
}

func TestParseLLMIdeasStripsCodeFence(t *testing.T) {
	ideas, err := parseLLMIdeas("```json\n{\"ideas\":[{\"title\":\"a\",\"content\":\"b\",\"tags\":[\"x\"]}]}\n```")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "a", ideas[0].Title)
}
