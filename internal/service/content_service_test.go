package service

import (
	"context"
	"errors"
	"testing"

	"aura-ops-be/internal/apperror"
	"aura-ops-be/internal/dto"
	"aura-ops-be/pkg/graph"
	"aura-ops-be/pkg/notice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	generateFn func(ctx context.Context, text string) ([]float32, error)
	calls      int
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.generateFn == nil {
		return []float32{0.1, 0.2, 0.3}, nil
	}
	return f.generateFn(ctx, text)
}

type fakeContentWriter struct {
	saveFn func(ctx context.Context, params graph.ContentParams) (string, error)
	got    *graph.ContentParams
}

func (f *fakeContentWriter) SaveContent(ctx context.Context, params graph.ContentParams) (string, error) {
	f.got = &params
	if f.saveFn == nil {
		return "content-123", nil
	}
	return f.saveFn(ctx, params)
}

func newTestContentService(embedder *fakeEmbedder, writer *fakeContentWriter) (IContentService, *recordingNotices) {
	notices := &recordingNotices{}
	return NewContentService(embedder, writer, notices, nopLogger{}), notices
}

func TestSaveContent(t *testing.T) {
	embedder := &fakeEmbedder{}
	writer := &fakeContentWriter{}
	svc, _ := newTestContentService(embedder, writer)

	response, err := svc.SaveContent(context.Background(), &dto.SaveContentRequest{
		Text:        "refreshing the instance list clears stale rows",
		Category:    "operations",
		Subcategory: "dashboard",
		Tags:        []string{"aura", "notes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "content-123", response.ContentID)

	require.NotNil(t, writer.got)
	assert.Equal(t, "operations", writer.got.Category)
	assert.Equal(t, []string{"aura", "notes"}, writer.got.Tags)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, writer.got.Embedding)
}

func TestSaveContentValidation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.SaveContentRequest
	}{
		{"blank text", dto.SaveContentRequest{Text: "   ", Category: "ops", Subcategory: "notes"}},
		{"missing category", dto.SaveContentRequest{Text: "hello", Subcategory: "notes"}},
		{"missing subcategory", dto.SaveContentRequest{Text: "hello", Category: "ops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := &fakeEmbedder{}
			svc, _ := newTestContentService(embedder, &fakeContentWriter{})

			_, err := svc.SaveContent(context.Background(), &tt.req)

			var validationErr *apperror.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Zero(t, embedder.calls, "validation must reject before the embedding call")
		})
	}
}

func TestSaveContentEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{
		generateFn: func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("model unavailable")
		},
	}
	writer := &fakeContentWriter{}
	svc, notices := newTestContentService(embedder, writer)

	_, err := svc.SaveContent(context.Background(), &dto.SaveContentRequest{
		Text: "hello", Category: "ops", Subcategory: "notes",
	})

	var upstreamErr *apperror.UpstreamRequestError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Nil(t, writer.got, "no graph write without an embedding")
	assert.NotEmpty(t, notices.byLevel(notice.LevelError))
}

func TestSaveContentGraphFailure(t *testing.T) {
	writer := &fakeContentWriter{
		saveFn: func(ctx context.Context, params graph.ContentParams) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	svc, notices := newTestContentService(&fakeEmbedder{}, writer)

	_, err := svc.SaveContent(context.Background(), &dto.SaveContentRequest{
		Text: "hello", Category: "ops", Subcategory: "notes",
	})

	var upstreamErr *apperror.UpstreamRequestError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Contains(t, upstreamErr.Detail, "connection refused")
	assert.NotEmpty(t, notices.byLevel(notice.LevelError))
}

func TestDedupeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"duplicates", []string{"a", "b", "a"}, []string{"a", "b"}},
		{"whitespace", []string{" a ", "", "  "}, []string{"a"}},
		{"order preserved", []string{"z", "a", "z", "m"}, []string{"z", "a", "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dedupeTags(tt.in))
		})
	}
}
