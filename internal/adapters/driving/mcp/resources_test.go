package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/core/domain"
)

func TestExtractBlockLabel(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid uri", uri: "revisify://blocks/theory", expected: "theory"},
		{name: "wrong scheme", uri: "other://blocks/theory", expected: ""},
		{name: "wrong path", uri: "revisify://draft", expected: ""},
		{name: "empty label", uri: "revisify://blocks/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractBlockLabel(tt.uri))
		})
	}
}

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleDraftResources(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, "# Draft")

	result, err := srv.handleDraftResource(ctx, makeReadResourceRequest("revisify://draft"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "revisify://draft", result.Contents[0].URI)
	assert.Equal(t, "text/markdown", result.Contents[0].MIMEType)
	assert.Equal(t, "# Draft", result.Contents[0].Text)

	result, err = srv.handleDraftPreviewResource(ctx, makeReadResourceRequest("revisify://draft/html"))
	require.NoError(t, err)
	assert.Equal(t, "text/html", result.Contents[0].MIMEType)
	assert.Equal(t, "<p># Draft</p>", result.Contents[0].Text)
}

func TestServer_handleNoteResources(t *testing.T) {
	ctx := context.Background()

	t.Run("placeholder before publish", func(t *testing.T) {
		srv := newTestServer(t, "unpublished")

		result, err := srv.handleNoteResource(ctx, makeReadResourceRequest("revisify://note"))
		require.NoError(t, err)
		assert.Equal(t, domain.ViewerPlaceholder, result.Contents[0].Text)
	})

	t.Run("published note", func(t *testing.T) {
		srv := newTestServer(t, "published text")
		_, _, err := srv.handlePublish(ctx, nil, EmptyInput{})
		require.NoError(t, err)

		result, err := srv.handleNoteResource(ctx, makeReadResourceRequest("revisify://note"))
		require.NoError(t, err)
		assert.Equal(t, "published text", result.Contents[0].Text)

		result, err = srv.handleNoteHTMLResource(ctx, makeReadResourceRequest("revisify://note/html"))
		require.NoError(t, err)
		assert.Equal(t, "text/html", result.Contents[0].MIMEType)
		assert.Equal(t, "<p>published text</p>", result.Contents[0].Text)
	})

	t.Run("load error", func(t *testing.T) {
		srv := newTestServer(t, "")
		srv.ports.View = &mockViewService{err: errBoom}

		_, err := srv.handleNoteResource(ctx, makeReadResourceRequest("revisify://note"))
		assert.ErrorIs(t, err, errBoom)
	})
}

func TestServer_handleBlocksResource(t *testing.T) {
	srv := newTestServer(t, "")

	result, err := srv.handleBlocksResource(context.Background(), makeReadResourceRequest("revisify://blocks"))
	require.NoError(t, err)

	var labels []string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &labels))
	assert.Equal(t, []string{"definition", "theory", "note", "formula", "warning"}, labels)
}

func TestServer_handleBlockResource(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, "")

	t.Run("known label", func(t *testing.T) {
		result, err := srv.handleBlockResource(ctx, makeReadResourceRequest("revisify://blocks/warning"))
		require.NoError(t, err)
		assert.Equal(t, domain.EmptyBlock(domain.BlockWarning), result.Contents[0].Text)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := srv.handleBlockResource(ctx, makeReadResourceRequest("revisify://blocks/banner"))
		assert.Error(t, err)
	})
}
