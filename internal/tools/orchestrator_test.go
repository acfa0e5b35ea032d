package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	gh "github.com/google/go-github/v74/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/repo-tools/internal/models"
)

type fakeFetcher struct {
	calls     []string
	query     string
	searchErr error
}

func (f *fakeFetcher) FetchMetadata(ctx context.Context, repo models.RepoRef) (json.RawMessage, error) {
	f.calls = append(f.calls, "metadata")
	return json.RawMessage(`{"full_name":"octo/demo","stargazers_count":42,"html_url":"https://github.com/octo/demo?a=1&b=<2>"}`), nil
}

func (f *fakeFetcher) FetchReadme(ctx context.Context, repo models.RepoRef) (string, error) {
	f.calls = append(f.calls, "readme")
	return "# Demo\n\n## Installation\nRun npm install\n", nil
}

func (f *fakeFetcher) SearchContents(ctx context.Context, repo models.RepoRef, query string) (json.RawMessage, error) {
	f.calls = append(f.calls, "search")
	f.query = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return json.RawMessage(`{"items":[]}`), nil
}

func (f *fakeFetcher) FetchStructure(ctx context.Context, repo models.RepoRef) ([]*gh.RepositoryContent, error) {
	f.calls = append(f.calls, "structure")
	return []*gh.RepositoryContent{{Name: gh.Ptr("README.md"), Type: gh.Ptr("file")}}, nil
}

func TestDefaultCatalog_Order(t *testing.T) {
	catalog := DefaultCatalog(&fakeFetcher{})

	assert.Equal(t, []string{
		models.ToolFetchMetadata,
		models.ToolFetchReadme,
		models.ToolSearchContents,
		models.ToolFetchStructure,
	}, catalog.Names())
}

func TestCatalog_Definitions(t *testing.T) {
	defs := DefaultCatalog(&fakeFetcher{}).Definitions()
	require.Len(t, defs, 4)

	search := defs[2]
	assert.Equal(t, models.ToolSearchContents, search.Name)
	assert.Equal(t, OutputJSON, search.Output)
	assert.True(t, search.ReadOnly)
	assert.Equal(t, []string{"owner", "repo", "query"}, search.InputSchema["required"])
	assert.Equal(t, OutputText, defs[1].Output)
}

func TestOrchestrator_Run(t *testing.T) {
	f := &fakeFetcher{}
	o := NewOrchestrator(DefaultCatalog(f))

	results, err := o.Run(context.Background(), models.RepoRef{Owner: "octo", Name: "demo"}, "how do stars work")
	require.NoError(t, err)

	assert.Equal(t, []string{"metadata", "readme", "search", "structure"}, f.calls)
	assert.Equal(t, "how do stars work", f.query)
	require.Len(t, results, 4)

	// JSON results are indented with a space after each colon.
	assert.Contains(t, results[0].Content, `"full_name": "octo/demo"`)
	assert.Contains(t, results[0].Content, `"stargazers_count": 42`)
	assert.Contains(t, results[0].Content, `a=1&b=<2>`)

	// Text results pass through untouched.
	assert.Equal(t, "# Demo\n\n## Installation\nRun npm install\n", results[1].Content)

	assert.Contains(t, results[3].Content, `"name": "README.md"`)
}

func TestOrchestrator_RunFailsWhole(t *testing.T) {
	f := &fakeFetcher{searchErr: context.DeadlineExceeded}
	o := NewOrchestrator(DefaultCatalog(f))

	results, err := o.Run(context.Background(), models.RepoRef{Owner: "octo", Name: "demo"}, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Contains(t, err.Error(), models.ToolSearchContents)
	assert.Nil(t, results)
	assert.Equal(t, []string{"metadata", "readme", "search"}, f.calls)
}

func TestSerialize(t *testing.T) {
	got, err := Serialize(OutputText, "plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)

	got, err = Serialize(OutputJSON, "quoted")
	require.NoError(t, err)
	assert.Equal(t, `"quoted"`, got)

	got, err = Serialize(OutputJSON, []string{})
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	got, err = Serialize(OutputJSON, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", got)

	_, err = Serialize(OutputJSON, func() {})
	assert.Error(t, err)
}
