package pipeline

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/repo-tools/internal/config"
	"github.com/ahmednasr/repo-tools/internal/models"
)

func testConfig(githubURL, llmURL string) config.Config {
	return config.Config{
		GitHubAPIURL:     githubURL,
		GitHubTimeout:    5 * time.Second,
		DefaultRepoOwner: "octo",
		DefaultRepoName:  "demo",
		LLMProvider:      config.ProviderOpenAI,
		LLMBaseURL:       llmURL + "/v1",
		LLMModel:         "local-model",
		LLMTimeout:       5 * time.Second,
		LLMPingTimeout:   time.Second,
	}
}

func newGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	readme := base64.StdEncoding.EncodeToString([]byte("# Demo\n\n## Features\n- fast\n- small\n"))

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/demo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"full_name":"octo/demo","stargazers_count":7,"description":"tiny"}`))
	})
	mux.HandleFunc("/repos/octo/demo/readme", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":"` + readme + `"}`))
	})
	mux.HandleFunc("/repos/octo/demo/contents", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/search/code", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_count":0,"items":[]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_ModelAnswers(t *testing.T) {
	gh := newGitHub(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"It is fast and small."}}]}`))
	})
	llm := httptest.NewServer(mux)
	t.Cleanup(llm.Close)

	p, err := New(testConfig(gh.URL, llm.URL), nil)
	require.NoError(t, err)
	assert.Len(t, p.Catalog, 4)
	assert.NoError(t, p.Completion.Ping(context.Background()))

	answer, err := p.Ask.Ask(context.Background(), models.ToolRequest{Query: "What features does it have?"})
	require.NoError(t, err)
	assert.Equal(t, "It is fast and small.", answer)
}

func TestNew_FallsBackWithoutModel(t *testing.T) {
	gh := newGitHub(t)
	llm := httptest.NewServer(http.NotFoundHandler())
	llmURL := llm.URL
	llm.Close()

	p, err := New(testConfig(gh.URL, llmURL), nil)
	require.NoError(t, err)
	assert.Error(t, p.Completion.Ping(context.Background()))

	answer, err := p.Ask.Ask(context.Background(), models.ToolRequest{Query: "What features does it have?"})
	require.NoError(t, err)
	assert.Contains(t, answer, "## Features\n- fast\n- small")
	assert.Contains(t, answer, "octo/demo")
	assert.Contains(t, answer, "7")
}

func TestNew_InvalidGitHubURL(t *testing.T) {
	_, err := New(testConfig("://bad", "http://localhost"), nil)
	assert.Error(t, err)
}
