package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/gitroast/service/agent"
)

func TestClient_Generate(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_ = json.NewEncoder(w).Encode(chatResponse{
			Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: "observed: mostly forks"}}},
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("test-key"), WithModel("test-model"))
	resp, err := client.Generate(context.Background(), &Request{
		Agent:        agent.Analyst(),
		Instructions: "Analyze {username}.",
		Fields:       map[string]string{"username": "octocat"},
	})
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "observed: mostly forks", resp.Content)
	assert.Equal(t, "test-model", captured.Model)
	if assert.Equal(t, 2, len(captured.Messages)) {
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Contains(t, captured.Messages[0].Content, "GitHub Data Analyst")
		assert.Equal(t, "Analyze octocat.", captured.Messages[1].Content)
	}
}

func TestClient_GenerateFailures(t *testing.T) {
	testCases := []struct {
		description string
		status      int
		body        string
	}{
		{description: "server error", status: http.StatusInternalServerError, body: "overloaded"},
		{description: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{description: "blank completion", status: http.StatusOK, body: `{"choices":[{"message":{"role":"assistant","content":"  "}}]}`},
	}
	for _, testCase := range testCases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(testCase.status)
			_, _ = w.Write([]byte(testCase.body))
		}))
		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Generate(context.Background(), &Request{Agent: agent.Comedian(), Instructions: "roast"})
		assert.True(t, errors.Is(err, ErrGeneration), testCase.description)
		server.Close()
	}
}

func TestRequest_Prompt(t *testing.T) {
	request := &Request{
		Instructions: "Date {date}, user {username}, keep {unknown}",
		Fields:       map[string]string{"date": "2025-01-02", "username": "octocat"},
	}
	assert.Equal(t, "Date 2025-01-02, user octocat, keep {unknown}", request.Prompt())
}
