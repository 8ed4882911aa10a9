package transport

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatSendsRequestAndDecodesAnswer(t *testing.T) {
	var got ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"You get 12 days...","source_documents":[{"question":"Leave?","content":"12 days"}]}`))
	}))
	defer srv.Close()

	c := New(zap.NewNop(), srv.URL, time.Second)
	resp, err := c.Chat(context.Background(), ChatRequest{Message: "What is the leave policy?", Language: "vi", SessionID: "s1"})
	require.NoError(t, err)

	assert.Equal(t, ChatRequest{Message: "What is the leave policy?", Language: "vi", SessionID: "s1"}, got)
	assert.Equal(t, "You get 12 days...", resp.Answer)
	require.Len(t, resp.SourceDocuments, 1)
	assert.Equal(t, Source{Question: "Leave?", Content: "12 days"}, resp.SourceDocuments[0])
}

func TestChatDecodesGzipBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(`{"answer":"compressed"}`))
		_ = gz.Close()
	}))
	defer srv.Close()

	resp, err := New(nil, srv.URL, time.Second).Chat(context.Background(), ChatRequest{Message: "hi", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "compressed", resp.Answer)
}

func TestChatSurfacesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Message cannot be empty"}`))
	}))
	defer srv.Close()

	_, err := New(nil, srv.URL, time.Second).Chat(context.Background(), ChatRequest{Language: "en"})
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusBadRequest, terr.Status)
	assert.Equal(t, "Message cannot be empty", err.Error())
}

func TestChatStatusWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(nil, srv.URL, time.Second).Chat(context.Background(), ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestChatTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(nil, srv.URL, 20*time.Millisecond).Chat(context.Background(), ChatRequest{Message: "hi"})
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Zero(t, terr.Status)
	assert.NotNil(t, terr.Err)
}

func TestErrorDetailValidationList(t *testing.T) {
	got := errorDetail([]byte(`{"detail":[{"loc":["body","message"],"msg":"field required"}]}`))
	assert.Contains(t, got, "field required")

	assert.Empty(t, errorDetail([]byte(`not json`)))
	assert.Empty(t, errorDetail([]byte(`{}`)))
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"healthy","service":"Internal HR Assistant API","rag_ready":true}`))
	}))
	defer srv.Close()

	status, err := New(nil, srv.URL, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &HealthStatus{Status: "healthy", Service: "Internal HR Assistant API", RAGReady: true}, status)
}

func TestJobPositionsDecodesAndCaches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/api/job-positions", r.URL.Path)
		_, _ = w.Write([]byte(`{"positions":{
			"qa_engineer":{"name":"QA Engineer","name_vi":"Kỹ sư QA","description":"Testing","must_have_skills":["testing"],"nice_to_have_skills":["selenium"],"min_experience":"1+ years"},
			"java_developer":{"name":"Java Developer","name_vi":"Lập trình viên Java","description":"Backend","must_have_skills":["java","spring"],"nice_to_have_skills":[],"min_experience":"2+ years"}
		}}`))
	}))
	defer srv.Close()

	c := New(nil, srv.URL, time.Second)

	positions, err := c.JobPositions(context.Background())
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.Equal(t, "java_developer", positions[0].Key)
	assert.Equal(t, "Java Developer", positions[0].Name)
	assert.Equal(t, []string{"java", "spring"}, positions[0].MustHave)
	assert.Equal(t, "qa_engineer", positions[1].Key)
	assert.Equal(t, "Kỹ sư QA", positions[1].NameVI)
	assert.Equal(t, "1+ years", positions[1].MinExperience)

	_, err = c.JobPositions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
