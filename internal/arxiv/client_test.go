package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperdash/content-service/internal/domain"
)

// newTestClient creates a client configured for testing with the given server URL.
func newTestClient(serverURL string) *Client {
	cfg := Config{
		BaseURL:    serverURL,
		Timeout:    5 * time.Second,
		RateLimit:  100, // High rate for testing
		BurstSize:  100,
		MaxResults: 25,
	}

	httpClient := NewHTTPClient(HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "TestClient/1.0",
	})

	return NewWithHTTPClient(cfg, httpClient)
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <totalResults xmlns="http://a9.com/-/spec/opensearch/1.1/">2</totalResults>
  <entry>
    <id>http://arxiv.org/abs/1706.03762v7</id>
    <title>Attention Is All You Need</title>
    <summary>
      The dominant sequence transduction models are based on complex
      recurrent or convolutional neural networks.
    </summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1512.03385v1</id>
    <title>Deep Residual Learning for Image Recognition</title>
    <summary>Deeper neural networks are more difficult to train.</summary>
    <published>2015-12-10T18:40:12Z</published>
  </entry>
</feed>`

func TestSearchParsesFeed(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	papers, err := client.Search(context.Background(), "attention transformers", 6)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	assert.Equal(t, []string{"all:attention transformers"}, gotQuery["search_query"])
	assert.Equal(t, []string{"0"}, gotQuery["start"])
	assert.Equal(t, []string{"6"}, gotQuery["max_results"])
	assert.Equal(t, []string{"submittedDate"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"descending"}, gotQuery["sortOrder"])

	first := papers[0]
	assert.Equal(t, "arxiv-1706.03762", first.ID)
	assert.Equal(t, "Attention Is All You Need", first.Title)
	assert.Equal(t,
		"The dominant sequence transduction models are based on complex recurrent or convolutional neural networks.",
		first.Summary)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, first.Authors)
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v7", first.Link)
	assert.Equal(t, "2017-06-12T17:57:34Z", first.Published)
	assert.False(t, first.HasFullText)
}

func TestSearchSubstitutesUnknownAuthor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	papers, err := client.Search(context.Background(), "resnet", 6)
	require.NoError(t, err)
	require.Len(t, papers, 2)

	// Second entry has no author elements at all.
	assert.Equal(t, []string{domain.UnknownAuthor}, papers[1].Authors)
}

func TestSearchSkipsEntriesMissingRequiredFields(t *testing.T) {
	const feed = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1406.2661v1</id>
    <title>Generative Adversarial Networks</title>
    <published>2014-06-10T19:55:15Z</published>
  </entry>
  <entry>
    <title>No link on this one</title>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/9999.00001v1</id>
  </entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	papers, err := client.Search(context.Background(), "gan", 6)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, "Generative Adversarial Networks", papers[0].Title)
}

func TestSearchTruncatesOverReturnedResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	papers, err := client.Search(context.Background(), "neural", 1)
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestSearchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "anything", 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestSearchMalformedFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("this is not XML"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "anything", 6)
	require.Error(t, err)
}

func TestHTTPClientSetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), "x", 6)
	require.NoError(t, err)
	assert.Equal(t, "TestClient/1.0", gotUA)
}
