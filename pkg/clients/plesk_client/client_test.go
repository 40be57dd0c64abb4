package plesk_client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arca-digital/complaints-book-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	ContentType string
	APIKey      string
	LegacyKey   string
	Body        string
}

func panelServer(t *testing.T, status int, response string, delay time.Duration) (*httptest.Server, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded.Method = r.Method
		recorded.ContentType = r.Header.Get("Content-Type")
		recorded.APIKey = r.Header.Get("X-API-Key")
		recorded.LegacyKey = r.Header.Get("KEY")
		recorded.Body = string(body)
		if delay > 0 {
			time.Sleep(delay)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, recorded
}

func newClient(url string) PleskClient {
	return NewPleskClient(config.Plesk{
		URL:       url,
		APIKey:    "secret-key",
		VerifyTLS: false,
		Timeout:   2 * time.Second,
	})
}

func TestCreateDomainAliasSuccess(t *testing.T) {
	response := `<?xml version="1.0"?><packet version="1.6.9.0"><site-alias><add><result><status>ok</status><id>12</id></result></add></site-alias></packet>`
	server, recorded := panelServer(t, http.StatusOK, response, 0)

	result := newClient(server.URL).CreateDomainAlias(context.Background(), "Platform.io.", "HTTPS://Shop.Example.com/")
	assert.True(t, result.OK)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, response, result.Body)
	assert.Empty(t, result.Error)

	assert.Equal(t, http.MethodPost, recorded.Method)
	assert.Equal(t, "text/xml", recorded.ContentType)
	assert.Equal(t, "secret-key", recorded.APIKey)
	assert.Equal(t, "secret-key", recorded.LegacyKey)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+
		`<packet version="1.6.9.0"><site-alias><add><site-name>platform.io</site-name><name>shop.example.com</name></add></site-alias></packet>`,
		recorded.Body)
}

func TestCreateDomainAliasPanelError(t *testing.T) {
	response := `<packet><site-alias><add-result><status>error</status><errcode>1013</errcode><errtext>Alias already exists</errtext></add-result></site-alias></packet>`
	server, _ := panelServer(t, http.StatusOK, response, 0)

	result := newClient(server.URL).CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.False(t, result.NetworkError)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "plesk_error: Alias already exists (code 1013)", result.Error)
	assert.Equal(t, SourceRegex, result.DetailSource)
}

func TestCreateDomainAliasHTMLError(t *testing.T) {
	server, _ := panelServer(t, http.StatusInternalServerError, "<html><body><h1>Internal Server Error</h1></body></html>", 0)

	result := newClient(server.URL).CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, "plesk_error: Internal Server Error", result.Error)
	assert.Equal(t, SourceSummary, result.DetailSource)
}

func TestCreateDomainAliasEmptyBody(t *testing.T) {
	server, _ := panelServer(t, http.StatusBadGateway, "", 0)

	result := newClient(server.URL).CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.Equal(t, "plesk_error", result.Error)
}

func TestCreateDomainAliasEscapesValues(t *testing.T) {
	server, recorded := panelServer(t, http.StatusOK, "<status>ok</status>", 0)

	result := newClient(server.URL).CreateDomainAlias(context.Background(), "a&b<c>.io", "shop.example.com")
	require.True(t, result.OK)
	assert.Contains(t, recorded.Body, "<site-name>a&amp;b&lt;c&gt;.io</site-name>")
}

func TestCreateDomainAliasNetworkError(t *testing.T) {
	server, _ := panelServer(t, http.StatusOK, "<status>ok</status>", 0)
	url := server.URL
	server.Close()

	result := newClient(url).CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.True(t, result.NetworkError)
	assert.Equal(t, 0, result.Status)
	assert.NotEmpty(t, result.Error)
	assert.NotContains(t, result.Error, "plesk_error")
}

func TestCreateDomainAliasTimeout(t *testing.T) {
	server, _ := panelServer(t, http.StatusOK, "<status>ok</status>", 500*time.Millisecond)
	client := NewPleskClient(config.Plesk{URL: server.URL, APIKey: "k", Timeout: 50 * time.Millisecond})

	result := client.CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.True(t, result.NetworkError)
	assert.Equal(t, 0, result.Status)
}

func TestCreateDomainAliasRejectsEmptyArguments(t *testing.T) {
	result := newClient("https://panel.invalid").CreateDomainAlias(context.Background(), "platform.io", " http:// ")
	assert.False(t, result.OK)
	assert.Equal(t, errArgumentsRequired.Error(), result.Error)
}

func TestMissingConfiguration(t *testing.T) {
	result := NewPleskClient(config.Plesk{}).CreateDomainAlias(context.Background(), "platform.io", "shop.example.com")
	assert.False(t, result.OK)
	assert.Equal(t, "configuration incomplete: missing plesk.url, plesk.api_key", result.Error)
}

func TestPing(t *testing.T) {
	response := `<packet><server><get><result><status>ok</status><gen_info><server_name>panel</server_name></gen_info></result></get></server></packet>`
	server, recorded := panelServer(t, http.StatusOK, response, 0)

	result := newClient(server.URL).Ping(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, response, result.Body)
	assert.Contains(t, recorded.Body, `<packet version="1.6.9.0"><server><get><gen_info></gen_info></get></server></packet>`)
	assert.Equal(t, "secret-key", recorded.LegacyKey)
}
