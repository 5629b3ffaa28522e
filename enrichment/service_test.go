package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/donorflow/server/config"
	"github.com/stretchr/testify/require"
)

func TestGenerateBio(t *testing.T) {
	for scenario, fn := range map[string]func(t *testing.T){
		"test missing name":           testMissingName,
		"test templated fallback":     testTemplatedFallback,
		"test placeholder key":        testPlaceholderKey,
		"test upstream success":       testUpstreamSuccess,
		"test upstream failure":       testUpstreamFailure,
		"test fallback deterministic": testFallbackDeterministic,
	} {
		t.Run(scenario, fn)
	}
}

func testMissingName(t *testing.T) {
	service := NewService(config.BioServiceConfig{})
	resp := service.GenerateBio(context.Background(), BioRequest{})
	require.False(t, resp.Success)
	require.Equal(t, "name is required", resp.Error)
}

func testTemplatedFallback(t *testing.T) {
	service := NewService(config.BioServiceConfig{})
	resp := service.GenerateBio(context.Background(), BioRequest{
		Name:       "Jane Smith",
		Occupation: "Surgeon",
		Employer:   "City Hospital",
		Location:   "Des Moines, IA",
	})
	require.True(t, resp.Success)
	require.Equal(t, []string{
		"Jane Smith works as Surgeon at City Hospital.",
		"Jane Smith is based in Des Moines, IA.",
	}, resp.Headlines)
}

func testPlaceholderKey(t *testing.T) {
	service := NewService(config.BioServiceConfig{ApiUrl: "https://api.example.com", ApiKey: "YOUR_API_KEY"})
	resp := service.GenerateBio(context.Background(), BioRequest{Name: "Jane Smith"})
	require.True(t, resp.Success)
	require.Equal(t, []string{"Jane Smith is a valued member of the community."}, resp.Headlines)
}

func testUpstreamSuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"choices": [{"message": {"content": "Jane Smith leads cardiac surgery.\nShe chairs the hospital gala."}}],
			"citations": ["https://example.com/profile"]
		}`))
	}))
	defer upstream.Close()

	service := NewService(config.BioServiceConfig{ApiUrl: upstream.URL, ApiKey: "test-key"})
	resp := service.GenerateBio(context.Background(), BioRequest{Name: "Jane Smith", Occupation: "Surgeon"})
	require.True(t, resp.Success)
	require.Equal(t, []string{"Jane Smith leads cardiac surgery.", "She chairs the hospital gala."}, resp.Headlines)
	require.Len(t, resp.Citations, 1)
	require.Equal(t, "https://example.com/profile", resp.Citations[0].Url)
}

func testUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	service := NewService(config.BioServiceConfig{ApiUrl: upstream.URL, ApiKey: "test-key"})
	resp := service.GenerateBio(context.Background(), BioRequest{Name: "Jane Smith", Occupation: "Surgeon"})
	// upstream failure degrades to the templated bio, not an error
	require.True(t, resp.Success)
	require.Equal(t, []string{"Jane Smith works as Surgeon."}, resp.Headlines)
}

func testFallbackDeterministic(t *testing.T) {
	service := NewService(config.BioServiceConfig{})
	req := BioRequest{Name: "Jane Smith", Industry: "Healthcare"}
	first := service.GenerateBio(context.Background(), req)
	second := service.GenerateBio(context.Background(), req)
	require.Equal(t, first, second)
}
