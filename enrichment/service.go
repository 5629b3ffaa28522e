package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/donorflow/server/config"
	"github.com/donorflow/server/logger"
	"go.uber.org/zap"
)

const defaultTimeoutSeconds = 15

type BioRequest struct {
	Name             string `json:"name"`
	Occupation       string `json:"occupation,omitempty"`
	Employer         string `json:"employer,omitempty"`
	Location         string `json:"location,omitempty"`
	Email            string `json:"email,omitempty"`
	Industry         string `json:"industry,omitempty"`
	UseSearchResults bool   `json:"useSearchResults,omitempty"`
	TestingMode      bool   `json:"testingMode,omitempty"`
}

type Citation struct {
	Title string `json:"title"`
	Url   string `json:"url"`
}

type BioResponse struct {
	Success   bool       `json:"success"`
	Headlines []string   `json:"headlines"`
	Citations []Citation `json:"citations,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Service proxies donor-bio generation to an upstream LLM API. The call is
// bounded by a timeout and falls back to a deterministic templated bio when
// the key is absent or the upstream fails; GenerateBio never returns an
// error to the caller.
type Service struct {
	conf    config.BioServiceConfig
	client  *http.Client
	timeout time.Duration
}

func NewService(conf config.BioServiceConfig) *Service {
	seconds := conf.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	timeout := time.Duration(seconds) * time.Second
	return &Service{
		conf:    conf,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (s *Service) GenerateBio(ctx context.Context, req BioRequest) BioResponse {
	if strings.TrimSpace(req.Name) == "" {
		return BioResponse{Success: false, Error: "name is required"}
	}
	if !s.upstreamConfigured() || req.TestingMode {
		return fallbackBio(req)
	}
	headlines, citations, err := s.callUpstream(ctx, req)
	if err != nil {
		logger.Error("bio upstream failed, using templated bio", zap.String("name", req.Name), zap.Error(err))
		return fallbackBio(req)
	}
	return BioResponse{Success: true, Headlines: headlines, Citations: citations}
}

func (s *Service) upstreamConfigured() bool {
	key := strings.TrimSpace(s.conf.ApiKey)
	if key == "" || key == "YOUR_API_KEY" {
		return false
	}
	return strings.TrimSpace(s.conf.ApiUrl) != ""
}

type upstreamRequest struct {
	Model    string            `json:"model"`
	Messages []upstreamMessage `json:"messages"`
}

type upstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type upstreamResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

func (s *Service) callUpstream(ctx context.Context, req BioRequest) ([]string, []Citation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(upstreamRequest{
		Model: "sonar",
		Messages: []upstreamMessage{
			{Role: "system", Content: "Write three short professional headline sentences about the person described. One sentence per line."},
			{Role: "user", Content: bioPrompt(req)},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.conf.ApiUrl, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.conf.ApiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	var parsed upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, nil, fmt.Errorf("upstream returned no choices")
	}
	headlines := splitHeadlines(parsed.Choices[0].Message.Content)
	if len(headlines) == 0 {
		return nil, nil, fmt.Errorf("upstream returned empty content")
	}
	citations := make([]Citation, 0, len(parsed.Citations))
	for _, url := range parsed.Citations {
		citations = append(citations, Citation{Title: url, Url: url})
	}
	return headlines, citations, nil
}

func bioPrompt(req BioRequest) string {
	var sb strings.Builder
	sb.WriteString("Name: " + req.Name)
	if req.Occupation != "" {
		sb.WriteString("\nOccupation: " + req.Occupation)
	}
	if req.Employer != "" {
		sb.WriteString("\nEmployer: " + req.Employer)
	}
	if req.Location != "" {
		sb.WriteString("\nLocation: " + req.Location)
	}
	if req.Industry != "" {
		sb.WriteString("\nIndustry: " + req.Industry)
	}
	return sb.String()
}

func splitHeadlines(content string) []string {
	lines := strings.Split(content, "\n")
	headlines := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			headlines = append(headlines, line)
		}
	}
	return headlines
}

// fallbackBio builds a deterministic templated bio from whatever profile
// fields are present.
func fallbackBio(req BioRequest) BioResponse {
	var role string
	switch {
	case req.Occupation != "" && req.Employer != "":
		role = fmt.Sprintf("%s works as %s at %s.", req.Name, req.Occupation, req.Employer)
	case req.Occupation != "":
		role = fmt.Sprintf("%s works as %s.", req.Name, req.Occupation)
	case req.Employer != "":
		role = fmt.Sprintf("%s works at %s.", req.Name, req.Employer)
	default:
		role = fmt.Sprintf("%s is a valued member of the community.", req.Name)
	}
	headlines := []string{role}
	if req.Location != "" {
		headlines = append(headlines, fmt.Sprintf("%s is based in %s.", req.Name, req.Location))
	}
	if req.Industry != "" {
		headlines = append(headlines, fmt.Sprintf("%s has experience in the %s industry.", req.Name, req.Industry))
	}
	return BioResponse{Success: true, Headlines: headlines}
}
