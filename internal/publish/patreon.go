package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
)

// PatreonConfig holds the Patreon API credentials.
type PatreonConfig struct {
	AccessToken string
	CampaignID  string
	BaseURL     string
	Timeout     time.Duration
}

const defaultPatreonBaseURL = "https://www.patreon.com"

// PatreonClient posts the newsletter to a Patreon campaign as a
// patron-only text post.
type PatreonClient struct {
	httpClient *http.Client
	config     PatreonConfig
}

// NewPatreonClient validates the credentials and returns a client.
func NewPatreonClient(config PatreonConfig) (*PatreonClient, error) {
	if config.AccessToken == "" {
		return nil, fmt.Errorf("%w: patreon access token is required", common.ErrMissingConfig)
	}
	if config.CampaignID == "" {
		return nil, fmt.Errorf("%w: patreon campaign id is required", common.ErrMissingConfig)
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultPatreonBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &PatreonClient{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
	}, nil
}

type patreonPostRequest struct {
	Data patreonPostData `json:"data"`
}

type patreonPostData struct {
	Type       string             `json:"type"`
	Attributes patreonPostAttribs `json:"attributes"`
}

type patreonPostAttribs struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	PostType string `json:"post_type"`
	IsPublic bool   `json:"is_public"`
}

// CreatePost publishes a patron-only text post on the campaign.
func (p *PatreonClient) CreatePost(ctx context.Context, title, content string) error {
	payload := patreonPostRequest{
		Data: patreonPostData{
			Type: "post",
			Attributes: patreonPostAttribs{
				Title:    title,
				Content:  content,
				PostType: "text_only",
				IsPublic: false,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode patreon post: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/oauth2/v2/campaigns/%s/posts", p.config.BaseURL, p.config.CampaignID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create patreon request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("patreon request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("patreon returned status %d: %s", resp.StatusCode, string(detail))
	}

	slog.Info("published patreon post", "title", title)
	return nil
}
