package publish

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
	"github.com/princessupload/audience-newsletter/internal/service"
)

// CampaignConfig wires the subscriber campaign.
type CampaignConfig struct {
	// ListURL is the website's subscriber endpoint. Empty disables the
	// website merge and the campaign sends to stored subscribers only.
	ListURL     string
	ListKey     string
	UnsubBase   string
	UnsubSecret string
	Timeout     time.Duration
}

// DefaultCampaignConfig returns the production endpoints.
func DefaultCampaignConfig() CampaignConfig {
	return CampaignConfig{
		ListURL:     "https://www.princessupload.net/subscribe.php",
		UnsubBase:   "https://www.princessupload.net/subscribe.php",
		UnsubSecret: "lottery_unsub_2026",
		Timeout:     10 * time.Second,
	}
}

// Campaign sends the newsletter to every active subscriber with a
// personalized unsubscribe link in both the body and the headers.
type Campaign struct {
	sender     EmailSender
	storage    service.Storage
	httpClient *http.Client
	now        func() time.Time
	config     CampaignConfig
}

// NewCampaign creates a campaign. Zero config values fall back to the
// defaults, except ListURL, which stays empty when unset.
func NewCampaign(sender EmailSender, storage service.Storage, config CampaignConfig) *Campaign {
	defaults := DefaultCampaignConfig()
	if config.UnsubBase == "" {
		config.UnsubBase = defaults.UnsubBase
	}
	if config.UnsubSecret == "" {
		config.UnsubSecret = defaults.UnsubSecret
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	return &Campaign{
		sender:     sender,
		storage:    storage,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
		config:     config,
	}
}

// Send delivers the newsletter to the merged subscriber list. Website
// subscribers are merged with stored ones and anyone who unsubscribed
// locally is dropped from both. Individual delivery failures are
// counted, never fatal.
func (c *Campaign) Send(ctx context.Context, html string) (service.SendStats, error) {
	start := c.now()

	recipients, skipped, err := c.recipients(ctx)
	if err != nil {
		return service.SendStats{}, err
	}

	stats := service.SendStats{
		Total:   len(recipients) + skipped,
		Skipped: skipped,
	}
	if len(recipients) == 0 {
		return stats, common.ErrNoSubscribers
	}

	subject := SubjectFromHTML(html, c.now().In(newsletter.Central()))

	for _, email := range recipients {
		msg := Message{
			To:      []string{email},
			Subject: subject,
			HTML:    c.personalize(html, email),
			Headers: map[string]string{
				"List-Unsubscribe":      "<" + c.UnsubLink(email) + ">",
				"List-Unsubscribe-Post": "List-Unsubscribe=One-Click",
			},
		}
		if err := c.sender.Send(ctx, msg); err != nil {
			slog.Warn("failed to send newsletter", "to", email, "error", err)
			stats.Failed++
			continue
		}
		slog.Debug("sent newsletter", "to", email)
		stats.Sent++
	}

	stats.Duration = c.now().Sub(start)
	slog.Info("campaign finished",
		"sent", stats.Sent,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"duration", stats.Duration)

	if stats.Sent == 0 {
		return stats, fmt.Errorf("%w: all %d sends failed", common.ErrDeliveryFailed, stats.Failed)
	}
	return stats, nil
}

// recipients merges stored and website subscribers and drops everyone
// who has unsubscribed locally. The list comes back sorted for a
// stable send order.
func (c *Campaign) recipients(ctx context.Context) ([]string, int, error) {
	all, err := c.storage.GetAllSubscribers(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load subscribers: %w", err)
	}

	active := make(map[string]bool)
	unsubscribed := make(map[string]bool)
	for _, sub := range all {
		if sub.Active() {
			active[sub.Email] = true
		} else {
			unsubscribed[sub.Email] = true
		}
	}

	website, err := c.fetchWebsiteList(ctx)
	if err != nil {
		// Best effort: stored subscribers still get their newsletter
		// when the website is down.
		slog.Warn("could not fetch website subscribers", "error", err)
	}

	skipped := 0
	for _, raw := range website {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			continue
		}
		if unsubscribed[email] {
			skipped++
			continue
		}
		active[email] = true
	}

	list := make([]string, 0, len(active))
	for email := range active {
		list = append(list, email)
	}
	sort.Strings(list)
	return list, skipped, nil
}

// websiteListResponse is the subscribe endpoint's list payload.
type websiteListResponse struct {
	Subscribers []string `json:"subscribers"`
	Success     bool     `json:"success"`
}

func (c *Campaign) fetchWebsiteList(ctx context.Context) ([]string, error) {
	if c.config.ListURL == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s?action=list&key=%s", c.config.ListURL, url.QueryEscape(c.config.ListKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}
	req.Header.Set("User-Agent", "LotteryNewsletter/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subscriber list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subscriber list returned status %d", resp.StatusCode)
	}

	var payload websiteListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode subscriber list: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("subscriber list request rejected")
	}
	return payload.Subscribers, nil
}

// UnsubToken derives the per-address token the website's subscribe
// endpoint validates on unsubscribe requests.
func (c *Campaign) UnsubToken(email string) string {
	sum := md5.Sum([]byte(email + c.config.UnsubSecret))
	return hex.EncodeToString(sum[:])[:16]
}

// UnsubLink builds the one-click unsubscribe URL for an address.
func (c *Campaign) UnsubLink(email string) string {
	return fmt.Sprintf("%s?email=%s&token=%s",
		c.config.UnsubBase, url.QueryEscape(email), c.UnsubToken(email))
}

// unsubFooter sits inside the body so every copy carries a working
// unsubscribe link even in clients that hide list headers.
const unsubFooter = `
        <div style="text-align: center; padding: 20px; font-size: 12px; color: #999;">
            <a href="%s" style="color: #999;">Unsubscribe</a> from this newsletter
        </div>
        </body>`

func (c *Campaign) personalize(html, email string) string {
	footer := fmt.Sprintf(unsubFooter, c.UnsubLink(email))
	return strings.Replace(html, "</body>", footer, 1)
}

var titlePattern = regexp.MustCompile(`(?i)<title>([^<]+)</title>`)

// SubjectFromHTML extracts the page title for the email subject, with
// a dated fallback when the page has none.
func SubjectFromHTML(html string, now time.Time) string {
	if m := titlePattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return "Lottery Newsletter - " + now.Format("January 2, 2006")
}
