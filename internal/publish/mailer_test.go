package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/testutil"
)

const campaignPage = `<html><head><title>Lottery Newsletter - June 3, 2026</title></head><body><p>picks</p></body></html>`

// fakeSender records messages and fails addresses listed in fail.
type fakeSender struct {
	fail     map[string]bool
	messages []Message
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	if len(msg.To) == 1 && f.fail[msg.To[0]] {
		return fmt.Errorf("smtp unavailable")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func websiteListServer(t *testing.T, key string, emails []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "list" {
			t.Errorf("action = %q, want list", got)
		}
		if got := r.URL.Query().Get("key"); got != key {
			t.Errorf("key = %q, want %q", got, key)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":     true,
			"subscribers": emails,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCampaignSendsToActiveSubscribers(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.SeedSubscribers("a@example.com", "b@example.com")
	if err := db.Storage.RemoveSubscriber(ctx, "b@example.com"); err != nil {
		t.Fatalf("RemoveSubscriber() error = %v", err)
	}

	// The website still lists the unsubscribed address.
	server := websiteListServer(t, "secret", []string{"b@example.com", "c@example.com"})

	sender := &fakeSender{}
	campaign := NewCampaign(sender, db.Storage, CampaignConfig{
		ListURL: server.URL,
		ListKey: "secret",
	})

	stats, err := campaign.Send(ctx, campaignPage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if stats.Sent != 2 || stats.Failed != 0 || stats.Skipped != 1 || stats.Total != 3 {
		t.Errorf("stats = %+v, want Sent 2, Failed 0, Skipped 1, Total 3", stats)
	}
	if len(sender.messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.messages))
	}

	first := sender.messages[0]
	if len(first.To) != 1 || first.To[0] != "a@example.com" {
		t.Errorf("first To = %v, want [a@example.com]", first.To)
	}
	if got := sender.messages[1].To[0]; got != "c@example.com" {
		t.Errorf("second To = %q, want c@example.com", got)
	}
	if first.Subject != "Lottery Newsletter - June 3, 2026" {
		t.Errorf("Subject = %q", first.Subject)
	}

	link := campaign.UnsubLink("a@example.com")
	if !strings.Contains(link, "email=a%40example.com") {
		t.Errorf("UnsubLink() = %q, missing escaped address", link)
	}
	if first.Headers["List-Unsubscribe"] != "<"+link+">" {
		t.Errorf("List-Unsubscribe = %q, want <%s>", first.Headers["List-Unsubscribe"], link)
	}
	if first.Headers["List-Unsubscribe-Post"] != "List-Unsubscribe=One-Click" {
		t.Errorf("List-Unsubscribe-Post = %q", first.Headers["List-Unsubscribe-Post"])
	}
	if !strings.Contains(first.HTML, ">Unsubscribe</a>") || !strings.Contains(first.HTML, link) {
		t.Error("personalized body is missing the unsubscribe footer")
	}
	if strings.Count(first.HTML, "</body>") != 1 {
		t.Errorf("body closed %d times, want 1", strings.Count(first.HTML, "</body>"))
	}
}

func TestCampaignSurvivesWebsiteOutage(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.SeedSubscribers("a@example.com")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	sender := &fakeSender{}
	campaign := NewCampaign(sender, db.Storage, CampaignConfig{ListURL: server.URL})

	stats, err := campaign.Send(ctx, campaignPage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if stats.Sent != 1 || stats.Total != 1 {
		t.Errorf("stats = %+v, want Sent 1, Total 1", stats)
	}
}

func TestCampaignWorksWithoutWebsiteList(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.SeedSubscribers("a@example.com", "b@example.com")

	sender := &fakeSender{}
	campaign := NewCampaign(sender, db.Storage, CampaignConfig{})

	stats, err := campaign.Send(ctx, campaignPage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if stats.Sent != 2 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want Sent 2, Skipped 0", stats)
	}
}

func TestCampaignCountsFailures(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.SeedSubscribers("a@example.com", "b@example.com")

	sender := &fakeSender{fail: map[string]bool{"a@example.com": true}}
	campaign := NewCampaign(sender, db.Storage, CampaignConfig{})

	stats, err := campaign.Send(ctx, campaignPage)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if stats.Sent != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want Sent 1, Failed 1", stats)
	}
}

func TestCampaignReportsTotalFailure(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	db.SeedSubscribers("a@example.com", "b@example.com")

	sender := &fakeSender{fail: map[string]bool{
		"a@example.com": true,
		"b@example.com": true,
	}}
	campaign := NewCampaign(sender, db.Storage, CampaignConfig{})

	stats, err := campaign.Send(ctx, campaignPage)
	if !errors.Is(err, common.ErrDeliveryFailed) {
		t.Fatalf("Send() error = %v, want ErrDeliveryFailed", err)
	}
	if stats.Sent != 0 || stats.Failed != 2 {
		t.Errorf("stats = %+v, want Sent 0, Failed 2", stats)
	}
}

func TestCampaignRequiresSubscribers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	campaign := NewCampaign(&fakeSender{}, db.Storage, CampaignConfig{})

	_, err := campaign.Send(context.Background(), campaignPage)
	if !errors.Is(err, common.ErrNoSubscribers) {
		t.Fatalf("Send() error = %v, want ErrNoSubscribers", err)
	}
}

func TestUnsubToken(t *testing.T) {
	campaign := NewCampaign(nil, nil, CampaignConfig{})

	token := campaign.UnsubToken("a@example.com")
	if len(token) != 16 {
		t.Fatalf("token length = %d, want 16", len(token))
	}
	for _, r := range token {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("token %q contains non-hex character %q", token, r)
		}
	}

	if campaign.UnsubToken("a@example.com") != token {
		t.Error("token is not deterministic")
	}
	if campaign.UnsubToken("b@example.com") == token {
		t.Error("different addresses share a token")
	}

	other := NewCampaign(nil, nil, CampaignConfig{UnsubSecret: "different"})
	if other.UnsubToken("a@example.com") == token {
		t.Error("different secrets share a token")
	}
}

func TestPersonalizeWithoutBodyTag(t *testing.T) {
	campaign := NewCampaign(nil, nil, CampaignConfig{})

	const fragment = "<p>no body tag here</p>"
	if got := campaign.personalize(fragment, "a@example.com"); got != fragment {
		t.Errorf("personalize() rewrote a fragment without </body>: %q", got)
	}
}

func TestSubjectFromHTML(t *testing.T) {
	now := time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "lowercase title",
			html: campaignPage,
			want: "Lottery Newsletter - June 3, 2026",
		},
		{
			name: "uppercase title",
			html: "<HTML><TITLE>Weekly Picks</TITLE></HTML>",
			want: "Weekly Picks",
		},
		{
			name: "no title falls back to date",
			html: "<html><body></body></html>",
			want: "Lottery Newsletter - June 3, 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubjectFromHTML(tt.html, now); got != tt.want {
				t.Errorf("SubjectFromHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}
