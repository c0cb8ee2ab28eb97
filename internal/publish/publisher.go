package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/newsletter"
)

// Targets selects which channels receive the newsletter.
type Targets struct {
	Email    bool
	Substack bool
	Patreon  bool
	SFTP     bool
}

// Any reports whether at least one channel is selected.
func (t Targets) Any() bool {
	return t.Email || t.Substack || t.Patreon || t.SFTP
}

// PostCreator publishes a titled HTML post. *PatreonClient implements
// it.
type PostCreator interface {
	CreatePost(ctx context.Context, title, content string) error
}

// FileUploader copies a local file to the website. *Uploader
// implements it.
type FileUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Result reports the outcome for one target.
type Result struct {
	Err    error
	Target string
	Detail string
}

// PublisherConfig holds the per-channel settings.
type PublisherConfig struct {
	OutputDir      string
	SubstackImport string
	Recipients     []string
	DryRun         bool
}

// Publisher fans the rendered newsletter out to the selected channels.
// Channels whose client is nil report a configuration error instead of
// failing the whole run.
type Publisher struct {
	sender   EmailSender
	patreon  PostCreator
	uploader FileUploader
	now      func() time.Time
	config   PublisherConfig
}

// NewPublisher wires the channel clients. Any of them may be nil when
// that channel is not configured.
func NewPublisher(sender EmailSender, patreon PostCreator, uploader FileUploader, cfg PublisherConfig) *Publisher {
	return &Publisher{
		sender:   sender,
		patreon:  patreon,
		uploader: uploader,
		now:      time.Now,
		config:   cfg,
	}
}

// Publish loads the most recent rendered newsletter and delivers it to
// every selected target, collecting one result per target. It fails
// outright only when there is no newsletter to publish.
func (p *Publisher) Publish(ctx context.Context, targets Targets) ([]Result, error) {
	htmlPath := filepath.Join(p.config.OutputDir, newsletter.LatestFile)
	page, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("no newsletter at %s (run generate first): %w", htmlPath, err)
	}
	html := string(page)

	// Patreon gets the compact snippet when one was rendered.
	content := html
	if snippet, err := os.ReadFile(filepath.Join(p.config.OutputDir, newsletter.SnippetFile)); err == nil {
		content = string(snippet)
	}

	var results []Result
	if targets.Email {
		results = append(results, p.publishEmail(ctx, html))
	}
	if targets.Substack {
		results = append(results, p.publishSubstack(ctx, html))
	}
	if targets.Patreon {
		results = append(results, p.publishPatreon(ctx, content))
	}
	if targets.SFTP {
		results = append(results, p.publishSFTP(ctx, htmlPath))
	}
	return results, nil
}

// publishEmail sends one message with every recipient on it, unlike
// the subscriber campaign's individual sends.
func (p *Publisher) publishEmail(ctx context.Context, html string) Result {
	res := Result{Target: "email"}
	if p.sender == nil {
		res.Err = fmt.Errorf("%w: smtp is not configured", common.ErrMissingConfig)
		return res
	}
	if len(p.config.Recipients) == 0 {
		res.Err = fmt.Errorf("%w: no email recipients configured", common.ErrMissingConfig)
		return res
	}
	if p.config.DryRun {
		res.Detail = fmt.Sprintf("dry run: would email %d recipients", len(p.config.Recipients))
		return res
	}

	msg := Message{
		To:      p.config.Recipients,
		Subject: SubjectFromHTML(html, p.now().In(newsletter.Central())),
		HTML:    html,
	}
	if err := p.sender.Send(ctx, msg); err != nil {
		res.Err = fmt.Errorf("failed to email newsletter: %w", err)
		return res
	}
	res.Detail = fmt.Sprintf("emailed %d recipients", len(p.config.Recipients))
	return res
}

// publishSubstack mails the page to the Substack import address, which
// turns it into a draft post.
func (p *Publisher) publishSubstack(ctx context.Context, html string) Result {
	res := Result{Target: "substack"}
	if p.sender == nil {
		res.Err = fmt.Errorf("%w: smtp is not configured", common.ErrMissingConfig)
		return res
	}
	if p.config.SubstackImport == "" {
		res.Err = fmt.Errorf("%w: substack import address is not configured", common.ErrMissingConfig)
		return res
	}
	if p.config.DryRun {
		res.Detail = "dry run: would send to " + p.config.SubstackImport
		return res
	}

	msg := Message{
		To:      []string{p.config.SubstackImport},
		Subject: SubjectFromHTML(html, p.now().In(newsletter.Central())),
		HTML:    html,
	}
	if err := p.sender.Send(ctx, msg); err != nil {
		res.Err = fmt.Errorf("failed to send to substack: %w", err)
		return res
	}
	res.Detail = "queued for import at " + p.config.SubstackImport
	return res
}

func (p *Publisher) publishPatreon(ctx context.Context, content string) Result {
	res := Result{Target: "patreon"}
	if p.patreon == nil {
		res.Err = fmt.Errorf("%w: patreon is not configured", common.ErrMissingConfig)
		return res
	}

	title := "🎰 Lottery Newsletter - " + p.now().In(newsletter.Central()).Format("January 2, 2006")
	if p.config.DryRun {
		res.Detail = "dry run: would post " + title
		return res
	}

	if err := p.patreon.CreatePost(ctx, title, content); err != nil {
		res.Err = fmt.Errorf("failed to post to patreon: %w", err)
		return res
	}
	res.Detail = "created patron-only post " + title
	return res
}

func (p *Publisher) publishSFTP(ctx context.Context, localPath string) Result {
	res := Result{Target: "sftp"}
	if p.uploader == nil {
		res.Err = fmt.Errorf("%w: sftp is not configured", common.ErrMissingConfig)
		return res
	}
	if p.config.DryRun {
		res.Detail = "dry run: would upload " + localPath
		return res
	}

	remote, err := p.uploader.Upload(ctx, localPath)
	if err != nil {
		res.Err = fmt.Errorf("failed to upload newsletter: %w", err)
		return res
	}
	res.Detail = "uploaded to " + remote
	return res
}
