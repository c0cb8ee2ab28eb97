// Package newsletter renders the audience-facing HTML newsletter and
// the embeddable snippet from per-lottery analysis reports. All layout
// lives in embedded templates; this package only assembles the view
// data and writes the output files.
package newsletter

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/princessupload/audience-newsletter/internal/config"
	"github.com/princessupload/audience-newsletter/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Output file names under the output directory. LatestFile always
// mirrors the most recent dated newsletter; delivery reads these.
const (
	LatestFile  = "latest.html"
	SnippetFile = "embed_snippet.html"
)

const (
	newsletterTemplate = "newsletter.tmpl"
	snippetTemplate    = "snippet.tmpl"

	// snippetHotCount caps the hot numbers shown in the compact embed.
	snippetHotCount = 6

	// pageHotCount caps the hot numbers shown on the full page.
	pageHotCount = 8
)

// Section pairs one lottery's profile with its analysis report and
// advertised jackpot. Lotteries with no draw history render nothing.
type Section struct {
	Jackpot *model.Jackpot
	Report  model.LotteryReport
	Profile model.LotteryProfile
}

// Output lists the files a render produced.
type Output struct {
	Newsletter string
	Latest     string
	Snippet    string
}

// Config holds renderer settings.
type Config struct {
	Now       func() time.Time
	OutputDir string
	TaxState  string
}

// DefaultConfig returns renderer settings matching the published
// newsletter: output under the user config dir, Oklahoma withholding.
func DefaultConfig() Config {
	return Config{
		Now:       time.Now,
		OutputDir: config.DefaultOutputDir(),
		TaxState:  config.DefaultTaxState,
	}
}

// Renderer produces the HTML newsletter and embed snippet.
type Renderer struct {
	templates *template.Template
	now       func() time.Time
	outputDir string
	taxState  string
	taxLabel  template.HTML
}

// NewRenderer creates a renderer with default settings.
func NewRenderer() (*Renderer, error) {
	return NewRendererWithConfig(DefaultConfig())
}

// NewRendererWithConfig creates a renderer with custom settings. Zero
// values fall back to the defaults.
func NewRendererWithConfig(cfg Config) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse newsletter templates: %w", err)
	}

	defaults := DefaultConfig()
	if cfg.Now == nil {
		cfg.Now = defaults.Now
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaults.OutputDir
	}
	if cfg.TaxState == "" {
		cfg.TaxState = defaults.TaxState
	}

	rate := config.TaxRateFor(cfg.TaxState)
	// The label is pre-rendered HTML so the literal "+" survives template
	// execution (html/template escapes "+" to "&#43;" in text nodes); the
	// state code is the only dynamic part and is escaped here instead.
	return &Renderer{
		templates: tmpl,
		now:       cfg.Now,
		outputDir: cfg.OutputDir,
		taxState:  cfg.TaxState,
		taxLabel: template.HTML(fmt.Sprintf("%s%% Fed + %s%% %s",
			percent(rate.Federal), percent(rate.State), template.HTMLEscapeString(cfg.TaxState))),
	}, nil
}

// Newsletter renders the full HTML page.
func (r *Renderer) Newsletter(sections []Section) (string, error) {
	return r.render(newsletterTemplate, sections)
}

// EmbedSnippet renders the compact inline-styled block pasted into
// Patreon and Substack posts.
func (r *Renderer) EmbedSnippet(sections []Section) (string, error) {
	return r.render(snippetTemplate, sections)
}

// WriteFiles renders both outputs and writes the dated newsletter,
// latest.html, and embed_snippet.html under the output directory.
func (r *Renderer) WriteFiles(sections []Section) (*Output, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	page, err := r.Newsletter(sections)
	if err != nil {
		return nil, err
	}
	snippet, err := r.EmbedSnippet(sections)
	if err != nil {
		return nil, err
	}

	nowCT := r.now().In(Central())
	out := &Output{
		Newsletter: filepath.Join(r.outputDir, fmt.Sprintf("newsletter_%s.html", nowCT.Format(model.DateLayout))),
		Latest:     filepath.Join(r.outputDir, LatestFile),
		Snippet:    filepath.Join(r.outputDir, SnippetFile),
	}

	files := map[string]string{
		out.Newsletter: page,
		out.Latest:     page,
		out.Snippet:    snippet,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	slog.Info("newsletter rendered",
		"newsletter", out.Newsletter,
		"snippet", out.Snippet,
		"lotteries", len(sections))
	return out, nil
}

func (r *Renderer) render(name string, sections []Section) (string, error) {
	nowCT := r.now().In(Central())
	data := pageData{
		Date:     nowCT.Format("January 2, 2006"),
		TimesBar: TimesBar(nowCT),
		Cards:    r.cards(sections, nowCT),
	}

	var buf strings.Builder
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// pageData is the root context for both templates.
type pageData struct {
	Date     string
	TimesBar string
	Cards    []card
}

// card is one lottery's fully formatted view. Everything is assembled
// here so the templates stay purely structural.
type card struct {
	Jackpot          *jackpotBox
	Key              string
	Name             string
	Emoji            string
	BonusName        string
	ScheduleText     string
	DrawTime         string
	Countdown        string
	StrategyDesc     string
	Stability        string
	DrawDate         string
	BestMethods      string
	LatestJoined     string
	HotJoined        string
	SnippetJackpot   string
	Positions        []positionRow
	BonusPool        []int
	HotNumbers       []int
	LastDraw         []int
	Main             []int
	Constraints      model.ConstraintSpec
	Bonus            int
	Soon             bool
	NextDrawStrategy bool
}

type positionRow struct {
	Label   string
	Numbers []int
}

// jackpotBox is the formatted prize display for one lottery.
type jackpotBox struct {
	Amount   string
	Cash     string
	AfterTax string
	TaxLabel template.HTML
}

func (r *Renderer) cards(sections []Section, nowCT time.Time) []card {
	cards := make([]card, 0, len(sections))
	for _, section := range sections {
		if section.Report.LastDraw == nil {
			slog.Warn("skipping lottery with no draws", "lottery", section.Profile.Key)
			continue
		}
		cards = append(cards, r.buildCard(section, nowCT))
	}
	return cards
}

func (r *Renderer) buildCard(section Section, nowCT time.Time) card {
	profile := section.Profile
	report := section.Report

	c := card{
		Key:              profile.Key,
		Name:             profile.Name,
		Emoji:            profile.Emoji,
		BonusName:        profile.BonusName,
		ScheduleText:     profile.Schedule.Text,
		DrawTime:         drawTimeLabel(profile.Schedule),
		StrategyDesc:     profile.StrategyDesc,
		BestMethods:      strings.Join(profile.BestMethods, "  •  "),
		Constraints:      profile.Constraints,
		NextDrawStrategy: profile.Strategy == model.StrategyNextDraw,
	}

	countdown := NextDraw(profile.Schedule, nowCT)
	c.Countdown = countdown.Label
	c.Soon = countdown.Soon()

	if profile.PatternStability > 0 {
		c.Stability = fmt.Sprintf("%.1f%% stable", profile.PatternStability)
	} else {
		c.Stability = "Use NEXT DRAW method"
	}

	c.Main = report.LastDraw.SortedMain()
	c.Bonus = report.LastDraw.Bonus
	c.DrawDate = report.LastDraw.Date.Format(model.DateLayout)
	c.LastDraw = c.Main
	c.LatestJoined = joinInts(c.Main, " - ")

	for i, pool := range report.PositionPools {
		c.Positions = append(c.Positions, positionRow{
			Label:   fmt.Sprintf("Position %d:", i+1),
			Numbers: pool.Numbers(),
		})
	}
	c.BonusPool = report.BonusPool.Numbers()

	hot := report.HotNumbers.Numbers()
	c.HotNumbers = capInts(hot, pageHotCount)
	c.HotJoined = joinInts(capInts(hot, snippetHotCount), ", ")

	c.Jackpot = r.jackpotBox(profile, section.Jackpot)
	c.SnippetJackpot = r.snippetJackpot(profile, section.Jackpot)
	return c
}

// jackpotBox formats the prize display. Fixed-prize games show their
// grand-prize label and fixed cash option; the rest show the advertised
// jackpot when one is on file.
func (r *Renderer) jackpotBox(profile model.LotteryProfile, jackpot *model.Jackpot) *jackpotBox {
	if profile.GrandPrize != "" {
		return &jackpotBox{
			Amount:   profile.GrandPrize,
			Cash:     FormatMoney(profile.FixedCash),
			AfterTax: FormatMoney(config.AfterTax(profile.FixedCash, r.taxState)),
			TaxLabel: r.taxLabel,
		}
	}

	if jackpot == nil || jackpot.Amount <= 0 {
		return nil
	}

	box := &jackpotBox{
		Amount:   FormatMoney(jackpot.Amount),
		Cash:     orTBD(FormatMoney(jackpot.CashValue)),
		AfterTax: orTBD(FormatMoney(config.AfterTax(jackpot.CashValue, r.taxState))),
		TaxLabel: r.taxLabel,
	}
	return box
}

// snippetJackpot is the compact green badge: the grand-prize label for
// fixed games, otherwise the after-tax cash option.
func (r *Renderer) snippetJackpot(profile model.LotteryProfile, jackpot *model.Jackpot) string {
	if profile.GrandPrize != "" {
		return profile.GrandPrize
	}
	if jackpot == nil || jackpot.CashValue <= 0 {
		return ""
	}
	return fmt.Sprintf("%s (%s after tax)",
		FormatMoney(config.AfterTax(jackpot.CashValue, r.taxState)), r.taxState)
}

// drawTimeLabel renders the Central Time draw slot, e.g. "9:38 PM".
func drawTimeLabel(s model.DrawSchedule) string {
	return time.Date(2000, 1, 1, s.Hour, s.Minute, 0, 0, time.UTC).Format(clock12)
}

// percent renders a fractional rate as a display percentage with no
// float noise: 0.0475 becomes "4.75".
func percent(rate float64) string {
	return strconv.FormatFloat(math.Round(rate*10000)/100, 'f', -1, 64)
}

func orTBD(s string) string {
	if s == "" {
		return "TBD"
	}
	return s
}

func joinInts(nums []int, sep string) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, sep)
}

func capInts(nums []int, n int) []int {
	if len(nums) > n {
		return nums[:n]
	}
	return nums
}
