package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/exoshivam/folio/internal/models"
)

// Printer writes styled output to one writer. Colour is dropped
// automatically when the writer is not a terminal.
type Printer struct {
	w      io.Writer
	r      *lipgloss.Renderer
	styles Styles
}

func NewPrinter(w io.Writer, pref models.ThemePreference) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetHasDarkBackground(pref.DarkMode)
	return &Printer{w: w, r: r, styles: newStyles(r, NewTheme(pref))}
}

// SetTheme restyles subsequent output.
func (p *Printer) SetTheme(pref models.ThemePreference) {
	p.r.SetHasDarkBackground(pref.DarkMode)
	p.styles = newStyles(p.r, NewTheme(pref))
}

func (p *Printer) Styles() Styles { return p.styles }

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *Printer) Notice(msg string) { p.println(p.styles.Notice.Render(msg)) }
func (p *Printer) Error(msg string)  { p.println(p.styles.Error.Render(msg)) }
func (p *Printer) Line(msg string)   { p.println(p.styles.Body.Render(msg)) }

func (p *Printer) Home(h *models.Home) {
	if h.Profile != nil {
		p.Profile(h.Profile)
	} else {
		p.println(p.styles.Muted.Render("No profile published yet."))
	}

	if len(h.Skills) > 0 {
		names := make([]string, 0, len(h.Skills))
		for _, s := range h.Skills {
			names = append(names, p.styles.Tag.Render(s.Name))
		}
		p.println(p.styles.Subtitle.Render("Skills") + "  " + strings.Join(names, p.styles.Muted.Render(" · ")))
	}

	p.println(p.styles.Subtitle.Render("Projects"))
	if len(h.Projects) == 0 {
		p.println(p.styles.Muted.Render("  nothing here yet"))
	}
	for _, w := range h.Projects {
		p.println("  " + p.workLine(w, false, ""))
	}
}

func (p *Printer) Profile(pr *models.Profile) {
	var b strings.Builder
	name := pr.FullName
	if name == "" {
		name = pr.Username
	}
	b.WriteString(p.styles.Title.Render(name))
	if pr.Username != "" {
		b.WriteString(" " + p.styles.Muted.Render("@"+pr.Username))
	}
	if pr.Bio != "" {
		b.WriteString("\n" + p.styles.Body.Render(pr.Bio))
	}
	stats := fmt.Sprintf("%d projects · %d views · %d following", pr.ProjectsCount, pr.ViewsCount, pr.FollowingCount)
	b.WriteString("\n" + p.styles.Muted.Render(stats))
	for _, link := range []string{pr.Website, pr.GithubURL} {
		if link != "" {
			b.WriteString("\n" + p.styles.Accent.Render(link))
		}
	}
	p.println(p.styles.Card.Render(b.String()))
}

// Feed prints one line per item, liked items marked with a filled heart.
func (p *Printer) Feed(items []models.FeedItem) {
	if len(items) == 0 {
		p.println(p.styles.Muted.Render("No results"))
		return
	}
	for _, it := range items {
		p.println(p.workLine(it.WorkItem, it.Liked, it.CategoryLabel()))
	}
}

func (p *Printer) workLine(w models.WorkItem, liked bool, label string) string {
	parts := []string{p.styles.Muted.Render("[" + w.ID + "]"), p.styles.Subtitle.Render(w.Title)}
	if label != "" {
		parts = append(parts, p.styles.Tag.Render(label))
	}
	parts = append(parts, p.likes(liked, w.Likes))
	return strings.Join(parts, " ")
}

func (p *Printer) likes(liked bool, n int) string {
	if liked {
		return p.styles.Liked.Render("♥ " + strconv.Itoa(n))
	}
	return p.styles.Muted.Render("♡ " + strconv.Itoa(n))
}

// Item prints a single work item with its comments.
func (p *Printer) Item(it models.FeedItem, comments []models.Comment, viewerID string) {
	var b strings.Builder
	b.WriteString(p.styles.Title.Render(it.Title))
	b.WriteString("  " + p.styles.Tag.Render(it.CategoryLabel()))
	if it.Description != "" {
		b.WriteString("\n" + p.styles.Body.Render(it.Description))
	}
	if len(it.Technologies) > 0 {
		b.WriteString("\n" + p.styles.Accent.Render(strings.Join(it.Technologies, ", ")))
	}
	if it.ProjectURL != "" {
		b.WriteString("\n" + p.styles.Muted.Render(it.ProjectURL))
	}
	for _, u := range it.ImageURLs {
		b.WriteString("\n" + p.styles.Muted.Render(u))
	}
	b.WriteString("\n" + p.likes(it.Liked, it.Likes))
	p.println(p.styles.Card.Render(b.String()))
	p.Comments(comments, viewerID)
}

// Comments lists newest first; the viewer's own comments are marked as
// deletable.
func (p *Printer) Comments(list []models.Comment, viewerID string) {
	if len(list) == 0 {
		p.println(p.styles.Muted.Render("No comments yet"))
		return
	}
	for _, c := range list {
		line := p.styles.Subtitle.Render(c.Username) + " " + p.styles.Body.Render(c.Text)
		meta := "[" + c.ID + "]"
		if !c.CreatedAt.IsZero() {
			meta += " " + c.CreatedAt.Format("2006-01-02 15:04")
		}
		if viewerID != "" && c.AuthorID == viewerID {
			meta += " (yours)"
		}
		p.println(line + " " + p.styles.Muted.Render(meta))
	}
}

func (p *Printer) Active(list []models.ActiveProject) {
	if len(list) == 0 {
		p.println(p.styles.Muted.Render("No active projects"))
		return
	}
	for _, a := range list {
		line := fmt.Sprintf("%s %s %s %s",
			p.styles.Muted.Render("["+a.ID+"]"),
			p.styles.Subtitle.Render(a.Title),
			p.styles.Tag.Render(a.Status),
			p.progress(a.Progress),
		)
		p.println(line)
	}
}

func (p *Printer) progress(pct int) string {
	pct = max(0, min(100, pct))
	const width = 10
	filled := pct * width / 100
	bar := p.styles.Tag.Render(strings.Repeat("█", filled)) + p.styles.Muted.Render(strings.Repeat("░", width-filled))
	return bar + " " + p.styles.Muted.Render(strconv.Itoa(pct)+"%")
}

func (p *Printer) History(list []string) {
	if len(list) == 0 {
		p.println(p.styles.Muted.Render("No recent searches"))
		return
	}
	for i, q := range list {
		p.println(p.styles.Muted.Render(strconv.Itoa(i+1)+".") + " " + p.styles.Body.Render(q))
	}
}

func (p *Printer) Theme(pref models.ThemePreference) {
	mode := "Light"
	if pref.DarkMode {
		mode = "Dark"
	}
	pal := pref.Accent.Palette()
	p.println(p.styles.Subtitle.Render("Mode: ") + p.styles.Body.Render(mode))
	p.println(p.styles.Subtitle.Render("Accent: ") +
		p.styles.Title.Render(string(pref.Accent)) + " " +
		p.styles.Muted.Render(pal.Primary.Hex()+" → "+pal.Secondary.Hex()))
}
