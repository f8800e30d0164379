package viewmodel

import (
	"regexp"
	"strings"
	"time"

	"github.com/newsblog/newsblog/models"
)

const (
	// DateLayout matches the human-readable date shown on article pages.
	DateLayout = "02 January 2006"

	excerptLimit = 100
)

// ArticleView is the flat, presentation-ready shape of an article.
type ArticleView struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	Excerpt    string `json:"excerpt"`
	BodyHTML   string `json:"body_html"`
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	Category   string `json:"category"`
	IsToday    bool   `json:"is_today"`
}

// CommentView is the flat shape of a comment.
type CommentView struct {
	ID         uint   `json:"id"`
	ArticleID  uint   `json:"article_id"`
	Text       string `json:"text"`
	Date       string `json:"date"`
	AuthorName string `json:"author_name"`
}

// Article assembles the view of a single article. The mapping is pure: it
// reads nothing but the record and the process-local clock.
func Article(a models.Article) ArticleView {
	return ArticleView{
		ID:         a.ID,
		Title:      a.Title,
		Date:       a.CreatedAt.Format(DateLayout),
		Excerpt:    Excerpt(a),
		BodyHTML:   BodyHTML(a.Body),
		AuthorID:   a.UserID,
		AuthorName: a.User.Name,
		Category:   a.Category,
		IsToday:    IsToday(a.CreatedAt),
	}
}

// Articles assembles views preserving order.
func Articles(list []models.Article) []ArticleView {
	out := make([]ArticleView, 0, len(list))
	for _, a := range list {
		out = append(out, Article(a))
	}
	return out
}

// Comment assembles the view of a single comment.
func Comment(c models.Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		ArticleID:  c.ArticleID,
		Text:       c.Body,
		Date:       c.CreatedAt.Format(DateLayout),
		AuthorName: c.AuthorName,
	}
}

// Comments assembles views preserving order.
func Comments(list []models.Comment) []CommentView {
	out := make([]CommentView, 0, len(list))
	for _, c := range list {
		out = append(out, Comment(c))
	}
	return out
}

var blockMarkup = regexp.MustCompile(`(?i)<(p|div|ul|ol|h[1-6]|blockquote|pre|table)\b`)

// BodyHTML wraps a plain-text body in a paragraph tag. Bodies that already
// carry block-level markup are passed through unchanged so authored
// paragraphs do not nest.
func BodyHTML(body string) string {
	if blockMarkup.MatchString(body) {
		return body
	}
	return "<p>" + body + "</p>"
}

// Excerpt returns the article's explicit excerpt when one was supplied,
// otherwise the first 100 characters of the body followed by an ellipsis
// marker. Bodies of 100 characters or fewer are returned whole.
func Excerpt(a models.Article) string {
	if s := strings.TrimSpace(a.Excerpt); s != "" {
		return s
	}
	runes := []rune(a.Body)
	if len(runes) <= excerptLimit {
		return a.Body
	}
	return string(runes[:excerptLimit]) + "..."
}

// IsToday reports whether t falls on the current local calendar date.
// Only the date part matters; time of day and sub-day offsets are ignored.
func IsToday(t time.Time) bool {
	now := time.Now()
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
