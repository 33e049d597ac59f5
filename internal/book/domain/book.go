// Package domain defines the book entity and its nested document types.
package domain

// Book statuses. New books start as draft.
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
)

// Requirements captures the authoring brief for a book.
type Requirements struct {
	Topic             string   `json:"topic"`
	TargetAudience    string   `json:"targetAudience"`
	Tone              string   `json:"tone"`
	KeyGoals          []string `json:"keyGoals"`
	PageCountEstimate *int     `json:"pageCountEstimate"`
}

// OutlineEntry is one planned chapter in the book outline.
type OutlineEntry struct {
	ChapterNumber int      `json:"chapterNumber"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	KeyPoints     []string `json:"keyPoints"`
}

// Chapter is one written chapter of the book.
type Chapter struct {
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Reflection    string `json:"reflection"`
}

// Book is the stored document. CreatedAt is epoch milliseconds to match the
// client contract. UserID is the owning user and is set by the server.
type Book struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Title        string         `json:"title"`
	CoverImage   string         `json:"coverImage"`
	Requirements *Requirements  `json:"requirements"`
	Outline      []OutlineEntry `json:"outline"`
	Chapters     []Chapter      `json:"chapters"`
	Status       string         `json:"status"`
	CreatedAt    int64          `json:"createdAt"`
}

// CreateInput is the accepted payload for creating a book. It deliberately has
// no id, user_id, or createdAt fields; the server stamps those.
type CreateInput struct {
	Title        string         `json:"title"`
	CoverImage   string         `json:"coverImage"`
	Requirements *Requirements  `json:"requirements"`
	Outline      []OutlineEntry `json:"outline"`
	Chapters     []Chapter      `json:"chapters"`
	Status       string         `json:"status"`
}
