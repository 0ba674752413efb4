package core

// ID is the stable identifier of a row in the latest_news table.
// IDs are assigned by the ingestion system and never change.
type ID int64

// Article represents one news item as stored in latest_news.
// Only the columns the maintenance jobs read or write are modeled here.
type Article struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"ai_summary"`
	URL       string    `json:"url"`
	Source    string    `json:"source"`
	Embedding []float32 `json:"embedding"`
}

// EmbedCandidate is the projection returned by the embedding-backfill
// selector: an article with an AI summary but no embedding yet.
type EmbedCandidate struct {
	ID      ID     `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"ai_summary"`
}

// RepairCandidate is the projection returned by the URL-repair selector:
// an article whose url still points at a redirector.
type RepairCandidate struct {
	ID    ID     `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}
