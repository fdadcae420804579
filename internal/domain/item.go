package domain

// NewsItem is the core entity flowing through every pipeline stage. Link and
// PubDate are fixed at ingestion; the remaining fields are enrichments added
// by downstream stages.
type NewsItem struct {
	Title       string
	Description string
	Link        string
	PubDate     string // provider-native RFC-1123Z timestamp, parsed lazily
	Domain      string
	SourceName  string // falls back to Domain when the publisher is unmapped
	PrintScore  *float64
	Judgment    *Judgment
}

// Judgment captures the structured classifier verdict for one item.
type Judgment struct {
	PrintScore   float64
	UtilityScore float64
	TotalScore   float64
	Include      bool
	Reason       string
}

// Result is the terminal pipeline state handed to the presentation
// collaborator: the ordered item list plus the parameters that produced it.
type Result struct {
	Items   []NewsItem
	Queries []string
	Window  TimeWindow
	Judged  bool
}
