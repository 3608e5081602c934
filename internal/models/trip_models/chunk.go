package trip_models

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

type DetailLevel string

const (
	DetailComprehensive DetailLevel = "comprehensive"
	DetailBalanced      DetailLevel = "balanced"
	DetailSimplified    DetailLevel = "simplified"
)

// Chunk is a contiguous day range generated via one AI request.
// StartDay and EndDay are 1-based and inclusive. Chunks are immutable
// once produced by the segmenter.
type Chunk struct {
	ID          string      `json:"id"`
	StartDay    int         `json:"start_day"`
	EndDay      int         `json:"end_day"`
	Priority    Priority    `json:"priority"`
	FocusTheme  string      `json:"focus_theme"`
	DetailLevel DetailLevel `json:"detail_level"`
}

func (c Chunk) Span() int {
	return c.EndDay - c.StartDay + 1
}

// SegmentationPlan is produced once per trip and consumed once by the
// generation loop.
type SegmentationPlan struct {
	NeedsChunking   bool    `json:"needs_chunking"`
	Chunks          []Chunk `json:"chunks"`
	EstimatedTokens int     `json:"estimated_tokens"`
}

// ChunkInfo is the chunk metadata attached to a chunk-scoped trip view.
type ChunkInfo struct {
	ID             string      `json:"id"`
	FocusTheme     string      `json:"focus_theme"`
	DetailLevel    DetailLevel `json:"detail_level"`
	StartDay       int         `json:"start_day"`
	EndDay         int         `json:"end_day"`
	IsContinuation bool        `json:"is_continuation"`
}

// ChunkTrip is the view of a trip narrowed to a single chunk: the spec
// duration and start date are rewritten to the chunk's span.
type ChunkTrip struct {
	Spec  TripSpec  `json:"spec"`
	Chunk ChunkInfo `json:"chunk"`
}
