package extract

import (
	"context"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/transcript"
)

// Extractor pulls reservation fields out of a conversation transcript.
// Implementations must tolerate partial transcripts and return only the
// fields they are confident about; absent fields stay zero.
type Extractor interface {
	Extract(ctx context.Context, turns []transcript.Turn) (booking.Fields, error)
}
