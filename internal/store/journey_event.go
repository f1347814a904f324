package store

import (
	"context"
	"fmt"

	"github.com/rkapur/pathwise/ent"
	"github.com/rkapur/pathwise/ent/journeyevent"
)

func (r *eventRepo) AppendJourneyEvent(ctx context.Context, data JourneyEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.JourneyEvent.Create().
		SetSequence(seqNum).
		SetJourneyID(data.JourneyID).
		SetTopic(data.Topic).
		SetStage(data.Stage).
		SetAction(data.Action).
		SetPayload(data.Payload).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save journey event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryJourneySummaries(ctx context.Context, opts QueryOpts) ([]JourneySummary, error) {
	rows, err := r.client.JourneyEvent.Query().
		Order(ent.Asc(journeyevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query journey events: %w", err)
	}

	// Fold events into one summary per journey, preserving start order.
	byID := make(map[string]*JourneySummary)
	firstSeq := make(map[string]int64)
	var order []string
	for _, row := range rows {
		sum, ok := byID[row.JourneyID]
		if !ok {
			sum = &JourneySummary{
				JourneyID: row.JourneyID,
				Topic:     row.Topic,
				StartedAt: row.Timestamp,
			}
			byID[row.JourneyID] = sum
			firstSeq[row.JourneyID] = row.Sequence
			order = append(order, row.JourneyID)
		}
		switch row.Action {
		case "confirmed":
			sum.Confirmed++
			sum.LastStage = row.Stage
			sum.Failed = false
		case "ready":
			sum.LastStage = row.Stage
			sum.Failed = false
		case "failed":
			sum.Failed = true
		case "chat":
			sum.ChatActive = true
		}
	}

	// Newest journey first. Sequence and time filters apply to the
	// journey's first event, so a journey is in or out as a whole.
	out := make([]JourneySummary, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		sum := byID[id]
		if opts.After > 0 && firstSeq[id] <= opts.After {
			continue
		}
		if opts.Before > 0 && firstSeq[id] >= opts.Before {
			continue
		}
		if !opts.From.IsZero() && sum.StartedAt.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && sum.StartedAt.After(opts.To) {
			continue
		}
		out = append(out, *sum)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}
