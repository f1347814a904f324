package store

import (
	"context"
	"fmt"

	"github.com/rkapur/pathwise/ent"
	"github.com/rkapur/pathwise/ent/chatevent"
)

func (r *eventRepo) AppendChatTurn(ctx context.Context, data ChatEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.ChatEvent.Create().
		SetSequence(seqNum).
		SetJourneyID(data.JourneyID).
		SetRole(data.Role).
		SetContent(data.Content).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save chat event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryChatTurns(ctx context.Context, journeyID string, opts QueryOpts) ([]ChatEventRecord, error) {
	q := r.client.ChatEvent.Query().
		Where(chatevent.JourneyID(journeyID)).
		Order(ent.Asc(chatevent.FieldSequence))

	if opts.After > 0 {
		q = q.Where(chatevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		q = q.Where(chatevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		q = q.Where(chatevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		q = q.Where(chatevent.TimestampLTE(opts.To))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query chat events: %w", err)
	}

	out := make([]ChatEventRecord, len(rows))
	for i, row := range rows {
		out[i] = ChatEventRecord{
			ID:        row.ID,
			Sequence:  row.Sequence,
			Timestamp: row.Timestamp,
			ChatEventData: ChatEventData{
				JourneyID: row.JourneyID,
				Role:      row.Role,
				Content:   row.Content,
			},
		}
	}
	return out, nil
}
