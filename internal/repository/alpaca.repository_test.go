package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/require"
)

type fakeSnapshotClient struct {
	snapshot *marketdata.Snapshot
	err      error
}

func (f fakeSnapshotClient) GetSnapshot(symbol string, req marketdata.GetSnapshotRequest) (*marketdata.Snapshot, error) {
	return f.snapshot, f.err
}

func Test_alpacaRepositoryHandler_FetchQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("uses latest trade and previous close", func(t *testing.T) {
		handler := alpacaRepositoryHandler{
			MdClient: fakeSnapshotClient{
				snapshot: &marketdata.Snapshot{
					LatestTrade:  &marketdata.Trade{Price: 202},
					PrevDailyBar: &marketdata.Bar{Close: 200},
					DailyBar:     &marketdata.Bar{Volume: 1000},
				},
			},
		}

		raw, err := handler.FetchQuote(ctx, "JPM")
		require.NoError(t, err)
		require.Equal(t, "202", raw.Price)
		require.Equal(t, "2.0000", raw.Change)
		require.Equal(t, "1.0000%", raw.ChangePercent)
		require.Equal(t, "1000", raw.Volume)
	})

	t.Run("missing trade is invalid", func(t *testing.T) {
		handler := alpacaRepositoryHandler{
			MdClient: fakeSnapshotClient{snapshot: &marketdata.Snapshot{}},
		}

		_, err := handler.FetchQuote(ctx, "JPM")
		require.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("client error is unavailable", func(t *testing.T) {
		handler := alpacaRepositoryHandler{
			MdClient: fakeSnapshotClient{err: errors.New("connection refused")},
		}

		_, err := handler.FetchQuote(ctx, "JPM")
		require.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("no credentials", func(t *testing.T) {
		require.Nil(t, NewAlpacaRepository("", "", ""))
	})
}
