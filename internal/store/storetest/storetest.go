// Package storetest store.Store 구현체가 공통으로 만족해야 하는 동작을 검증하는 테스트 스위트입니다.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewReport 테스트용 리포트를 생성합니다.
func NewReport(id string, checkedAt time.Time) *model.HealthReport {
	ms := 42.17
	return &model.HealthReport{
		DAGID:         id,
		OverallStatus: model.OverallUnhealthy,
		Nodes: []model.NodeHealthResult{
			{NodeID: "api", NodeName: "API", Status: model.NodeHealthy, ResponseTimeMs: &ms, CheckedAt: checkedAt},
			{NodeID: "db", NodeName: "DB", Status: model.NodeUnreachable, ErrorMessage: "Request timeout", CheckedAt: checkedAt},
		},
		GraphData: model.GraphData{
			Nodes: []model.GraphNode{
				{ID: "api", Label: "API", HealthEndpoint: "http://api/health"},
				{ID: "db", Label: "DB", HealthEndpoint: "http://db/health"},
			},
			Edges: []model.GraphEdge{{From: "api", To: "db"}},
		},
		TraversalOrder: []string{"api", "db"},
		CheckedAt:      checkedAt,
	}
}

// Run newStore로 생성한 저장소에 대해 공통 동작을 검증합니다. newStore는 호출마다 비어 있는 저장소를 반환해야 합니다.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("저장 후 조회 시 동일한 리포트", func(t *testing.T) {
		s := newStore(t)
		want := NewReport("r-1", base)

		require.NoError(t, s.Insert(ctx, want))

		got, err := s.FindByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, want.DAGID, got.DAGID)
		assert.Equal(t, want.OverallStatus, got.OverallStatus)
		assert.Equal(t, want.TraversalOrder, got.TraversalOrder)
		assert.Equal(t, want.GraphData, got.GraphData)
		require.Len(t, got.Nodes, len(want.Nodes))
		for i := range want.Nodes {
			assert.Equal(t, want.Nodes[i].NodeID, got.Nodes[i].NodeID)
			assert.Equal(t, want.Nodes[i].Status, got.Nodes[i].Status)
			assert.Equal(t, want.Nodes[i].ResponseTimeMs, got.Nodes[i].ResponseTimeMs)
			assert.Equal(t, want.Nodes[i].ErrorMessage, got.Nodes[i].ErrorMessage)
			assert.True(t, want.Nodes[i].CheckedAt.Equal(got.Nodes[i].CheckedAt))
		}
		assert.True(t, want.CheckedAt.Equal(got.CheckedAt))
	})

	t.Run("존재하지 않는 리포트는 NotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.FindByID(ctx, "missing")

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("중복 저장은 Conflict", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, NewReport("dup", base)))

		err := s.Insert(ctx, NewReport("dup", base.Add(time.Second)))

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Conflict))
	})

	t.Run("nil 리포트 저장 거부", func(t *testing.T) {
		s := newStore(t)
		assert.Error(t, s.Insert(ctx, nil))
	})

	t.Run("종료된 요청의 리포트는 저장하지 않음", func(t *testing.T) {
		s := newStore(t)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		err := s.Insert(canceled, NewReport("canceled", base))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Timeout))

		expired, cancel2 := context.WithDeadline(ctx, base)
		defer cancel2()
		err = s.Insert(expired, NewReport("expired", base))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.Timeout))

		got, err := s.ListRecent(ctx, store.DefaultHistoryLimit)
		require.NoError(t, err)
		assert.Empty(t, got)
		_, err = s.FindByID(ctx, "canceled")
		assert.True(t, apperrors.Is(err, apperrors.NotFound))
	})

	t.Run("최신순 정렬", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Insert(ctx, NewReport("old", base)))
		require.NoError(t, s.Insert(ctx, NewReport("newest", base.Add(2*time.Hour))))
		require.NoError(t, s.Insert(ctx, NewReport("middle", base.Add(time.Hour))))

		got, err := s.ListRecent(ctx, store.DefaultHistoryLimit)
		require.NoError(t, err)

		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.DAGID)
		}
		assert.Equal(t, []string{"newest", "middle", "old"}, ids)
	})

	t.Run("최대 100개까지만 반환", func(t *testing.T) {
		s := newStore(t)
		for i := 0; i < 105; i++ {
			require.NoError(t, s.Insert(ctx, NewReport(fmt.Sprintf("r-%03d", i), base.Add(time.Duration(i)*time.Minute))))
		}

		got, err := s.ListRecent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, got, store.DefaultHistoryLimit)
		assert.Equal(t, "r-104", got[0].DAGID)
		assert.Equal(t, "r-005", got[len(got)-1].DAGID)

		got, err = s.ListRecent(ctx, 1000)
		require.NoError(t, err)
		assert.Len(t, got, store.DefaultHistoryLimit)

		got, err = s.ListRecent(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("빈 저장소", func(t *testing.T) {
		s := newStore(t)

		got, err := s.ListRecent(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("저장 후 원본을 변경해도 저장된 리포트는 불변", func(t *testing.T) {
		s := newStore(t)
		r := NewReport("immutable", base)
		require.NoError(t, s.Insert(ctx, r))

		r.OverallStatus = model.OverallCritical
		r.TraversalOrder[0] = "mutated"

		got, err := s.FindByID(ctx, "immutable")
		require.NoError(t, err)
		assert.Equal(t, model.OverallUnhealthy, got.OverallStatus)
		assert.Equal(t, "api", got.TraversalOrder[0])
	})
}
