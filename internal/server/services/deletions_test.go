package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecentDeletions(t *testing.T) {
	db, _ := newSQLMockDB(t)

	now := time.Now().UTC()
	repo := &fakeAuditsRepo{recent: []models.DeletionAuditEntry{
		{ID: 1, AssetID: uuid.New(), UserID: "u1", Checksum: "aabb", ChangedOn: now.Add(-time.Minute)},
		{ID: 2, AssetID: uuid.New(), UserID: "u1", Checksum: "ccdd", ChangedOn: now},
	}}
	s := NewDeletionReader(db, &fakeRepoManager{au: repo})

	got, err := s.ListRecentDeletions(context.Background(), 2*time.Minute)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "aabb", got[0].Checksum)
	assert.Equal(t, 2*time.Minute, repo.gotLookback)
}

func TestListRecentDeletions_InvalidLookback(t *testing.T) {
	db, _ := newSQLMockDB(t)
	repo := &fakeAuditsRepo{}
	s := NewDeletionReader(db, &fakeRepoManager{au: repo})

	for _, lb := range []time.Duration{0, -time.Minute} {
		_, err := s.ListRecentDeletions(context.Background(), lb)
		assert.ErrorIs(t, err, common.ErrInvalidLookback)
	}
	assert.Equal(t, 0, repo.selects)
}

func TestListRecentDeletions_ConnectionLoss(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewDeletionReader(db, &fakeRepoManager{au: &fakeAuditsRepo{recentErr: sql.ErrConnDone}})

	_, err := s.ListRecentDeletions(context.Background(), time.Minute)
	assert.ErrorIs(t, err, common.ErrConnection)
}
