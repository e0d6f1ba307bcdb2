package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
)

func TestAuditAppendAndOrder(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC()
	actions := []string{model.ActionLogin, model.ActionAddPatient, model.ActionLogout}
	for i, action := range actions {
		require.NoError(t, repo.Create(ctx, &model.AuditLog{
			Username:  "admin",
			Role:      model.RoleAdmin,
			Action:    action,
			Detail:    "detail",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	logs, err := repo.List(ctx, model.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, logs, len(actions))

	for i, entry := range logs {
		assert.Equal(t, actions[i], entry.Action)
		if i > 0 {
			assert.False(t, entry.Timestamp.Before(logs[i-1].Timestamp))
		}
	}
}

func TestAuditListFilters(t *testing.T) {
	repo := NewAuditRepository(newTestDB(t))
	ctx := context.Background()

	entries := []*model.AuditLog{
		{Username: "admin", Role: model.RoleAdmin, Action: model.ActionLogin, Detail: "", Timestamp: time.Now().UTC()},
		{Username: "alice_recep", Role: model.RoleReceptionist, Action: model.ActionAddPatient, Detail: "", Timestamp: time.Now().UTC()},
		{Username: "admin", Role: model.RoleAdmin, Action: model.ActionAddPatient, Detail: "", Timestamp: time.Now().UTC()},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	byAction, err := repo.List(ctx, model.AuditFilter{Action: model.ActionAddPatient})
	require.NoError(t, err)
	assert.Len(t, byAction, 2)

	byBoth, err := repo.List(ctx, model.AuditFilter{Action: model.ActionAddPatient, Role: string(model.RoleAdmin)})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	assert.Equal(t, "admin", byBoth[0].Username)
}

func TestUserSeedAndLookup(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	hasher := fakeHasher{}
	require.NoError(t, SeedUsers(ctx, repo, hasher))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	user, err := repo.GetByUsername(ctx, "dr_bob")
	require.NoError(t, err)
	assert.Equal(t, model.RoleDoctor, user.Role)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.Error(t, err)

	// Seeding is create-if-absent.
	require.NoError(t, SeedUsers(ctx, repo, hasher))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error  { return nil }
