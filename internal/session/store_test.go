package session

import (
	"context"
	"testing"
	"time"

	"civicvoice-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testUser(role entity.UserRole) *entity.User {
	return &entity.User{
		Id:        uuid.New(),
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      role,
		Status:    entity.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestMemoryStoreSaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	user := testUser(entity.UserRoleCivilian)
	rec := NewRecord("token-abc", user)

	assert.NoError(t, store.Save(ctx, rec))

	loaded := store.Load(ctx, "token-abc")
	assert.NotNil(t, loaded)
	assert.Equal(t, "token-abc", loaded.AccessToken)
	assert.Equal(t, user.Email, loaded.User.Email)
	assert.Equal(t, "CIVILIAN", loaded.User.UserType)

	assert.NoError(t, store.Clear(ctx, "token-abc"))
	assert.Nil(t, store.Load(ctx, "token-abc"))
}

func TestMemoryStoreLoadMissingToken(t *testing.T) {
	store := NewMemoryStore()
	assert.Nil(t, store.Load(context.Background(), "never-saved"))
}

func TestMemoryStoreCorruptPayloadDegradesToNil(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	cases := map[string][]byte{
		"not json":        []byte("{{{{"),
		"wrong shape":     []byte(`"just a string"`),
		"missing token":   []byte(`{"user":{"id":"` + uuid.NewString() + `","email":"a@b.c","user_type":"ADMIN"}}`),
		"missing user":    []byte(`{"access_token":"tok"}`),
		"empty object":    []byte(`{}`),
		"null literal":    []byte(`null`),
		"truncated value": []byte(`{"access_token":"tok","user":{"id":`),
	}

	for name, raw := range cases {
		store.put("bad-token", raw)
		assert.Nilf(t, store.Load(ctx, "bad-token"), "case %q should load as nil", name)
	}
}

func TestMemoryStoreClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.NoError(t, store.Clear(ctx, "ghost"))
	assert.NoError(t, store.Clear(ctx, "ghost"))
}

func TestRecordHasRole(t *testing.T) {
	rec := NewRecord("tok", testUser(entity.UserRoleAdmin))

	assert.True(t, rec.HasRole(entity.UserRoleAdmin))
	assert.False(t, rec.HasRole(entity.UserRoleCivilian))

	var nilRec *Record
	assert.False(t, nilRec.HasRole(entity.UserRoleAdmin))

	assert.False(t, (&Record{AccessToken: "tok"}).HasRole(entity.UserRoleAdmin))
}
