//go:build integration

package postgres_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ssantos21/mercurylayer/internal/store/postgres"
	redispkg "github.com/ssantos21/mercurylayer/internal/store/redis"
	"github.com/ssantos21/mercurylayer/internal/transfer"
)

func authKey(prefix byte, fill byte) []byte {
	k := make([]byte, 33)
	k[0] = prefix
	for i := 1; i < len(k); i++ {
		k[i] = fill
	}
	return k
}

func keyShare(fill byte) []byte {
	s := make([]byte, 32)
	for i := range s {
		s[i] = fill
	}
	return s
}

func newEngine(t *testing.T, db *postgres.DB) (*transfer.Service, *transfer.Coordinator, *postgres.TransferRepo) {
	t.Helper()
	logger := slog.Default()
	transferRepo := postgres.NewTransferRepo(db)
	batchRepo := postgres.NewBatchRepo(db)
	coordinator := transfer.NewCoordinator(batchRepo, logger)
	svc := transfer.NewService(db, transferRepo, coordinator, redispkg.NewInMemoryStream(), logger)
	return svc, coordinator, transferRepo
}

func TestIntegration_UniquenessUnderReadmission(t *testing.T) {
	db := setupTestContainer(t)
	svc, _, repo := newEngine(t, db)
	ctx := context.Background()

	keyA := authKey(0x02, 0xAA)

	_, err := svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x01),
	})
	require.NoError(t, err)

	_, err = svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x02),
	})
	require.NoError(t, err)

	count, err := repo.CountByCoin(ctx, "coin1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "exactly one live record per coin")

	rec, err := repo.Get(ctx, "coin1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, keyShare(0x02), rec.KeyShare, "the latest admission wins")
	assert.True(t, rec.Coherent())
}

func TestIntegration_ReadmissionDiscardsPriorMessage(t *testing.T) {
	db := setupTestContainer(t)
	svc, _, repo := newEngine(t, db)
	ctx := context.Background()

	keyA := authKey(0x02, 0xAA)

	_, err := svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x01),
	})
	require.NoError(t, err)
	require.NoError(t, svc.AttachMessage(ctx, "coin1", keyA, []byte("blob1")))

	_, err = svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x02),
	})
	require.NoError(t, err)

	rec, err := repo.Get(ctx, "coin1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.EncryptedMessage, "a superseding admission discards the old message")
}

func TestIntegration_SoloAdmitAttachLookup(t *testing.T) {
	db := setupTestContainer(t)
	svc, _, repo := newEngine(t, db)
	ctx := context.Background()

	keyA := authKey(0x02, 0xAA)

	_, err := svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x01),
	})
	require.NoError(t, err)

	require.NoError(t, svc.AttachMessage(ctx, "coin1", keyA, []byte("blob1")))

	rec, err := repo.Get(ctx, "coin1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, []byte("blob1"), rec.EncryptedMessage)
	assert.False(t, rec.Locked)
	assert.True(t, rec.UpdatedAt.After(rec.CreatedAt), "attach bumps updated_at")

	m, err := svc.LookupBatch(ctx, "coin1")
	require.NoError(t, err)
	assert.Nil(t, m, "solo transfer has no batch membership")
}

func TestIntegration_BatchTimeSharedAcrossJoiners(t *testing.T) {
	db := setupTestContainer(t)
	svc, coordinator, repo := newEngine(t, db)
	ctx := context.Background()

	batchID := "batchX"

	_, err := svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: authKey(0x02, 0xAA),
		KeyShare:         keyShare(0x01),
		BatchID:          &batchID,
	})
	require.NoError(t, err)

	_, err = svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin2",
		RecipientAuthKey: authKey(0x03, 0xBB),
		KeyShare:         keyShare(0x02),
		BatchID:          &batchID,
	})
	require.NoError(t, err)

	rec1, err := repo.Get(ctx, "coin1")
	require.NoError(t, err)
	rec2, err := repo.Get(ctx, "coin2")
	require.NoError(t, err)

	require.NotNil(t, rec1.BatchTime)
	require.NotNil(t, rec2.BatchTime)
	assert.True(t, rec1.BatchTime.Equal(*rec2.BatchTime), "all members share one commencement time")
	assert.True(t, rec1.Locked)
	assert.True(t, rec2.Locked)

	locked, err := coordinator.IsLocked(ctx, batchID)
	require.NoError(t, err)
	assert.True(t, locked)

	m, err := svc.LookupBatch(ctx, "coin1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, batchID, m.BatchID)
	assert.True(t, m.BatchTime.Equal(*rec1.BatchTime))
}

func TestIntegration_ConcurrentJoinersMintExactlyOneTime(t *testing.T) {
	db := setupTestContainer(t)
	_, coordinator, _ := newEngine(t, db)
	ctx := context.Background()

	const joiners = 16
	times := make([]time.Time, joiners)

	var g errgroup.Group
	for i := 0; i < joiners; i++ {
		i := i
		g.Go(func() error {
			t, err := coordinator.JoinOrGetBatchTime(ctx, "batchY")
			if err != nil {
				return err
			}
			times[i] = t
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 1; i < joiners; i++ {
		assert.True(t, times[0].Equal(times[i]), "joiner %d saw a different batch time", i)
	}
}

func TestIntegration_StaleWriterCannotAttach(t *testing.T) {
	db := setupTestContainer(t)
	svc, _, repo := newEngine(t, db)
	ctx := context.Background()

	keyA := authKey(0x02, 0xAA)
	keyB := authKey(0x03, 0xBB)

	_, err := svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x01),
	})
	require.NoError(t, err)

	// A new admission for a different recipient supersedes keyA's record.
	_, err = svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyB,
		KeyShare:         keyShare(0x02),
	})
	require.NoError(t, err)

	err = svc.AttachMessage(ctx, "coin1", keyA, []byte("stale blob"))
	assert.ErrorIs(t, err, transfer.ErrNotFound)

	rec, err := repo.Get(ctx, "coin1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Nil(t, rec.EncryptedMessage, "the stale writer must not touch the new record")
	assert.Equal(t, keyB, rec.RecipientAuthKey)
}

func TestIntegration_DuplicateDetectionRoundTrip(t *testing.T) {
	db := setupTestContainer(t)
	svc, _, _ := newEngine(t, db)
	ctx := context.Background()

	keyA := authKey(0x02, 0xAA)
	keyB := authKey(0x03, 0xBB)
	batchX := "batchX"
	batchZ := "batchZ"

	// Before any admission: clear.
	found, err := svc.Exists(ctx, "coin1", keyA, &batchX)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = svc.Admit(ctx, transfer.AdmitParams{
		StatechainID:     "coin1",
		RecipientAuthKey: keyA,
		KeyShare:         keyShare(0x01),
		BatchID:          &batchX,
	})
	require.NoError(t, err)

	found, err = svc.Exists(ctx, "coin1", keyA, &batchX)
	require.NoError(t, err)
	assert.True(t, found)

	// Different recipient key: clear.
	found, err = svc.Exists(ctx, "coin1", keyB, &batchX)
	require.NoError(t, err)
	assert.False(t, found)

	// Batch membership is an exact-match filter.
	found, err = svc.Exists(ctx, "coin1", keyA, &batchZ)
	require.NoError(t, err)
	assert.False(t, found)

	// Without a batch filter the (coin, key) pair still matches.
	found, err = svc.Exists(ctx, "coin1", keyA, nil)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestIntegration_SchemaRejectsIncoherentRows(t *testing.T) {
	db := setupTestContainer(t)
	ctx := context.Background()

	// locked without a batch id violates the lock coherence constraint.
	_, err := db.ExecContext(ctx, `
		INSERT INTO statechain_transfer (statechain_id, new_user_auth_public_key, x1, locked)
		VALUES ('badcoin', '\x02', '\x00', TRUE)
	`)
	assert.Error(t, err)

	// batch id without batch time violates the batch time constraint.
	_, err = db.ExecContext(ctx, `
		INSERT INTO statechain_transfer (statechain_id, new_user_auth_public_key, x1, batch_id, locked)
		VALUES ('badcoin', '\x02', '\x00', 'batchX', TRUE)
	`)
	assert.Error(t, err)
}
