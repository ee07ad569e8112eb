package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransferRecord_Coherent(t *testing.T) {
	batchID := "batchX"
	batchTime := time.Now().UTC()

	tests := []struct {
		name string
		rec  TransferRecord
		want bool
	}{
		{"solo unlocked", TransferRecord{}, true},
		{"batched locked", TransferRecord{BatchID: &batchID, BatchTime: &batchTime, Locked: true}, true},
		{"batched but unlocked", TransferRecord{BatchID: &batchID, BatchTime: &batchTime}, false},
		{"locked without batch", TransferRecord{Locked: true}, false},
		{"batch id without time", TransferRecord{BatchID: &batchID, Locked: true}, false},
		{"time without batch id", TransferRecord{BatchTime: &batchTime}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Coherent())
		})
	}
}

func TestTransferRecord_Batched(t *testing.T) {
	batchID := "batchX"
	assert.False(t, (&TransferRecord{}).Batched())
	assert.True(t, (&TransferRecord{BatchID: &batchID}).Batched())
}

func TestValidateAuthKey(t *testing.T) {
	valid := append([]byte{0x02}, make([]byte, 32)...)
	assert.NoError(t, ValidateAuthKey(valid))

	valid[0] = 0x03
	assert.NoError(t, ValidateAuthKey(valid))

	assert.Error(t, ValidateAuthKey(nil))
	assert.Error(t, ValidateAuthKey(make([]byte, 32)))
	assert.Error(t, ValidateAuthKey(append([]byte{0x04}, make([]byte, 32)...)))
}

func TestValidateKeyShare(t *testing.T) {
	assert.NoError(t, ValidateKeyShare(make([]byte, 32)))
	assert.Error(t, ValidateKeyShare(nil))
	assert.Error(t, ValidateKeyShare(make([]byte, 31)))
	assert.Error(t, ValidateKeyShare(make([]byte, 33)))
}
