package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchRecord(t *testing.T) {
	now := time.Now()
	rec := NewSearchRecord("r1", "u1", "mountains", now)

	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "mountains", rec.Term)
	assert.Equal(t, now, rec.CreatedAt)
}

func TestValidateSearchRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *SearchRecord
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid record",
			record: &SearchRecord{
				ID:        "r1",
				UserID:    "u1",
				Term:      "mountains",
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: true,
			errMsg:  "nil",
		},
		{
			name: "missing ID",
			record: &SearchRecord{
				UserID: "u1",
				Term:   "mountains",
			},
			wantErr: true,
			errMsg:  "ID",
		},
		{
			name: "missing UserID",
			record: &SearchRecord{
				ID:   "r1",
				Term: "mountains",
			},
			wantErr: true,
			errMsg:  "UserID",
		},
		{
			name: "missing Term",
			record: &SearchRecord{
				ID:     "r1",
				UserID: "u1",
			},
			wantErr: true,
			errMsg:  "Term",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearchRecord(tt.record)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
