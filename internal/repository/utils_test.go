package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pondside/AnglerBot_Go/internal/domain"
	"github.com/pondside/AnglerBot_Go/internal/logger"
)

type stubTx struct {
	err    error
	called bool
}

func (s *stubTx) Rollback(ctx context.Context) error {
	s.called = true
	return s.err
}

func TestSafeRollback(t *testing.T) {
	tests := []struct {
		name        string
		rollbackErr error
		wantLogged  bool
	}{
		{name: "clean rollback", rollbackErr: nil, wantLogged: false},
		{name: "already committed", rollbackErr: errors.New(domain.ErrMsgTxClosed), wantLogged: false},
		{name: "rollback failure is logged", rollbackErr: errors.New("conn broken"), wantLogged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.InitLoggerWithWriter(logger.DevelopmentConfig(), &buf)

			tx := &stubTx{err: tt.rollbackErr}
			SafeRollback(context.Background(), tx)

			assert.True(t, tx.called)
			if tt.wantLogged {
				assert.Contains(t, buf.String(), "Failed to rollback transaction")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
