package gorm

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBufferLogger(buf *bytes.Buffer, slow time.Duration) *Logger {
	zl := zerolog.New(buf)

	l := New(slow)
	l.logger = func() *zerolog.Logger { return &zl }

	return l
}

func sqlFunc() (string, int64) { return "SELECT 1", 1 }

func TestTrace(t *testing.T) {
	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		slow      time.Duration
		begin     time.Time
		err       error
		wantLevel string
	}{
		{
			name:      "error is logged",
			level:     gormlogger.Warn,
			begin:     time.Now(),
			err:       errors.New("boom"),
			wantLevel: "error",
		},
		{
			name:  "record not found is quiet",
			level: gormlogger.Warn,
			begin: time.Now(),
			err:   gorm.ErrRecordNotFound,
		},
		{
			name:      "slow query warns",
			level:     gormlogger.Warn,
			slow:      time.Millisecond,
			begin:     time.Now().Add(-time.Second),
			wantLevel: "warn",
		},
		{
			name:  "fast query at warn level is quiet",
			level: gormlogger.Warn,
			slow:  time.Hour,
			begin: time.Now(),
		},
		{
			name:      "info level traces every query",
			level:     gormlogger.Info,
			begin:     time.Now(),
			wantLevel: "debug",
		},
		{
			name:  "silent",
			level: gormlogger.Silent,
			begin: time.Now(),
			err:   errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := newBufferLogger(&buf, tt.slow).LogMode(tt.level)
			l.Trace(context.Background(), tt.begin, sqlFunc, tt.err)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, buf.String(), "SELECT 1")
		})
	}
}

func TestLogModeDoesNotMutate(t *testing.T) {
	var buf bytes.Buffer

	l := newBufferLogger(&buf, 0)
	_ = l.LogMode(gormlogger.Info)

	l.Info(context.Background(), "hidden %d", 1)
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}
