package billnumber_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiranapos/kirana-api/pkg/billnumber"
)

func TestFormat(t *testing.T) {
	day := time.Date(2026, 8, 28, 14, 30, 0, 0, time.Local)
	assert.Equal(t, "KB-20260828-00042", billnumber.Format("KB", day, 42))
}

func TestFormat_SequenceWiderThanPadding(t *testing.T) {
	day := time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local)
	assert.Equal(t, "KB-20260102-123456", billnumber.Format("KB", day, 123456))
}
