package diag

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	line := Render(LevelInfo, "transport bound", "name", "uart", "attempt", 2, "took", 15*time.Millisecond)
	assert.Equal(t, "INF transport bound name=uart attempt=2 took=15ms", line)

	line = Render(LevelError, "write failed", "error", errors.New("closed"), "ok", false, "n", uint32(7))
	assert.Equal(t, "ERR write failed error=closed ok=false n=7", line)

	assert.Equal(t, "WRN odd !BADKEY=1", Render(LevelWarn, "odd", 1))
	assert.Equal(t, "DBG k !BADKEY=v", Render(LevelDebug, "k", 3, "v"))
	assert.Equal(t, "DBG x v=?", Render(LevelDebug, "x", "v", struct{}{}))
}

func TestLineLoggerFiltersLevel(t *testing.T) {
	var lines []string
	log := NewLineLogger(func(s string) { lines = append(lines, s) }, LevelInfo)

	log.Debug("hidden")
	log.Info("shown", "n", 1)
	log.Warn("warned")
	log.Error("failed")

	assert.Equal(t, []string{"INF shown n=1", "WRN warned", "ERR failed"}, lines)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("x")
	log.Info("x")
	log.Warn("x")
	log.Error("x")
	assert.Equal(t, "???", Level(9).String())
}
