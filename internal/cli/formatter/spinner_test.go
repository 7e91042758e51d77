package formatter

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var buf syncBuffer
	stop := StartSpinner(&buf, "explaining run")
	time.Sleep(200 * time.Millisecond)
	stop()
	stop()

	out := stripANSI(buf.String())
	assert.Contains(t, out, "explaining run")
	assert.Contains(t, buf.String(), "\r\033[K")
}
