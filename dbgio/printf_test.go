package dbgio

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrintfConsole(t *testing.T) (*Console, *Buffer) {
	t.Helper()
	b := NewBuffer()
	con := NewConsole(b)
	require.NoError(t, con.Select("buffer"))
	con.Enable()
	return con, b
}

func TestPrintf_FormatsAndTranslates(t *testing.T) {
	con, b := newPrintfConsole(t)

	n, err := con.Printf("bank %d: %s\n", 3, "ready")
	require.NoError(t, err)

	assert.Equal(t, len("bank 3: ready\n"), n)
	assert.Equal(t, "bank 3: ready\r\n", string(b.Output()))
}

func TestPrintf_TruncatesAtScratchCapacity(t *testing.T) {
	con, b := newPrintfConsole(t)
	long := strings.Repeat("x", printfBufSize+500)

	n, err := con.Printf("%s", long)
	require.NoError(t, err)

	assert.Equal(t, printfBufSize, n, "overlong messages are cut, not rejected")
	assert.Len(t, b.Output(), printfBufSize)
}

func TestPrintf_ShortMessageUnaffectedByTruncation(t *testing.T) {
	con, b := newPrintfConsole(t)
	msg := strings.Repeat("y", printfBufSize)

	n, err := con.Printf("%s", msg)
	require.NoError(t, err)

	assert.Equal(t, printfBufSize, n)
	assert.Equal(t, msg, string(b.Output()))
}

// Printf is the one console entry point that may be hit from multiple
// goroutines at once (think interrupt-context logging), so its scratch
// buffers must not be shared between concurrent calls.
func TestPrintf_ConcurrentCallsDoNotCorrupt(t *testing.T) {
	con, b := newPrintfConsole(t)

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				_, err := con.Printf("g%02d message %03d\n", id, i)
				assert.NoError(t, err)
			}
		}(g)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(string(b.Output()), "\r\n"), "\r\n")
	require.Len(t, lines, goroutines*perGoroutine)
	for _, line := range lines {
		assert.Regexp(t, `^g\d{2} message \d{3}$`, line, "interleaved scratch would garble a line")
	}
}
