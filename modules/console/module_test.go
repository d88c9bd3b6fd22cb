package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, m *Module) {
	t.Helper()
	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("console did not finish")
	}
}

func TestModule_Metadata(t *testing.T) {
	m := NewModule(strings.NewReader(""), &bytes.Buffer{}, "light", &mockLogger{})

	assert.Equal(t, "console", m.Name())
	assert.Equal(t, []string{"calculator"}, m.Dependencies())
	assert.EqualError(t, m.Start(context.Background()), "calculator dependency not set")
	assert.NoError(t, m.Stop(context.Background()))
}

func TestModule_QuitEndsSession(t *testing.T) {
	calc := &fakeCalculator{}
	var out bytes.Buffer
	m := NewModule(strings.NewReader("+ 2 3\nhistory\nquit\n+ 9 9\n"), &out, "light", &mockLogger{})
	m.calcPort = calc

	require.NoError(t, m.Start(context.Background()))
	waitDone(t, m)
	require.NoError(t, m.Stop(context.Background()))

	assert.Len(t, calc.requests, 1, "lines after quit must be ignored")
	assert.Contains(t, out.String(), "Result: 5.00")
	assert.Contains(t, out.String(), "Bye.")
}

func TestModule_EOFEndsSession(t *testing.T) {
	calc := &fakeCalculator{}
	var out bytes.Buffer
	m := NewModule(strings.NewReader("* 4 2\n- 1 1"), &out, "dark", &mockLogger{})
	m.calcPort = calc

	require.NoError(t, m.Start(context.Background()))
	waitDone(t, m)

	assert.Len(t, calc.requests, 2)
	assert.NoError(t, m.Stop(context.Background()))
}

func TestModule_StopInterruptsBlockedRead(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	m := NewModule(r, &bytes.Buffer{}, "light", &mockLogger{})
	m.calcPort = &fakeCalculator{}
	require.NoError(t, m.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))
	waitDone(t, m)

	// a second Stop is a no-op
	assert.NoError(t, m.Stop(ctx))
}
