package util

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParallelOutput(t *testing.T) {
	out := NewParallelOutput()
	fmt.Fprintf(out, "episode %d\n", 1)
	require.Equal(t, "episode 1", out.Get())

	fmt.Fprint(out, "episode 2\n\n")
	require.Equal(t, "episode 2", out.Get())
}

func TestTerminalPrinter(t *testing.T) {
	buf := new(bytes.Buffer)
	printer := NewTerminalPrinter(buf, time.Hour)
	first := printer.NewOutput()
	second := printer.NewOutput()
	printer.Start(context.Background())

	first.Set("random: done")
	second.Set("wildcard: done")
	printer.Stop()
	printer.Stop()

	require.Contains(t, buf.String(), "random: done")
	require.Contains(t, buf.String(), "wildcard: done")
}

func TestSaveJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, SaveJson(file, map[string]int{"size": 10}))

	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	require.JSONEq(t, `{"size": 10}`, string(bs))
}

func TestCopy(t *testing.T) {
	s := []float64{1, 2}
	c := CopyFloatSlice(s)
	c[0] = 5
	require.Equal(t, 1.0, s[0])

	i := []int{3}
	ci := CopyIntSlice(i)
	ci[0] = 4
	require.Equal(t, 3, i[0])
}
