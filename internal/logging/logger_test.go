package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"trace", logrus.TraceLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tc := range tests {
		if got := GetLevel(tc.in); got != tc.want {
			t.Errorf("GetLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestCombinedWriter(t *testing.T) {
	var a, b bytes.Buffer
	cw := NewCombinedWriter(&a, &b)

	n, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

func TestCombinedWriter_MergesErrors(t *testing.T) {
	var ok bytes.Buffer
	e1, e2 := errors.New("first"), errors.New("second")
	cw := NewCombinedWriter(failingWriter{e1}, &ok, failingWriter{e2})

	_, err := cw.Write([]byte("x"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Equal(t, "x", ok.String())
}

func TestSetup_File(t *testing.T) {
	out, level := logrus.StandardLogger().Out, logrus.GetLevel()
	t.Cleanup(func() {
		logrus.SetOutput(out)
		logrus.SetLevel(level)
	})

	path := filepath.Join(t.TempDir(), "familyfit")
	closer := Setup(SetupParams{LogFileName: path, LogLevel: "warn"})
	logrus.Info("dropped")
	logrus.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}
