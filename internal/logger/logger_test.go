package logger

import (
	"testing"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Encoding: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Config{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)

	_, err = New(Config{Encoding: "xml"})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	l, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestSetReachesEngine(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	assert.Equal(t, core, Get().Core())

	v := rel.NewVector(att.Field{Name: "it", Kind: att.TypeInt64}, att.I64(1), att.I64(2))
	rel.Materialize(rel.AsLazy(v))
	assert.Equal(t, 1, logs.FilterMessage("materialized sequence").Len())
}

func TestGetDefault(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())
	assert.False(t, Get().Core().Enabled(zapcore.ErrorLevel))
}
