package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: FormatJSON,
		Writer: buf,
		RunID:  "run-1",
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: FormatJSON,
		Writer: buf,
	}

	err := formatter.Error("INVALID_INDEX", "3 is not a valid index of the active notifications", []string{"valid indices are 0..1"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INDEX", resp.Error.Code)
	assert.Equal(t, []string{"valid indices are 0..1"}, resp.Error.Details)
}

func TestOutputFormatter_YAMLSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: FormatYAML,
		Writer: buf,
	}

	err := formatter.Success(map[string]int{"fired": 2})
	require.NoError(t, err)

	var resp struct {
		Status string         `yaml:"status"`
		Data   map[string]int `yaml:"data"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data["fired"])
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: FormatText,
		Writer: buf,
	}

	require.NoError(t, formatter.Success("plain value"))
	assert.Equal(t, "plain value\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    FormatText,
		Writer:    buf,
		ErrWriter: errBuf,
	}

	require.NoError(t, formatter.Error("INVALID_DATE", "tomorrow is not a valid date format", []string{"hint"}))
	assert.Empty(t, buf.String())
	assert.Equal(t, "ERROR: tomorrow is not a valid date format\n    hint\n", errBuf.String())
}

func TestOutputFormatter_ErrWriterFallback(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: FormatText, Writer: buf}

	assert.Equal(t, buf, formatter.GetErrWriter())
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk on fire")
	err := WrapExitError(ExitCommandError, "failed to open store", inner)

	assert.Equal(t, "failed to open store: disk on fire", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, "bare", (&ExitError{Code: ExitFailure, Message: "bare"}).Error())
}
