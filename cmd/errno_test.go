//go:build linux

package cmd

import (
	"encoding/json"
	"testing"

	"github.com/Shoaibashk/serialport/serialerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrnoTable(t *testing.T) {
	out, err := executeCommand(t, "errno", "2", "22", "0x4")
	require.NoError(t, err)

	assert.Contains(t, out, "CODE")
	assert.Regexp(t, `2\s+ENOENT\s+no_device\s+no such file or directory`, out)
	assert.Regexp(t, `22\s+EINVAL\s+invalid_input\s+invalid argument`, out)
	assert.Regexp(t, `4\s+EINTR\s+io_interrupted\s+interrupted system call`, out)
}

func TestErrnoJSON(t *testing.T) {
	out, err := executeCommand(t, "errno", "--json", "13", "5")
	require.NoError(t, err)

	var reports []struct {
		Code    int64  `json:"code"`
		Name    string `json:"name"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, int64(13), reports[0].Code)
	assert.Equal(t, "EACCES", reports[0].Name)
	assert.Equal(t, "no_device", reports[0].Kind)
	assert.Equal(t, "permission denied", reports[0].Message)

	assert.Equal(t, "EIO", reports[1].Name)
	assert.Equal(t, "io_other", reports[1].Kind)
}

func TestErrnoInvalidCode(t *testing.T) {
	_, err := executeCommand(t, "errno", "not-a-number")
	require.Error(t, err)
	assert.Equal(t, serialerr.InvalidInput, serialerr.KindOf(err))
}

func TestErrnoRequiresCode(t *testing.T) {
	_, err := executeCommand(t, "errno")
	assert.Error(t, err)
}
