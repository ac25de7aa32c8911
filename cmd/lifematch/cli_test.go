package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestCompatCmd(t *testing.T) {
	cmd, out := newTestCmd()

	require.NoError(t, runCompat(cmd, []string{" ab- "}))
	assert.Contains(t, out.String(), "Blood type:       AB-")
	assert.Contains(t, out.String(), "Can receive from: O-, A-, B-, AB-")
	assert.Contains(t, out.String(), "Can donate to:    AB-, AB+")
}

func TestCompatCmdRejectsUnknownType(t *testing.T) {
	cmd, _ := newTestCmd()
	assert.Error(t, runCompat(cmd, []string{"C+"}))
}

func TestMatchCmdUsesEmbeddedSample(t *testing.T) {
	logger = zap.NewNop()
	matchBloodType, matchDonorFile = "A+", ""
	defer func() { matchBloodType, matchDonorFile = "", "" }()

	cmd, out := newTestCmd()
	require.NoError(t, runMatch(cmd, nil))

	assert.Contains(t, out.String(), "Emily Davis")
	assert.Contains(t, out.String(), "David Wilson")
	assert.NotContains(t, out.String(), "Lisa Anderson")
}

func TestMatchCmdReadsDonorFile(t *testing.T) {
	logger = zap.NewNop()
	path := filepath.Join(t.TempDir(), "donors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`donors:
  - name: Ada
    blood_type: O+
    city: Austin
    state: TX
    status: available
  - name: Ben
    blood_type: A-
    status: available
  - name: Cy
    blood_type: O-
    status: unavailable
`), 0o600))

	matchBloodType, matchDonorFile = "o+", path
	defer func() { matchBloodType, matchDonorFile = "", "" }()

	cmd, out := newTestCmd()
	require.NoError(t, runMatch(cmd, nil))

	assert.Contains(t, out.String(), "Ada")
	assert.Contains(t, out.String(), "Austin, TX")
	assert.NotContains(t, out.String(), "Ben")
	assert.NotContains(t, out.String(), "Cy")
}

func TestMatchCmdNoDonors(t *testing.T) {
	logger = zap.NewNop()
	path := filepath.Join(t.TempDir(), "donors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("donors: []\n"), 0o600))

	matchBloodType, matchDonorFile = "O-", path
	defer func() { matchBloodType, matchDonorFile = "", "" }()

	cmd, out := newTestCmd()
	require.NoError(t, runMatch(cmd, nil))
	assert.Contains(t, out.String(), "No available donors compatible with O-")
}
