package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDataDir lays out hmm/, raw_algs/ and fasta/ with two VOGs.
func mockDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, sub := range []string{"hmm", "raw_algs", "fasta"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	files := map[string]string{
		"hmm/VOG00001.hmm":          "HMMER3/f [3.1b2]\nNAME  VOG00001\n//\n",
		"hmm/VOG00002.hmm":          "HMMER3/f [3.1b2]\nNAME  VOG00002\n//",
		"raw_algs/VOG00001.msa":     ">10665.P1\nMK-L\n>10665.P2\nMKVL\n",
		"fasta/vog.proteins.all.fa": ">10665.P1\nMKL\n",
		"fasta/vog.genes.all.fa":    ">10665.P1\nATGAAACTG\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// fakeSamtools writes a script that answers "faidx <fa> -r -" from stdin,
// failing the way samtools does for the id "missing".
func fakeSamtools(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake samtools needs a POSIX shell")
	}

	script := `#!/bin/sh
while read -r id; do
	if [ "$id" = "missing" ]; then
		echo "[faidx] Failed to fetch sequence in missing" >&2
		exit 1
	fi
	printf ">%s\nMKL\n" "$id"
done
`
	path := filepath.Join(t.TempDir(), "samtools")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestNewVogFiles(t *testing.T) {
	_, err := NewVogFiles(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	files, err := NewVogFiles(t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, files.Dir)
}

func TestGetHMM(t *testing.T) {
	files := &VogFiles{Dir: mockDataDir(t)}

	out, err := files.GetHMM([]string{"VOG00002", "VOG00001"})
	require.NoError(t, err)

	// Order follows the request and a missing trailing newline is added.
	assert.Equal(t,
		"HMMER3/f [3.1b2]\nNAME  VOG00002\n//\nHMMER3/f [3.1b2]\nNAME  VOG00001\n//\n",
		string(out))
}

func TestGetMSA_Missing(t *testing.T) {
	files := &VogFiles{Dir: mockDataDir(t)}

	_, err := files.GetMSA([]string{"VOG00001", "VOG00002"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, err.Error(), "VOG00002")
}

func TestGetHMM_RejectsPaths(t *testing.T) {
	files := &VogFiles{Dir: mockDataDir(t)}

	for _, id := range []string{"../hmm/VOG00001", "VOG..1", "VOG 1", "a:1-2", ""} {
		_, err := files.GetHMM([]string{id})
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestGetProteinSequences_MockSamtools(t *testing.T) {
	files := &VogFiles{Dir: mockDataDir(t), Samtools: fakeSamtools(t)}

	out, err := files.GetProteinSequences(context.Background(), []string{"10665.P1", "10665.P2"})
	require.NoError(t, err)
	assert.Equal(t, ">10665.P1\nMKL\n>10665.P2\nMKL\n", string(out))
}

func TestGetGeneSequences_MissingName(t *testing.T) {
	files := &VogFiles{Dir: mockDataDir(t), Samtools: fakeSamtools(t)}

	_, err := files.GetGeneSequences(context.Background(), []string{"missing"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestGetProteinSequences_NoFasta(t *testing.T) {
	files := &VogFiles{Dir: t.TempDir(), Samtools: "/bin/false"}

	_, err := files.GetProteinSequences(context.Background(), []string{"10665.P1"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}
