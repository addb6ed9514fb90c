// Package testdb builds a small seeded VOGDB file for tests.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	vogdb "github.com/yumyai/vogdb/pkg/db"
)

// Five species, five VOGs, nine proteins. 10665.P1 sits in two VOGs and
// 12345.P1 in none.
var FixtureSQL = []string{
	`INSERT INTO species VALUES
		(10665, 'Escherichia phage T4', 1, 'NCBI Refseq', 201),
		(10710, 'Escherichia phage lambda', 1, 'NCBI Refseq', 201),
		(10298, 'Human alphaherpesvirus 1', 0, 'NCBI Refseq', 201),
		(11676, 'Human immunodeficiency virus 1', 0, 'NCBI Refseq', 99),
		(12345, 'Bacillus phage 100%', 1, 'Manual', 201)`,

	`INSERT INTO vog_profile VALUES
		('VOG00001', 5, 2, 'XrXs', 'DNA polymerase, family B', 10, 2, 1, 1, 1, 1, 2, 0, 'phages_only'),
		('VOG00002', 5, 1, 'Xu', 'hypothetical protein', 3, 1, 0, 1, 1, 0, 0, 1, 'np_only'),
		('VOG00003', 12, 2, 'Xh', 'terminase large subunit', 20, 2, 0, 0, 1, 1, 1, 1, 'mixed'),
		('VOG00004', 10, 1, 'Xr', 'DNA polymerase, family B', 15, 1, 1, 1, 1, 1, 1, 0, 'phages_only'),
		('VOG00005', 1, 1, 'Xu', 'hypothetical protein', 1, 1, 0, 0, 0, 0, 0, 1, 'np_only')`,

	`INSERT INTO vog_category VALUES
		('VOG00001', 'Xr'), ('VOG00001', 'Xs'),
		('VOG00002', 'Xu'),
		('VOG00003', 'Xh'),
		('VOG00004', 'Xr'),
		('VOG00005', 'Xu')`,

	`INSERT INTO vog_ancestor VALUES
		('VOG00001', 'Myoviridae'), ('VOG00001', 'Caudovirales'),
		('VOG00002', 'Herpesvirales'),
		('VOG00003', 'Caudovirales'),
		('VOG00004', 'Caudovirales'), ('VOG00004', 'Siphoviridae')`,

	`INSERT INTO protein VALUES
		('10665.P1', 10665), ('10665.P2', 10665), ('10665.P3', 10665),
		('10710.P1', 10710), ('10710.P2', 10710),
		('10298.P1', 10298), ('10298.P2', 10298),
		('11676.P1', 11676),
		('12345.P1', 12345)`,

	`INSERT INTO vog_protein VALUES
		('VOG00001', '10710.P1'), ('VOG00001', '10665.P1'),
		('VOG00002', '10298.P1'),
		('VOG00003', '10665.P3'), ('VOG00003', '10665.P1'), ('VOG00003', '10298.P2'), ('VOG00003', '10665.P2'),
		('VOG00004', '10710.P2'),
		('VOG00005', '11676.P1')`,

	`INSERT INTO vog_species VALUES
		('VOG00001', 10710), ('VOG00001', 10665),
		('VOG00002', 10298),
		('VOG00003', 10665), ('VOG00003', 10298),
		('VOG00004', 10710),
		('VOG00005', 11676)`,
}

// New builds the fixture in a temp file and reopens it read-only the
// way the server does.
func New(t testing.TB) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vogdb.sqlite")
	ctx := context.Background()

	rw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, vogdb.CreateSchema(ctx, rw))
	for _, stmt := range FixtureSQL {
		_, err := rw.ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	require.NoError(t, rw.Close())

	db, err := vogdb.Open(path, 4)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// DataDir lays out hmm/, raw_algs/ and fasta/ for VOG00001 and VOG00002.
func DataDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"hmm/VOG00001.hmm":          "HMMER3/f [3.1b2]\nNAME  VOG00001\n//\n",
		"hmm/VOG00002.hmm":          "HMMER3/f [3.1b2]\nNAME  VOG00002\n//\n",
		"raw_algs/VOG00001.msa":     ">10665.P1\nMK-L\n>10710.P1\nMKVL\n",
		"fasta/vog.proteins.all.fa": ">10665.P1\nMKL\n",
		"fasta/vog.genes.all.fa":    ">10665.P1\nATGAAACTG\n",
	}
	for name, content := range files {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

// FakeSamtools writes a stand-in for "samtools faidx <fa> -r -" that echoes
// one record per id on stdin and fails like samtools on the id "missing".
func FakeSamtools(t testing.TB) string {
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
