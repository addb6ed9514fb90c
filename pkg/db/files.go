package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"regexp"
	"strings"

	"github.com/yumyai/vogdb/internal/util"
)

// Defining possible error
var (
	ErrFileNotFound = errors.New("data file not found")
	ErrInvalidID    = errors.New("identifier cannot be used as a file name")
)

// Also keeps samtools from reading an id as a region (no ':').
var safeID = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// folder which host hmm/, raw_algs/ and fasta/
type VogFiles struct {
	Dir string

	// Samtools is the binary used for FASTA lookups, "samtools" when empty.
	Samtools string
}

func NewVogFiles(dir string) (*VogFiles, error) {
	if !util.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s", os.ErrNotExist, dir)
	}
	return &VogFiles{Dir: dir}, nil
}

func (f *VogFiles) hmmFile(id string) string {
	return path.Join(f.Dir, "hmm", id+".hmm")
}

func (f *VogFiles) msaFile(id string) string {
	return path.Join(f.Dir, "raw_algs", id+".msa")
}

func (f *VogFiles) proteinFasta() string {
	return path.Join(f.Dir, "fasta", "vog.proteins.all.fa")
}

func (f *VogFiles) geneFasta() string {
	return path.Join(f.Dir, "fasta", "vog.genes.all.fa")
}

func checkIDs(ids []string) error {
	for _, id := range ids {
		if !safeID.MatchString(id) || strings.Contains(id, "..") {
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}

func concatFiles(ids []string, name func(string) string) ([]byte, error) {
	if err := checkIDs(ids); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	for _, id := range ids {
		data, err := os.ReadFile(name(id))
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", id, err)
		}
		out.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			out.WriteByte('\n')
		}
	}
	return out.Bytes(), nil
}

// GetHMM concatenates the HMM profiles of the given VOGs, in the given order.
func (f *VogFiles) GetHMM(ids []string) ([]byte, error) {
	return concatFiles(ids, f.hmmFile)
}

// GetMSA concatenates the multiple sequence alignments of the given VOGs.
func (f *VogFiles) GetMSA(ids []string) ([]byte, error) {
	return concatFiles(ids, f.msaFile)
}

func (f *VogFiles) GetProteinSequences(ctx context.Context, ids []string) ([]byte, error) {
	return f.faidx(ctx, f.proteinFasta(), ids)
}

func (f *VogFiles) GetGeneSequences(ctx context.Context, ids []string) ([]byte, error) {
	return f.faidx(ctx, f.geneFasta(), ids)
}

// Retrieves sequences using samtools faidx, ids are fed on stdin.
// cat ids.txt | samtools faidx vog.proteins.all.fa -r -
func (f *VogFiles) faidx(ctx context.Context, fasta string, ids []string) ([]byte, error) {
	if err := checkIDs(ids); err != nil {
		return nil, err
	}

	if !util.FileExists(fasta) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path.Base(fasta))
	}

	var input bytes.Buffer
	for _, id := range ids {
		input.WriteString(id)
		input.WriteString("\n")
	}

	bin := f.Samtools
	if bin == "" {
		bin = "samtools"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "faidx", fasta, "-r", "-")
	cmd.Stdin = &input
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		// faidx exits non-zero when any name is not in the index
		if strings.Contains(stderr.String(), "Failed to fetch") {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("samtools faidx: %w - %s", err, strings.TrimSpace(stderr.String()))
	}

	return output, nil
}
