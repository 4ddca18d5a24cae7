package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam"
	"github.com/arloliu/mam/format"
)

func sample(name string, n int) []byte {
	return bytes.Repeat([]byte("SCCA"+name+"\x00"), n/(len(name)+5)+1)[:n]
}

func encodeContainer(t *testing.T, alg format.Algorithm, plain []byte) []byte {
	t.Helper()

	data, err := mam.Encode(alg, plain)
	require.NoError(t, err)

	return data
}

func write(t *testing.T, path string, data []byte) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if coder, ok := err.(interface{ ExitCode() int }); ok {
		return coder.ExitCode()
	}

	return exitFailures
}

func TestRun_SingleFile(t *testing.T) {
	plain := sample("CMD.EXE", 5000)
	in := write(t, filepath.Join(t.TempDir(), "CMD.EXE-4A81B364.pf"), encodeContainer(t, format.AlgorithmXpressHuffman, plain))
	out := filepath.Join(t.TempDir(), "out")

	stdout, _, err := runCLI(t, "-f", in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ready to be parsed")

	got, err := os.ReadFile(filepath.Join(out, "CMD.EXE-4A81B364.pf"))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestRun_SingleFileNotContainer(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	legacy := write(t, filepath.Join(dir, "OLD.EXE-12345678.pf"), sample("OLD.EXE", 300))
	stdout, _, err := runCLI(t, "-f", legacy, out)
	require.NoError(t, err, "uncompressed prefetch files are passed over")
	assert.Empty(t, stdout)

	other := write(t, filepath.Join(dir, "memory.dmp"), sample("OLD.EXE", 300))
	_, stderr, err := runCLI(t, "-f", other, out)
	require.Error(t, err)
	assert.Equal(t, exitFailures, exitCode(err))
	assert.Contains(t, stderr, "not a MAM container")
}

func TestRun_Directory(t *testing.T) {
	in := t.TempDir()
	tmp := t.TempDir()
	out := filepath.Join(tmp, "out")
	manifest := filepath.Join(tmp, "manifest.json")
	metrics := filepath.Join(tmp, "mamdecomp.prom")

	a := sample("A.EXE", 3000)
	b := sample("B.EXE", 70000)
	write(t, filepath.Join(in, "A.EXE-00000001.pf"), encodeContainer(t, format.AlgorithmLZNT1, a))
	write(t, filepath.Join(in, "nested", "B.EXE-00000002.pf"), encodeContainer(t, format.AlgorithmXpress, b))
	write(t, filepath.Join(in, "C.EXE-00000003.pf"), sample("C.EXE", 100))

	stdout, _, err := runCLI(t,
		"--workers", "2",
		"--compress", "s2",
		"--manifest", manifest,
		"--metrics-file", metrics,
		"--log-format", "json",
		in, out,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "decoded 2, skipped 1, failed 0")

	for _, name := range []string{"A.EXE-00000001.pf.s2", "B.EXE-00000002.pf.s2"} {
		_, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
	}

	raw, err := os.ReadFile(manifest)
	require.NoError(t, err)
	var doc struct {
		Files []struct {
			Input  string `json:"input"`
			Result string `json:"result"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Files, 3)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `mamdecomp_files_total{result="decoded"} 2`)
}

func TestRun_DirectoryWithFailures(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	good := encodeContainer(t, format.AlgorithmXpressHuffman, sample("GOOD.EXE", 2000))
	bad := encodeContainer(t, format.AlgorithmXpressHuffman, sample("BAD.EXE", 2000))
	bad[len(bad)-3] ^= 0xFF

	write(t, filepath.Join(in, "GOOD.EXE-1.pf"), good)
	write(t, filepath.Join(in, "BAD.EXE-2.pf"), bad)

	stdout, stderr, err := runCLI(t, in, out)
	require.Error(t, err)
	assert.Equal(t, exitFailures, exitCode(err))
	assert.Empty(t, err.Error())
	assert.Contains(t, stdout, "decoded 1, skipped 0, failed 1")
	assert.Contains(t, stderr, "integrity_mismatch")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	write(t, filepath.Join(in, "X.EXE-1.pf"), encodeContainer(t, format.AlgorithmLZNT1, sample("X.EXE", 900)))

	cfg := write(t, filepath.Join(dir, "mam.yaml"), []byte("compress: lz4\nworkers: 1\n"))

	_, _, err := runCLI(t, "--config", cfg, in, out)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "X.EXE-1.pf.lz4"))
	require.NoError(t, err)

	// Flags override the file.
	out2 := filepath.Join(dir, "out2")
	_, _, err = runCLI(t, "--config", cfg, "--compress", "none", in, out2)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out2, "X.EXE-1.pf"))
	require.NoError(t, err)
}

func TestRun_Inspect(t *testing.T) {
	dir := t.TempDir()
	path := write(t, filepath.Join(dir, "I.EXE-1.pf"), encodeContainer(t, format.AlgorithmXpressHuffman, sample("I.EXE", 1234)))

	stdout, _, err := runCLI(t, "--inspect", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "algorithm=XpressHuffman")
	assert.Contains(t, stdout, "supported=true")
	assert.Contains(t, stdout, "declared=1234")

	write(t, filepath.Join(dir, "J.EXE-2.pf"), []byte("SCCA"))
	stdout, _, err = runCLI(t, "--inspect", dir)
	require.Error(t, err)
	assert.Equal(t, exitFailures, exitCode(err))
	assert.Equal(t, 2, strings.Count(stdout, "\n"))
	assert.Contains(t, stdout, "truncated container header")
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"file without outdir", []string{"-f", "x.pf"}},
		{"directory without outdir", []string{"in"}},
		{"unknown flag", []string{"--frobnicate", "in", "out"}},
		{"bad codec", []string{"--compress", "brotli", "in", "out"}},
		{"bad backend", []string{"--backend", "gpu", "in", "out"}},
		{"bad log level", []string{"--log-level", "loud", "in", "out"}},
		{"zero workers", []string{"--workers", "0", "in", "out"}},
		{"missing config", []string{"--config", "/nonexistent/mam.yaml", "in", "out"}},
		{"missing input directory", []string{"/nonexistent/prefetch", "out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, exitUsage, exitCode(err))
		})
	}
}

func TestRun_VersionAndHelp(t *testing.T) {
	stdout, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "mamdecomp "+mam.Version+"\n", stdout)

	_, stderr, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, stderr, "mamdecomp [flags] <dir> <outdir>")
	assert.Contains(t, stderr, "--metrics-file")
}
