package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/nmi/scenario"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	err := run(output, false, false)
	assert.NoError(err)

	text := output.String()
	assert.True(strings.HasPrefix(text, "NMI test program\n"))
	assert.True(strings.HasSuffix(text, "All test cases PASS!!\n"))
	assert.Equal(6, strings.Count(text, "Test case "))
}

func TestRun_Incomplete(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	err := run(output, false, true)
	assert.NoError(err)
	assert.Equal(7, strings.Count(output.String(), "Test case "))
}

func TestRun_Script(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	pass := filepath.Join(dir, "pass.star")
	fail := filepath.Join(dir, "fail.star")
	assert.NoError(os.WriteFile(pass, []byte("scenario('extra', lambda: True)\n"), 0o644))
	assert.NoError(os.WriteFile(fail, []byte("scenario('broken', lambda: False)\n"), 0o644))

	output := &bytes.Buffer{}
	assert.NoError(run(output, false, false, pass))
	assert.Contains(output.String(), "Test case 7: extra\n")

	output.Reset()
	err := run(output, false, false, fail)
	assert.ErrorIs(err, scenario.ErrAssertion)
	assert.True(strings.HasSuffix(output.String(), "Test case 7: broken\n"+
		"=======================================\n"+
		"FAIL!!\n"))

	err = run(output, false, false, filepath.Join(dir, "missing.star"))
	assert.ErrorIs(err, scenario.ErrScript)
}

func TestReport(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	fail := filepath.Join(dir, "fail.star")
	missing := filepath.Join(dir, "missing.star")
	assert.NoError(os.WriteFile(fail, []byte("scenario('broken', lambda: False)\n"), 0o644))

	logged := &bytes.Buffer{}
	logger := log.New(logged, "", 0)

	assert.Equal(0, report(logger, run(io.Discard, false, false)))
	assert.Empty(logged.String())

	assert.Equal(1, report(logger, run(io.Discard, false, false, missing)))
	assert.Contains(logged.String(), "missing.star")

	logged.Reset()
	assert.Equal(1, report(logger, run(io.Discard, false, false, fail)))
	assert.Contains(logged.String(), "test case 7 (broken)")
	assert.Contains(logged.String(), scenario.ErrAssertion.Error())
}
