package gradebook

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArchive(t *testing.T) {
	results := []Result{
		{Class: "A1.01", Output: &Output{Class: "A1.01", Full: []byte("full-a"), Checker: []byte("check-a")}},
		{Class: "A1.02", Err: &ClassError{Class: "A1.02", Err: errors.New("boom")}},
		{Class: "B/2", Output: &Output{Class: "B/2", Full: []byte("full-b")}},
	}

	var buf bytes.Buffer
	n, err := WriteArchive(&buf, results)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	files := make(map[string]string)
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		files[zf.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"A1.01/A1.01 GRADEBOOK.xlsx":          "full-a",
		"A1.01/A1.01 1st Checker Add-up.xlsx": "check-a",
		"A1.01/A1.01 2nd Checker Add-up.xlsx": "check-a",
		"B-2/B-2 GRADEBOOK.xlsx":              "full-b",
	}, files)
}

func TestArchiveDir(t *testing.T) {
	assert.Equal(t, "A1.01", archiveDir(" A1.01 "))
	assert.Equal(t, "10-A", archiveDir(`10\A`))
	assert.Equal(t, "class", archiveDir(".."))
	assert.Equal(t, "class", archiveDir(""))
}
