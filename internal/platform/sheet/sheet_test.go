// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sheet_test

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/taibuivan/ontvitals/internal/platform/sheet"
)

func TestTable_WriteTo(t *testing.T) {
	table := &sheet.Table{
		Name:    "Deaths",
		Columns: []sheet.Column{{Title: "RegNum", Width: 10}, {Title: "Surname", Width: 20}, {Title: "Age"}},
	}
	table.Append(12, "Smith", "45")
	table.Append(13, "Brown", "")

	var buffer bytes.Buffer
	_, err := table.WriteTo(&buffer)
	require.NoError(t, err)

	file, err := excelize.OpenReader(&buffer)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Deaths"}, file.GetSheetList())

	rows, err := file.GetRows("Deaths")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"RegNum", "Surname", "Age"}, rows[0])
	assert.Equal(t, []string{"12", "Smith", "45"}, rows[1])
	assert.Equal(t, "Brown", rows[2][1])
}

func TestServe_Headers(t *testing.T) {
	recorder := httptest.NewRecorder()
	require.NoError(t, sheet.Serve(recorder, "deaths-1887.xlsx", &sheet.Table{Name: "Deaths"}))

	assert.Equal(t, sheet.ContentType, recorder.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="deaths-1887.xlsx"`, recorder.Header().Get("Content-Disposition"))
	assert.NotZero(t, recorder.Body.Len())
}
