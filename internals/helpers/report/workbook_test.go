package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWritesSheets(t *testing.T) {
	members := Sheet{Name: "Members", Headers: []string{"Name", "Roll", "Checked In"}}
	members.Add("Asha", 12, true)
	members.Add("Ravi", 7, false)
	committee := Sheet{Name: "Committee", Headers: []string{"Name"}}
	committee.Add("Meera")

	data, err := Build(members, committee)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Members", "Committee"}, f.GetSheetList())

	rows, err := f.GetRows("Members")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Roll", "Checked In"}, rows[0])
	assert.Equal(t, "Asha", rows[1][0])
	assert.Equal(t, "12", rows[1][1])

	rows, err = f.GetRows("Committee")
	require.NoError(t, err)
	assert.Equal(t, "Meera", rows[1][0])
}

func TestBuildRequiresSheet(t *testing.T) {
	_, err := Build()
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Tech Fest 2026!", "tech-fest-2026-members.xlsx"},
		{"  ", "event-members.xlsx"},
		{"Robo/Race", "robo-race-members.xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.in, "members"))
	}
}
