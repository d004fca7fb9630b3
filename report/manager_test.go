package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRunName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid",
			input: "2024-01-15_14-30-00",
			want:  time.Date(2024, 1, 15, 14, 30, 0, 0, time.Local),
		},
		{name: "date only", input: "2024-01-15", wantErr: true},
		{name: "colons", input: "2024-01-15_14:30:00", wantErr: true},
		{name: "single digit month", input: "2024-1-15_14-30-00", wantErr: true},
		{name: "day out of range", input: "2024-02-30_10-00-00", wantErr: true},
		{name: "trailing text", input: "2024-01-15_14-30-00-old", wantErr: true},
		{name: "path traversal", input: "../2024-01-15_14-30-00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRunName(tt.input)
			if tt.wantErr {
				var nameErr *InvalidNameError
				require.ErrorAs(t, err, &nameErr)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRunName_RoundTrip(t *testing.T) {
	name := RunName(testNow)
	require.Equal(t, "2024-06-15_12-00-00", name)

	parsed, err := ParseRunName(name)
	require.NoError(t, err)
	require.True(t, testNow.Equal(parsed))
}

func TestListRuns_MissingRoot(t *testing.T) {
	m := newTestManager(t)

	runs, err := m.ListRuns()
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestListRuns_NewestFirst(t *testing.T) {
	m := newTestManager(t)

	names := []string{
		"2024-03-01_09-00-00",
		"2024-06-14_23-59-59",
		"2023-12-31_00-00-00",
		"2024-06-14_08-15-30",
	}
	for _, name := range names {
		makeRun(t, m, name, "")
	}
	// neither of these is a run
	require.NoError(t, os.MkdirAll(filepath.Join(m.cfg.NewDir(), "latest"), 0755))
	writeFile(t, filepath.Join(m.cfg.NewDir(), "2024-06-15_00-00-00"), 10)

	runs, err := m.ListRuns()
	require.NoError(t, err)

	var got []string
	for _, run := range runs {
		got = append(got, run.Name)
	}
	require.Equal(t, []string{
		"2024-06-14_23-59-59",
		"2024-06-14_08-15-30",
		"2024-03-01_09-00-00",
		"2023-12-31_00-00-00",
	}, got)

	for i := 1; i < len(runs); i++ {
		require.True(t, runs[i-1].Timestamp.After(runs[i].Timestamp))
	}
	require.Equal(t, filepath.Join(m.cfg.NewDir(), "2024-06-14_23-59-59"), runs[0].Path)
}

func TestFindRun(t *testing.T) {
	m := newTestManager(t)
	makeRun(t, m, "2024-06-01_10-00-00", "")

	run, err := m.FindRun("2024-06-01_10-00-00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local), run.Timestamp)

	_, err = m.FindRun("2024-06-02_10-00-00")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "run", notFound.Kind)

	_, err = m.FindRun("../new")
	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
}

func TestListRuns_SkipsSymlinks(t *testing.T) {
	m := newTestManager(t)
	makeRun(t, m, "2024-06-01_10-00-00", "")

	target := filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "json"), 0755))
	writeFile(t, filepath.Join(target, "json", "data.json"), 10)
	linked := "2024-05-01_10-00-00"
	require.NoError(t, os.Symlink(target, filepath.Join(m.cfg.NewDir(), linked)))

	runs, err := m.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "2024-06-01_10-00-00", runs[0].Name)

	_, err = m.FindRun(linked)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	// older than the cutoff but never archived or removed
	results, err := m.ArchiveRunsOlderThan(7)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "2024-06-01_10-00-00", results[0].Run.Name)
	require.FileExists(t, filepath.Join(target, "json", "data.json"))
	require.NoFileExists(t, filepath.Join(m.cfg.ArchivedDir(), linked+".zip"))
}

func TestListArchives(t *testing.T) {
	m := newTestManager(t)

	archives, err := m.ListArchives()
	require.NoError(t, err)
	require.Empty(t, archives)

	writeFile(t, filepath.Join(m.cfg.ArchivedDir(), "2024-01-01_00-00-00.zip"), 5)
	writeFile(t, filepath.Join(m.cfg.ArchivedDir(), "2024-02-01_00-00-00.zip"), 7)
	writeFile(t, filepath.Join(m.cfg.ArchivedDir(), "notes.txt"), 3)

	archives, err = m.ListArchives()
	require.NoError(t, err)
	require.Len(t, archives, 2)
	require.Equal(t, "2024-02-01_00-00-00.zip", archives[0].Name)
	require.Equal(t, int64(7), archives[0].Size)
	require.Equal(t, "2024-02-01_00-00-00", archives[0].RunName())
	require.Equal(t, "2024-01-01_00-00-00.zip", archives[1].Name)
}
