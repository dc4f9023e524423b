package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/pkg/types"
)

func sampleUsers() []types.User {
	return []types.User{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "Admin",
			Status: "Active", JoinDate: "2020-01-15", LastLogin: "2024-06-01"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Role: "User",
			Status: "Active", JoinDate: "2021-07-30", LastLogin: "2024-05-20"},
	}
}

func TestNew_Registry(t *testing.T) {
	for _, name := range []string{"compact", "verbose", "structured", "tabular", "export"} {
		f, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	_, err := New("bogus")
	assert.ErrorIs(t, err, ErrUnknownFormatter)
}

func TestCompact_Format(t *testing.T) {
	out, err := Compact{}.Format(sampleUsers(), Options{})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID: 1 | Name: Alice | Email: alice@example.com | Role: Admin | Status: Active | Join Date: 2020-01-15 | Last Login: 2024-06-01", lines[0])
	assert.Contains(t, lines[1], "Name: Bob")
}

func TestCompact_FieldSelection(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "include keeps canonical order",
			opts: Options{Include: []string{"name", "id"}},
			want: "ID: 1 | Name: Alice",
		},
		{
			name: "exclude drops fields",
			opts: Options{Exclude: []string{"email", "join_date", "last_login", "status"}},
			want: "ID: 1 | Name: Alice | Role: Admin",
		},
		{
			name: "missing selected field renders sentinel",
			opts: Options{Include: []string{"id", "department"}},
			want: "ID: 1 | Department: N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Compact{}.Format(sampleUsers()[:1], tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFormat_BothSelectionListsRejected(t *testing.T) {
	opts := Options{Include: []string{"id"}, Exclude: []string{"name"}}
	for _, name := range []string{"compact", "verbose", "structured", "tabular", "export"} {
		f, err := New(name)
		require.NoError(t, err)

		_, err = f.Format(sampleUsers(), opts)
		assert.ErrorIs(t, err, ErrFieldSelection, name)
	}
}

func TestCompact_ShowTotal(t *testing.T) {
	out, err := Compact{}.Format(sampleUsers(), Options{ShowTotal: true})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\n\nTotal users processed: 2"))
}

func TestVerbose_Format(t *testing.T) {
	out, err := Verbose{}.Format(sampleUsers(), Options{Include: []string{"id", "name", "role"}})
	require.NoError(t, err)

	want := "User ID: 1\n" +
		"  ID: 1\n" +
		"  Name: Alice\n" +
		"  Role: Admin\n" +
		"\n" +
		"User ID: 2\n" +
		"  ID: 2\n" +
		"  Name: Bob\n" +
		"  Role: User"
	assert.Equal(t, want, out)
}

func TestStructured_RoundTrip(t *testing.T) {
	out, err := Structured{}.Format(sampleUsers(), Options{})
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed, 2)

	assert.Equal(t, float64(1), parsed[0]["id"])
	assert.Equal(t, "Alice", parsed[0]["name"])
	assert.Equal(t, "bob@example.com", parsed[1]["email"])
}

func TestStructured_Empty(t *testing.T) {
	out, err := Structured{}.Format(nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestTabular_Format(t *testing.T) {
	out, err := Tabular{}.Format(sampleUsers(), Options{Include: []string{"id", "name", "role"}})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  Name   Role", lines[0])
	assert.Equal(t, "1   Alice  Admin", lines[1])
	assert.Equal(t, "2   Bob    User", lines[2])
}

func TestTabular_MultibyteAlignment(t *testing.T) {
	users := []types.User{
		{ID: 1, Name: "Zoë", Role: "Admin"},
		{ID: 2, Name: "Robert", Role: "User"},
	}

	out, err := Tabular{}.Format(users, Options{Include: []string{"id", "name", "role"}})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  Name    Role", lines[0])
	assert.Equal(t, "1   Zoë     Admin", lines[1])
	assert.Equal(t, "2   Robert  User", lines[2])
}

func TestExport_Envelope(t *testing.T) {
	out, err := Export{}.Format(sampleUsers()[:1], Options{Include: []string{"id", "name"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "USER_EXPORT_START\n"+strings.Repeat("=", 80)+"\n"))
	assert.True(t, strings.HasSuffix(out, "USER_EXPORT_END"))
	assert.Contains(t, out, "User ID: 1")
	assert.Contains(t, out, strings.Repeat("-", 80))
}

func TestExport_IgnoresShowTotal(t *testing.T) {
	plain, err := Export{}.Format(sampleUsers(), Options{})
	require.NoError(t, err)

	withTotal, err := Export{}.Format(sampleUsers(), Options{ShowTotal: true})
	require.NoError(t, err)

	assert.Equal(t, plain, withTotal)
	assert.NotContains(t, withTotal, "Total users processed")
}

func TestFormat_EmptyCollection(t *testing.T) {
	for _, name := range []string{"compact", "verbose", "tabular"} {
		f, err := New(name)
		require.NoError(t, err)

		out, err := f.Format(nil, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", out, name)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	users := sampleUsers()
	for _, name := range []string{"compact", "verbose", "structured", "tabular", "export"} {
		f, err := New(name)
		require.NoError(t, err)

		first, err := f.Format(users, Options{})
		require.NoError(t, err)
		second, err := f.Format(users, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, second, name)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "ID", label("id"))
	assert.Equal(t, "Join Date", label("join_date"))
	assert.Equal(t, "Name", label("name"))
}
