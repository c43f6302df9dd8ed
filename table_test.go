package webscraper_test

import (
	"testing"

	"github.com/dartisan/webscraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) webscraper.Value {
	t.Helper()
	v, err := webscraper.ParseValue([]byte(s))
	require.NoError(t, err)
	return v
}

func TestIsTableCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"list of maps", `[{"a":1},{"b":2}]`, true},
		{"empty list", `[]`, false},
		{"mixed list", `[{"a":1}, 2]`, false},
		{"list of scalars", `[1,2]`, false},
		{"map", `{"a":1}`, false},
		{"scalar", `"x"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, webscraper.IsTableCandidate(mustParse(t, tt.input)))
		})
	}
}

func TestFindTable(t *testing.T) {
	t.Parallel()

	t.Run("header follows first element key order", func(t *testing.T) {
		t.Parallel()

		data := mustParse(t, `{"items":[{"name":"A","price":10},{"price":20,"name":"B"}]}`)

		table := webscraper.FindTable(data)

		require.NotNil(t, table)
		assert.Equal(t, "items", table.Key)
		assert.Equal(t, []string{"name", "price"}, table.Header)
		assert.Equal(t, [][]string{{"A", "10"}, {"B", "20"}}, table.Rows)
	})

	t.Run("missing key renders empty cell", func(t *testing.T) {
		t.Parallel()

		data := mustParse(t, `{"items":[{"name":"A","price":10},{"name":"B"}]}`)

		table := webscraper.FindTable(data)

		require.NotNil(t, table)
		assert.Equal(t, [][]string{{"A", "10"}, {"B", ""}}, table.Rows)
	})

	t.Run("extra keys outside the header are ignored", func(t *testing.T) {
		t.Parallel()

		data := mustParse(t, `{"rows":[{"a":1},{"a":2,"b":3}]}`)

		table := webscraper.FindTable(data)

		require.NotNil(t, table)
		assert.Equal(t, []string{"a"}, table.Header)
		assert.Equal(t, [][]string{{"1"}, {"2"}}, table.Rows)
	})

	t.Run("nested values are stringified", func(t *testing.T) {
		t.Parallel()

		data := mustParse(t, `{"rows":[{"tags":["x","y"],"ok":true,"n":null}]}`)

		table := webscraper.FindTable(data)

		require.NotNil(t, table)
		assert.Equal(t, [][]string{{`["x","y"]`, "true", "null"}}, table.Rows)
	})

	t.Run("picks the first candidate", func(t *testing.T) {
		t.Parallel()

		data := mustParse(t, `{"title":"x","first":[{"a":1}],"second":[{"b":2}]}`)

		table := webscraper.FindTable(data)

		require.NotNil(t, table)
		assert.Equal(t, "first", table.Key)
	})

	t.Run("returns nil without candidates", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, webscraper.FindTable(mustParse(t, `{"a":[1,2],"b":[]}`)))
		assert.Nil(t, webscraper.FindTable(mustParse(t, `{}`)))
		assert.Nil(t, webscraper.FindTable(mustParse(t, `[{"a":1}]`)))
	})
}
