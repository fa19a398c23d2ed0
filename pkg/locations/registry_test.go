package locations_test

import (
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagefarm/pagefarm/pkg/locations"
)

func fixture() []locations.Location {
	return []locations.Location{
		{ID: "austin-tx", Name: "Austin", State: "TX", ZipCodes: []string{"78701", "78702"}},
		{ID: "dallas-tx", Name: "Dallas", State: "TX", ZipCodes: []string{"00000"}},
		{ID: "el-paso-tx", Name: "El Paso", State: "TX"},
		{ID: "des-moines-ia", Name: "Des Moines", State: "IA", ZipCodes: []string{"", "00000"}},
		{ID: "cedar-rapids", Name: "Cedar Rapids", State: "ia", ZipCodes: []string{"52401-1234"}},
		{ID: "coeur-d-alene-id", Name: "Coeur d'Alene", State: "ID"},
	}
}

func newRegistry(t *testing.T, locs []locations.Location) *locations.Registry {
	t.Helper()
	reg, err := locations.NewRegistry(locs)
	require.NoError(t, err)
	return reg
}

func TestRegistry_All(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, fixture())
	all := reg.All()
	require.Len(t, all, 6)

	ids := make([]string, len(all))
	for i, loc := range all {
		ids[i] = loc.ID
	}
	require.Equal(t, []string{"austin-tx", "dallas-tx", "el-paso-tx", "des-moines-ia", "cedar-rapids", "coeur-d-alene-id"}, ids)

	t.Run("state normalized and full name derived", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "IA", all[4].State)
		require.Equal(t, "Cedar Rapids, IA", all[4].FullName)
	})

	t.Run("result does not alias registry", func(t *testing.T) {
		t.Parallel()
		mutated := reg.All()
		mutated[0].ZipCodes[0] = "99999"
		fresh, ok := reg.ByID("austin-tx")
		require.True(t, ok)
		require.Equal(t, "78701", fresh.ZipCodes[0])
	})
}

func TestRegistry_ByID(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, fixture())

	t.Run("every real id resolves to itself", func(t *testing.T) {
		t.Parallel()
		for _, loc := range fixture() {
			got, ok := reg.ByID(loc.ID)
			require.True(t, ok, loc.ID)
			require.Equal(t, loc.ID, got.ID)
			require.False(t, got.Virtual)
		}
	})

	t.Run("every state slug yields a virtual location", func(t *testing.T) {
		t.Parallel()
		for _, code := range locations.StateCodes() {
			slug, _ := locations.StateSlug(code)
			got, ok := reg.ByID(slug)
			require.True(t, ok, slug)
			require.True(t, got.Virtual)
			require.Equal(t, code, got.State)
			require.Equal(t, slug, got.ID)
			require.Equal(t, []string{locations.StatewideArea}, got.Areas)
			require.Len(t, got.ZipCodes, 1)
		}
	})

	t.Run("virtual zip prefers first real zip in state", func(t *testing.T) {
		t.Parallel()
		tx, ok := reg.ByID("texas")
		require.True(t, ok)
		require.Equal(t, []string{"78701"}, tx.ZipCodes)
		require.Equal(t, "Texas", tx.Name)

		ia, ok := reg.ByID("iowa")
		require.True(t, ok)
		require.Equal(t, []string{"52401-1234"}, ia.ZipCodes)
	})

	t.Run("virtual zip falls back to static table", func(t *testing.T) {
		t.Parallel()
		ohio, ok := reg.ByID("ohio")
		require.True(t, ok)
		require.Equal(t, []string{"43215"}, ohio.ZipCodes)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		_, ok := reg.ByID("atlantis")
		require.False(t, ok)
		_, ok = reg.ByID("")
		require.False(t, ok)
	})
}

func TestRegistry_BySubdomain(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, fixture())

	tests := []struct {
		name   string
		sub    string
		wantID string
		ok     bool
	}{
		{name: "id", sub: "austin-tx", wantID: "austin-tx", ok: true},
		{name: "id case insensitive", sub: "Austin-TX", wantID: "austin-tx", ok: true},
		{name: "name derived", sub: "cedar-rapids", wantID: "cedar-rapids", ok: true},
		{name: "name derived with apostrophe", sub: "coeur-dalene", wantID: "coeur-d-alene-id", ok: true},
		{name: "plain name", sub: "austin", wantID: "austin-tx", ok: true},
		{name: "unknown", sub: "nosuchcity", ok: false},
		{name: "empty", sub: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.BySubdomain(tt.sub)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestRegistry_ZipCodes(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, fixture())
	get := func(id string) locations.Location {
		loc, ok := reg.ByID(id)
		require.True(t, ok)
		return loc
	}

	t.Run("real list returned unmodified", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"78701", "78702"}, reg.ZipCodes(get("austin-tx")))
	})

	t.Run("placeholder replaced by state zip", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"78701"}, reg.ZipCodes(get("dallas-tx")))
		require.Empty(t, reg.OwnZipCodes(get("dallas-tx")))
	})

	t.Run("empty and placeholder entries never displayed", func(t *testing.T) {
		t.Parallel()
		zips := reg.ZipCodes(get("des-moines-ia"))
		require.Equal(t, []string{"52401-1234"}, zips)
		assert.NotContains(t, zips, "00000")
	})

	t.Run("state without real zips uses static fallback", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, []string{"83702"}, reg.ZipCodes(get("coeur-d-alene-id")))
	})

	t.Run("unknown state yields nothing", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, reg.ZipCodes(locations.Location{State: "ZZ"}))
	})
}

func statePack(n int) []locations.Location {
	locs := make([]locations.Location, 0, n)
	for i := range n {
		locs = append(locs, locations.Location{
			ID:    fmt.Sprintf("city-%02d-tx", i),
			Name:  fmt.Sprintf("City %02d", i),
			State: "TX",
		})
	}
	// One out-of-state location must never leak into a Texas window.
	locs = append(locs, locations.Location{ID: "boise-id", Name: "Boise", State: "ID"})
	return locs
}

func ids(locs []locations.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.ID
	}
	return out
}

func TestRegistry_Nearby(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, statePack(40))

	t.Run("default limit returns exactly 24 without self", func(t *testing.T) {
		t.Parallel()
		got := reg.Nearby("city-20-tx", "TX", 0)
		require.Len(t, got, 24)
		require.NotContains(t, ids(got), "city-20-tx")
		require.NotContains(t, ids(got), "boise-id")
	})

	t.Run("window is centred on current location", func(t *testing.T) {
		t.Parallel()
		got := ids(reg.Nearby("city-20-tx", "TX", 4))
		require.Equal(t, []string{"city-18-tx", "city-19-tx", "city-21-tx", "city-22-tx"}, got)
	})

	t.Run("start of list backfills from after", func(t *testing.T) {
		t.Parallel()
		got := ids(reg.Nearby("city-00-tx", "TX", 4))
		require.Equal(t, []string{"city-01-tx", "city-02-tx", "city-03-tx", "city-04-tx"}, got)
	})

	t.Run("end of list backfills from before", func(t *testing.T) {
		t.Parallel()
		got := ids(reg.Nearby("city-39-tx", "TX", 4))
		require.Equal(t, []string{"city-35-tx", "city-36-tx", "city-37-tx", "city-38-tx"}, got)
	})

	t.Run("different pages get different windows", func(t *testing.T) {
		t.Parallel()
		a := ids(reg.Nearby("city-05-tx", "TX", 6))
		b := ids(reg.Nearby("city-30-tx", "TX", 6))
		require.NotEqual(t, a, b)
	})

	t.Run("unknown current id falls back to first entries", func(t *testing.T) {
		t.Parallel()
		got := ids(reg.Nearby("texas", "TX", 3))
		require.Equal(t, []string{"city-00-tx", "city-01-tx", "city-02-tx"}, got)
	})

	t.Run("small state returns all others", func(t *testing.T) {
		t.Parallel()
		small := newRegistry(t, statePack(3))
		got := small.Nearby("city-01-tx", "tx", 24)
		require.Equal(t, []string{"city-00-tx", "city-02-tx"}, ids(got))
	})

	t.Run("unknown state", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, reg.Nearby("city-01-tx", "ZZ", 24))
	})
}

func TestRegistry_Nearby_Bounds(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 2, 5, 24, 25, 26, 60} {
		reg := newRegistry(t, statePack(size))
		for _, limit := range []int{1, 2, 3, 7, 24} {
			for i := range size {
				id := fmt.Sprintf("city-%02d-tx", i)
				got := reg.Nearby(id, "TX", limit)
				require.LessOrEqual(t, len(got), limit)
				require.Equal(t, min(limit, size-1), len(got), "size=%d limit=%d id=%s", size, limit, id)
				require.NotContains(t, ids(got), id)
			}
		}
	}
}

func TestRegistry_InStateAndStates(t *testing.T) {
	t.Parallel()

	reg := newRegistry(t, fixture())
	require.Equal(t, []string{"austin-tx", "dallas-tx", "el-paso-tx"}, ids(reg.InState("tx")))
	require.Equal(t, []string{"cedar-rapids", "des-moines-ia"}, ids(reg.InState("IA")))
	require.Equal(t, []string{"IA", "ID", "TX"}, reg.States())
	require.Empty(t, reg.InState("WY"))
}

func TestNewRegistry_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		locs    []locations.Location
		wantErr error
	}{
		{
			name:    "uppercase id",
			locs:    []locations.Location{{ID: "Austin", Name: "Austin", State: "TX"}},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name:    "id with spaces",
			locs:    []locations.Location{{ID: "el paso", Name: "El Paso", State: "TX"}},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name:    "unknown state",
			locs:    []locations.Location{{ID: "san-juan", Name: "San Juan", State: "PR"}},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name:    "malformed zip",
			locs:    []locations.Location{{ID: "austin", Name: "Austin", State: "TX", ZipCodes: []string{"7870"}}},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name:    "missing name",
			locs:    []locations.Location{{ID: "austin", State: "TX"}},
			wantErr: locations.ErrInvalidLocation,
		},
		{
			name: "duplicate id",
			locs: []locations.Location{
				{ID: "austin", Name: "Austin", State: "TX"},
				{ID: "austin", Name: "Austin", State: "MN"},
			},
			wantErr: locations.ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg, err := locations.NewRegistry(tt.locs)
			require.ErrorIs(t, err, tt.wantErr)
			require.Nil(t, reg)
		})
	}

	t.Run("all problems reported", func(t *testing.T) {
		t.Parallel()
		_, err := locations.NewRegistry([]locations.Location{
			{ID: "BAD", Name: "Bad", State: "TX"},
			{ID: "worse", Name: "Worse", State: "XX"},
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), `"BAD"`)
		require.Contains(t, err.Error(), `"worse"`)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locations.json": {Data: []byte(`[{"id":"austin-tx","name":"Austin","state":"TX","zipCodes":["78701"]}]`)},
		"locations.yaml": {Data: []byte("- id: boise-id\n  name: Boise\n  state: ID\n  areas: [North End]\n")},
		"broken.json":    {Data: []byte(`{"id":`)},
		"invalid.json":   {Data: []byte(`[{"id":"x","name":"X","state":"QQ"}]`)},
	}

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		reg, err := locations.Load(fsys, "locations.json")
		require.NoError(t, err)
		loc, ok := reg.ByID("austin-tx")
		require.True(t, ok)
		require.Equal(t, "Austin, TX", loc.FullName)
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		reg, err := locations.Load(fsys, "locations.yaml")
		require.NoError(t, err)
		loc, ok := reg.ByID("boise-id")
		require.True(t, ok)
		require.Equal(t, []string{"North End"}, loc.Areas)
	})

	t.Run("decode error", func(t *testing.T) {
		t.Parallel()
		_, err := locations.Load(fsys, "broken.json")
		require.ErrorIs(t, err, locations.ErrDecode)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()
		_, err := locations.Load(fsys, "invalid.json")
		require.ErrorIs(t, err, locations.ErrInvalidLocation)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := locations.Load(fsys, "nope.json")
		require.Error(t, err)
	})
}
