package dataset

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = ",atlas_term,entidad,ruta_landing,otra\n" +
	"0,t1,ACME,old,x\n" +
	"1,t2,\"Bank, Inc\",,y\n"

func TestLoadAndColumns(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/in.csv", []byte(sample), 0o644))

	tbl, err := Load(fsys, "/in.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	term, err := tbl.Column("atlas_term")
	require.NoError(t, err)
	ent, err := tbl.Column("entidad")
	require.NoError(t, err)
	assert.Equal(t, "t2", tbl.Value(1, term))
	assert.Equal(t, "Bank, Inc", tbl.Value(1, ent))

	_, err = tbl.Column("nope")
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestSetColumnReplacesOnlyThatColumn(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.NoError(t, tbl.SetColumn("ruta_landing", []string{"/data/acme", "FILE_NOT_FOUND: t2.json"}))
	out, err := tbl.Encode()
	require.NoError(t, err)

	want := ",atlas_term,entidad,ruta_landing,otra\n" +
		"0,t1,ACME,/data/acme,x\n" +
		"1,t2,\"Bank, Inc\",FILE_NOT_FOUND: t2.json,y\n"
	assert.Equal(t, want, string(out))
}

func TestSetColumnAppendsMissing(t *testing.T) {
	tbl, err := Parse([]byte("id,atlas_term,entidad\n7,t,E\n"))
	require.NoError(t, err)

	require.NoError(t, tbl.SetColumn("ruta_landing", []string{"/p"}))
	out, err := tbl.Encode()
	require.NoError(t, err)
	assert.Equal(t, "id,atlas_term,entidad,ruta_landing\n7,t,E,/p\n", string(out))
}

func TestSetColumnLengthMismatch(t *testing.T) {
	tbl, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Error(t, tbl.SetColumn("ruta_landing", []string{"only one"}))
}

func TestParseBOMAndErrors(t *testing.T) {
	tbl, err := Parse([]byte("\xEF\xBB\xBFatlas_term,entidad\nt,e\n"))
	require.NoError(t, err)
	_, err = tbl.Column("atlas_term")
	assert.NoError(t, err)

	_, err = Parse(nil)
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = Parse([]byte("a,b\n1,2,3\n"))
	assert.ErrorIs(t, err, ErrUnreadable)

	_, err = Load(afero.NewMemMapFs(), "/missing.csv")
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestHeaderOnly(t *testing.T) {
	tbl, err := Parse([]byte("atlas_term,entidad,ruta_landing\n"))
	require.NoError(t, err)
	assert.Zero(t, tbl.Len())
	require.NoError(t, tbl.SetColumn("ruta_landing", nil))
}
