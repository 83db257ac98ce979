package importer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userholder/internal/common"
	"github.com/dmitrijs2005/userholder/internal/cryptox"
	"github.com/dmitrijs2005/userholder/internal/logging"
	"github.com/dmitrijs2005/userholder/internal/users"
)

func TestParseLine(t *testing.T) {
	rec, err := ParseLine(" John Doe ;JohnDoe@unknow.com;[B@7591083d:c6adb4becdc64e92857e1e2a0fd6af84;;")
	require.NoError(t, err)

	assert.Equal(t, users.Record{
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "JohnDoe@unknow.com",
		Salt:         "[B@7591083d",
		PasswordHash: "c6adb4becdc64e92857e1e2a0fd6af84",
	}, rec)
}

func TestParseLine_WithPhoneAndNoTrailingFields(t *testing.T) {
	rec, err := ParseLine("Jane;;salt:hash;+7 (917) 971-11-11")
	require.NoError(t, err)
	assert.Equal(t, "Jane", rec.FirstName)
	assert.Empty(t, rec.LastName)
	assert.Empty(t, rec.Email)
	assert.Equal(t, "+7 (917) 971-11-11", rec.Phone)
}

func TestParseLine_QuotedFieldsMatchRead(t *testing.T) {
	line := `"Ivan Petrov";"ivan@mail.com";salt:hash;`

	rec, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "Ivan", rec.FirstName)
	assert.Equal(t, "Petrov", rec.LastName)
	assert.Equal(t, "ivan@mail.com", rec.Email)

	all, err := Read(strings.NewReader(line + "\n"))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, all[0], rec)
}

func TestParseLine_Empty(t *testing.T) {
	_, err := ParseLine("")
	require.ErrorIs(t, err, common.ErrInvalidRecord)
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{name: "too few fields", line: "John;john@mail.com", wantErr: common.ErrInvalidRecord},
		{name: "no colon", line: "John;john@mail.com;saltandhash", wantErr: common.ErrInvalidRecord},
		{name: "empty salt", line: "John;john@mail.com;:hash", wantErr: common.ErrInvalidRecord},
		{name: "empty hash", line: "John;john@mail.com;salt:", wantErr: common.ErrInvalidRecord},
		{name: "bad name", line: "John R Tolkien;j@mail.com;s:h", wantErr: common.ErrInvalidNameFormat},
		{name: "bad name is also an invalid record", line: " ;j@mail.com;s:h", wantErr: common.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRead_SkipsBlankLinesAndReportsLineNumbers(t *testing.T) {
	input := strings.Join([]string{
		"John Doe;john@doe.com;s1:h1;",
		"",
		"Jane Roe;jane@roe.com;s2:h2;+79179711111;extra;fields",
	}, "\n")

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "jane@roe.com", records[1].Email)
	assert.Equal(t, "+79179711111", records[1].Phone)

	_, err = Read(strings.NewReader("John;j@d.com;s:h\nbroken line\n"))
	require.ErrorIs(t, err, common.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadFile_IntoRegistry(t *testing.T) {
	salt := "[B@7591083d"
	hash := cryptox.MD5Hasher{}.Hash("testPass", salt)

	path := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(" John Doe ;JohnDoe@unknow.com;"+salt+":"+hash+";;\n"), 0o600))

	records, err := ReadFile(path)
	require.NoError(t, err)

	reg := users.NewRegistry(logging.NewDiscardLogger(), nil)
	imported, err := reg.Import(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, imported, 1)

	summary, ok := reg.Login(context.Background(), "johndoe@unknow.com", "testPass")
	require.True(t, ok)
	assert.Contains(t, summary, "meta: {src=import}")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
