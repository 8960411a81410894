package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocalWallet(t *testing.T) {
	baseDir := t.TempDir()
	w, err := CreateLocalWallet(baseDir, "mygw")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "mygw"), w.Path())

	info, err := os.Stat(w.Path())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateLocalWalletExisting(t *testing.T) {
	baseDir := t.TempDir()
	_, err := CreateLocalWallet(baseDir, "mygw")
	require.NoError(t, err)
	// same location a second time is fine
	_, err = CreateLocalWallet(baseDir, "mygw")
	assert.NoError(t, err)
}

func TestOpenOnFile(t *testing.T) {
	baseDir := t.TempDir()
	file := filepath.Join(baseDir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := Open(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestImportAndGetIdentity(t *testing.T) {
	w, err := CreateLocalWallet(t.TempDir(), "mygw")
	require.NoError(t, err)

	err = w.ImportIdentity(Identity{
		Name:        "admin",
		Certificate: "cert pem",
		PrivateKey:  "key pem",
		MSPID:       "Org1MSP",
	})
	require.NoError(t, err)

	id, err := w.GetIdentity("admin")
	require.NoError(t, err)
	assert.Equal(t, "cert pem", id.Certificate)
	assert.Equal(t, "key pem", id.PrivateKey)
	assert.Equal(t, "Org1MSP", id.MSPID)
}

func TestImportWritesFabricWalletDocument(t *testing.T) {
	w, err := CreateLocalWallet(t.TempDir(), "mygw")
	require.NoError(t, err)
	require.NoError(t, w.ImportIdentity(Identity{Name: "admin", MSPID: "Org1MSP"}))

	data, err := os.ReadFile(filepath.Join(w.Path(), "admin.id"))
	require.NoError(t, err)
	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "X.509", doc["type"])
	assert.Equal(t, "Org1MSP", doc["mspId"])
	assert.Equal(t, float64(1), doc["version"])
}

func TestImportOverwrites(t *testing.T) {
	w, err := CreateLocalWallet(t.TempDir(), "mygw")
	require.NoError(t, err)
	require.NoError(t, w.ImportIdentity(Identity{Name: "admin", MSPID: "Org1MSP"}))
	require.NoError(t, w.ImportIdentity(Identity{Name: "admin", MSPID: "Org2MSP"}))

	id, err := w.GetIdentity("admin")
	require.NoError(t, err)
	assert.Equal(t, "Org2MSP", id.MSPID)

	names, err := w.ListIdentities()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, names)
}

func TestListIdentities(t *testing.T) {
	w, err := CreateLocalWallet(t.TempDir(), "mygw")
	require.NoError(t, err)
	require.NoError(t, w.ImportIdentity(Identity{Name: "admin"}))
	require.NoError(t, w.ImportIdentity(Identity{Name: "user1"}))
	// stray files are not identities
	require.NoError(t, os.WriteFile(filepath.Join(w.Path(), "notes.txt"), []byte("x"), 0600))

	names, err := w.ListIdentities()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"admin", "user1"}, names)
}

func TestGetIdentityMissing(t *testing.T) {
	w, err := CreateLocalWallet(t.TempDir(), "mygw")
	require.NoError(t, err)
	_, err = w.GetIdentity("ghost")
	assert.Error(t, err)
}
