package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const identityFileSuffix = ".id"

// Identity is a named X.509 credential held by a wallet.
type Identity struct {
	Name        string
	Certificate string
	PrivateKey  string
	MSPID       string
}

// FileSystemWallet stores identities as one JSON document per identity
// inside a single directory.
type FileSystemWallet struct {
	path string
}

type identityDoc struct {
	Credentials credentialsDoc `json:"credentials"`
	MSPID       string         `json:"mspId"`
	Type        string         `json:"type"`
	Version     int            `json:"version"`
}

type credentialsDoc struct {
	Certificate string `json:"certificate"`
	PrivateKey  string `json:"privateKey"`
}

// CreateLocalWallet creates an empty wallet directory scoped to ownerName
// under baseDir. Creating a wallet that already exists is not an error as
// long as the location is a directory.
func CreateLocalWallet(baseDir string, ownerName string) (*FileSystemWallet, error) {
	return Open(filepath.Join(baseDir, ownerName))
}

// Open returns a wallet backed by the given directory, creating it if needed.
func Open(path string) (*FileSystemWallet, error) {
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		return nil, errors.Errorf("wallet location %s exists and is not a directory", path)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create wallet at %s", path)
	}
	return &FileSystemWallet{path: path}, nil
}

// ImportIdentity stores id in the wallet. An identity with the same name is
// silently replaced.
func (w *FileSystemWallet) ImportIdentity(id Identity) error {
	doc := identityDoc{
		Credentials: credentialsDoc{
			Certificate: id.Certificate,
			PrivateKey:  id.PrivateKey,
		},
		MSPID:   id.MSPID,
		Type:    "X.509",
		Version: 1,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode identity %s", id.Name)
	}
	file := filepath.Join(w.path, id.Name+identityFileSuffix)
	if err := os.WriteFile(file, data, 0600); err != nil {
		return errors.Wrapf(err, "failed to store identity %s", id.Name)
	}
	return nil
}

// GetIdentity loads a stored identity by name.
func (w *FileSystemWallet) GetIdentity(name string) (*Identity, error) {
	file := filepath.Join(w.path, name+identityFileSuffix)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read identity %s", name)
	}
	doc := identityDoc{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse identity %s", name)
	}
	return &Identity{
		Name:        name,
		Certificate: doc.Credentials.Certificate,
		PrivateKey:  doc.Credentials.PrivateKey,
		MSPID:       doc.MSPID,
	}, nil
}

// ListIdentities returns the names of the identities held by the wallet.
func (w *FileSystemWallet) ListIdentities() ([]string, error) {
	entries, err := os.ReadDir(w.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list wallet %s", w.path)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), identityFileSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), identityFileSuffix))
	}
	return names, nil
}

func (w *FileSystemWallet) Path() string {
	return w.path
}
